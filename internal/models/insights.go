package models

// InsightsReport is the pre-aggregated payload served by the remote
// analytics endpoint. It is consumed read-only; the field layout mirrors
// the remote JSON exactly.
type InsightsReport struct {
	HighestSalesVolumeDay     VolumeDayInsight        `json:"highest_sales_volume_day"`
	HighestSalesValueDay      ValueDayInsight         `json:"highest_sales_value_day"`
	MostSoldProduct           ProductInsight          `json:"most_sold_product"`
	HighestSalesStaffPerMonth map[string]StaffInsight `json:"highest_sales_staff_per_month"`
	HighestHourByAvgVolume    HourInsight             `json:"highest_hour_by_avg_volume"`
}

type VolumeDayInsight struct {
	Date        string `json:"date"`
	TotalVolume int    `json:"total_volume"`
}

type ValueDayInsight struct {
	Date       string  `json:"date"`
	TotalValue float64 `json:"total_value"`
}

type ProductInsight struct {
	ProductID     string `json:"product_id"`
	TotalQuantity int    `json:"total_quantity"`
}

type StaffInsight struct {
	StaffID    int     `json:"staff_id"`
	TotalSales float64 `json:"total_sales"`
}

type HourInsight struct {
	Hour          int     `json:"hour"`
	AverageVolume float64 `json:"average_volume"`
}

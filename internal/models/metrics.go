package models

// BatchMetrics holds the five rollups computed from one transaction file.
type BatchMetrics struct {
	Date             string       `json:"date"`
	HighestVolumeDay DayVolume    `json:"highest_volume_day"`
	HighestValueDay  DayValue     `json:"highest_value_day"`
	MostSoldProduct  ProductTotal `json:"most_sold_product"`
	TopStaffByMonth  []StaffMonth `json:"top_staff_by_month"`
	PeakHour         HourAverage  `json:"peak_hour"`
}

type DayVolume struct {
	Day            string `json:"day"`
	TotalUnitsSold int    `json:"total_units_sold"`
}

type DayValue struct {
	Day         string  `json:"day"`
	TotalAmount float64 `json:"total_amount"`
}

type ProductTotal struct {
	ProductID     string `json:"product_id"`
	TotalQuantity int    `json:"total_quantity"`
}

type StaffMonth struct {
	Month   string `json:"month"`
	StaffID int    `json:"staff_id"`
}

type HourAverage struct {
	Hour                   int     `json:"hour"`
	AvgUnitsPerTransaction float64 `json:"average_units_per_transaction"`
}

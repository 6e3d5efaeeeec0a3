package services

import (
	"slices"
	"strings"

	"github.com/INTeniola/monie-hackathon/internal/models"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

type dayAccum struct {
	units  int
	amount float64
}

type hourAccum struct {
	count int
	units int
}

type monthAccum struct {
	byStaff    map[int]float64
	staffOrder []int
}

// ComputeMetrics derives the five rollups from one batch of transactions.
// It is a pure function: the zero-valued result is returned for an empty
// batch, and every argmax uses a strict greater-than comparison so the
// first-encountered key wins ties. The month entries of TopStaffByMonth
// follow first-occurrence order in the input, which existing consumers
// depend on.
func ComputeMetrics(txs []models.Transaction) models.BatchMetrics {
	return computeMetrics(txs, false)
}

// ComputeMetricsChronological is ComputeMetrics with the TopStaffByMonth
// entries sorted chronologically instead of by first occurrence.
func ComputeMetricsChronological(txs []models.Transaction) models.BatchMetrics {
	return computeMetrics(txs, true)
}

func computeMetrics(txs []models.Transaction, sortMonths bool) models.BatchMetrics {
	days := make(map[string]*dayAccum)
	products := make(map[string]int)
	months := make(map[string]*monthAccum)
	hours := make(map[int]*hourAccum)

	var dayOrder, productOrder, monthOrder []string
	var hourOrder []int

	metrics := models.BatchMetrics{TopStaffByMonth: []models.StaffMonth{}}
	if len(txs) > 0 {
		metrics.Date = txs[0].Time.Format(dayLayout)
	}

	for _, tx := range txs {
		units := tx.TotalUnits()

		day := tx.Time.Format(dayLayout)
		da := days[day]
		if da == nil {
			da = &dayAccum{}
			days[day] = da
			dayOrder = append(dayOrder, day)
		}
		da.units += units
		da.amount += tx.Amount

		for _, p := range tx.Products {
			if _, seen := products[p.ID]; !seen {
				productOrder = append(productOrder, p.ID)
			}
			products[p.ID] += p.Quantity
		}

		month := tx.Time.Format(monthLayout)
		ma := months[month]
		if ma == nil {
			ma = &monthAccum{byStaff: make(map[int]float64)}
			months[month] = ma
			monthOrder = append(monthOrder, month)
		}
		if _, seen := ma.byStaff[tx.StaffID]; !seen {
			ma.staffOrder = append(ma.staffOrder, tx.StaffID)
		}
		ma.byStaff[tx.StaffID] += tx.Amount

		hour := tx.Time.Hour()
		ha := hours[hour]
		if ha == nil {
			ha = &hourAccum{}
			hours[hour] = ha
			hourOrder = append(hourOrder, hour)
		}
		ha.count++
		ha.units += units
	}

	for _, day := range dayOrder {
		da := days[day]
		if da.units > metrics.HighestVolumeDay.TotalUnitsSold {
			metrics.HighestVolumeDay = models.DayVolume{Day: day, TotalUnitsSold: da.units}
		}
		if da.amount > metrics.HighestValueDay.TotalAmount {
			metrics.HighestValueDay = models.DayValue{Day: day, TotalAmount: da.amount}
		}
	}

	for _, id := range productOrder {
		if qty := products[id]; qty > metrics.MostSoldProduct.TotalQuantity {
			metrics.MostSoldProduct = models.ProductTotal{ProductID: id, TotalQuantity: qty}
		}
	}

	if sortMonths {
		monthOrder = slices.Clone(monthOrder)
		slices.SortFunc(monthOrder, strings.Compare)
	}
	for _, month := range monthOrder {
		ma := months[month]
		top := models.StaffMonth{Month: month}
		topAmount := 0.0
		for _, staffID := range ma.staffOrder {
			if ma.byStaff[staffID] > topAmount {
				topAmount = ma.byStaff[staffID]
				top.StaffID = staffID
			}
		}
		metrics.TopStaffByMonth = append(metrics.TopStaffByMonth, top)
	}

	for _, hour := range hourOrder {
		ha := hours[hour]
		avg := float64(ha.units) / float64(ha.count)
		if avg > metrics.PeakHour.AvgUnitsPerTransaction {
			metrics.PeakHour = models.HourAverage{Hour: hour, AvgUnitsPerTransaction: avg}
		}
	}

	return metrics
}

// Package report computes derived metrics over fetched inventory records.
// Every function is pure: records in, numbers out, no store access. The
// fallback chains for dates and revenue exist because sale documents were
// written by several generations of code; they must be preserved exactly.
package report

import (
	"time"

	"stockdeck/internal/domain"
)

const dayFormat = "2006-01-02"

// SaleDate extracts the normalized date of a sale, preferring the explicit
// date field over the creation timestamp. ok is false when neither is set.
func SaleDate(sale domain.Sale) (time.Time, bool) {
	if sale.Date.Valid {
		return sale.Date.Time, true
	}
	if sale.CreatedAt.Valid {
		return sale.CreatedAt.Time, true
	}
	return time.Time{}, false
}

// SaleRevenue returns the revenue of a single sale using the fallback chain:
// amount, then totalAmount, then price*quantity when both parse as numbers,
// then zero.
func SaleRevenue(sale domain.Sale) float64 {
	if sale.Amount != nil {
		return *sale.Amount
	}
	if sale.TotalAmount != nil {
		return *sale.TotalAmount
	}
	price, perr := sale.Price.Float64()
	qty, qerr := sale.Quantity.Float64()
	if perr == nil && qerr == nil {
		return price * qty
	}
	return 0
}

// TotalRevenue sums SaleRevenue over all sales. Order-independent.
func TotalRevenue(sales []domain.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += SaleRevenue(s)
	}
	return total
}

// TodayOrders counts sales dated on the same calendar day as now, in now's
// location. Dateless sales never count.
func TodayOrders(sales []domain.Sale, now time.Time) int {
	today := now.Format(dayFormat)
	count := 0
	for _, s := range sales {
		d, ok := SaleDate(s)
		if ok && d.In(now.Location()).Format(dayFormat) == today {
			count++
		}
	}
	return count
}

// LowStockCount counts products with quantity at or below five.
func LowStockCount(products []domain.Product) int {
	count := 0
	for _, p := range products {
		if p.Quantity <= 5 {
			count++
		}
	}
	return count
}

// Stock status labels.
const (
	StatusOutOfStock = "Out of Stock"
	StatusLowStock   = "Low Stock"
	StatusInStock    = "In Stock"
)

// StockStatus labels a quantity: 0 is out of stock, 1-4 is low, 5 and up is
// in stock. The low-stock notification on product update uses the same
// strict <5 boundary.
func StockStatus(quantity int) string {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity < 5:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ChartPoint is one day's revenue in the dashboard trend series.
type ChartPoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// ChartSeries groups sales by UTC calendar day, summing revenue per day.
// Days appear in first-seen order over the input slice, not chronologically;
// sales without a recognizable date are excluded.
func ChartSeries(sales []domain.Sale) []ChartPoint {
	index := make(map[string]int, len(sales))
	series := make([]ChartPoint, 0, len(sales))
	for _, s := range sales {
		d, ok := SaleDate(s)
		if !ok {
			continue
		}
		key := d.UTC().Format(dayFormat)
		if i, seen := index[key]; seen {
			series[i].Revenue += SaleRevenue(s)
			continue
		}
		index[key] = len(series)
		series = append(series, ChartPoint{Name: key, Revenue: SaleRevenue(s)})
	}
	return series
}

// HasDates reports whether any sale carries a recognizable date. Surfaced on
// the dashboard as a data-quality hint.
func HasDates(sales []domain.Sale) bool {
	for _, s := range sales {
		if _, ok := SaleDate(s); ok {
			return true
		}
	}
	return false
}

// HasRevenue reports whether any sale resolves to a positive revenue.
func HasRevenue(sales []domain.Sale) bool {
	for _, s := range sales {
		if SaleRevenue(s) > 0 {
			return true
		}
	}
	return false
}

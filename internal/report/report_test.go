package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdeck/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func saleOn(t time.Time, revenue float64) domain.Sale {
	return domain.Sale{
		Date:   domain.NewDocTime(t),
		Amount: floatPtr(revenue),
		Status: domain.SaleStatusCompleted,
	}
}

func TestStockStatus_PartitionsAtZeroAndFive(t *testing.T) {
	tests := []struct {
		quantity int
		want     string
	}{
		{0, StatusOutOfStock},
		{1, StatusLowStock},
		{4, StatusLowStock},
		{5, StatusInStock},
		{6, StatusInStock},
		{100, StatusInStock},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, StockStatus(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestSaleRevenue_AmountWins(t *testing.T) {
	sale := domain.Sale{
		Amount:      floatPtr(42),
		TotalAmount: floatPtr(99),
		Price:       json.Number("10"),
		Quantity:    json.Number("3"),
	}
	assert.Equal(t, 42.0, SaleRevenue(sale))
}

func TestSaleRevenue_TotalAmountFallback(t *testing.T) {
	sale := domain.Sale{
		TotalAmount: floatPtr(99),
		Price:       json.Number("10"),
		Quantity:    json.Number("3"),
	}
	assert.Equal(t, 99.0, SaleRevenue(sale))
}

func TestSaleRevenue_PriceTimesQuantityFallback(t *testing.T) {
	sale := domain.Sale{
		Price:    json.Number("10"),
		Quantity: json.Number("3"),
	}
	assert.Equal(t, 30.0, SaleRevenue(sale))
}

func TestSaleRevenue_NothingParseable(t *testing.T) {
	assert.Equal(t, 0.0, SaleRevenue(domain.Sale{}))
	assert.Equal(t, 0.0, SaleRevenue(domain.Sale{Price: json.Number("10")}))
	assert.Equal(t, 0.0, SaleRevenue(domain.Sale{Price: json.Number("x"), Quantity: json.Number("3")}))
}

func TestTotalRevenue_OrderIndependent(t *testing.T) {
	now := time.Now()
	sales := []domain.Sale{
		saleOn(now, 10),
		saleOn(now, 20),
		{Price: json.Number("5"), Quantity: json.Number("4")},
	}
	reversed := []domain.Sale{sales[2], sales[1], sales[0]}

	assert.Equal(t, 50.0, TotalRevenue(sales))
	assert.Equal(t, TotalRevenue(sales), TotalRevenue(reversed))
	assert.Equal(t, 0.0, TotalRevenue(nil))
}

func TestSaleDate_PrefersDateOverCreatedAt(t *testing.T) {
	date := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	got, ok := SaleDate(domain.Sale{Date: domain.NewDocTime(date), CreatedAt: domain.NewDocTime(created)})
	require.True(t, ok)
	assert.Equal(t, date, got)

	got, ok = SaleDate(domain.Sale{CreatedAt: domain.NewDocTime(created)})
	require.True(t, ok)
	assert.Equal(t, created, got)

	_, ok = SaleDate(domain.Sale{})
	assert.False(t, ok)
}

func TestTodayOrders_LocalCalendarDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 30, 0, 0, time.Local)
	sales := []domain.Sale{
		saleOn(now.Add(-time.Hour), 10),         // same day
		saleOn(now.Add(-24*time.Hour), 10),      // yesterday
		saleOn(now.Add(-30*time.Minute), 5),     // same day
		{Amount: floatPtr(5)},                   // dateless, never counts
	}
	assert.Equal(t, 2, TodayOrders(sales, now))
}

func TestLowStockCount_AtOrBelowFive(t *testing.T) {
	products := []domain.Product{
		{Quantity: 0},
		{Quantity: 5},
		{Quantity: 6},
		{Quantity: 3},
	}
	assert.Equal(t, 3, LowStockCount(products))
}

func TestChartSeries_GroupsByDayInFirstSeenOrder(t *testing.T) {
	day1 := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sales := []domain.Sale{
		saleOn(day1, 10),
		saleOn(day2, 5),
		saleOn(day1.Add(2*time.Hour), 7),
		{Amount: floatPtr(100)}, // dateless, excluded
	}

	series := ChartSeries(sales)
	require.Len(t, series, 2)
	// First-seen order, not chronological: day1 appears before day2.
	assert.Equal(t, ChartPoint{Name: "2024-03-02", Revenue: 17}, series[0])
	assert.Equal(t, ChartPoint{Name: "2024-03-01", Revenue: 5}, series[1])
}

func TestChartSeries_Empty(t *testing.T) {
	assert.Empty(t, ChartSeries(nil))
	assert.Empty(t, ChartSeries([]domain.Sale{{Amount: floatPtr(3)}}))
}

func TestHasDatesAndRevenue(t *testing.T) {
	assert.False(t, HasDates([]domain.Sale{{}}))
	assert.True(t, HasDates([]domain.Sale{saleOn(time.Now(), 1)}))
	assert.False(t, HasRevenue([]domain.Sale{{}}))
	assert.True(t, HasRevenue([]domain.Sale{{TotalAmount: floatPtr(2)}}))
}

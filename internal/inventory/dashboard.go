package inventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stockdeck/internal/domain"
	"stockdeck/internal/report"
	"stockdeck/pkg/requestcontext"
)

// Dashboard aggregates the derived metrics shown on the landing view.
type Dashboard struct {
	TotalRevenue     float64             `json:"totalRevenue"`
	TodayOrders      int                 `json:"todayOrders"`
	LowStockCount    int                 `json:"lowStockCount"`
	Chart            []report.ChartPoint `json:"chart"`
	ProductCount     int                 `json:"productCount"`
	SaleCount        int                 `json:"saleCount"`
	SalesHaveDates   bool                `json:"salesHaveDates"`
	SalesHaveRevenue bool                `json:"salesHaveRevenue"`
}

// BuildDashboard fetches the owner's products and sales in parallel and runs
// the report computations over them. "Today" comes from the request clock so
// the calendar-day comparison is deterministic under test.
func (s *Service) BuildDashboard(ctx context.Context, ownerID string) (Dashboard, error) {
	var (
		products []domain.Product
		sales    []domain.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.Products(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.Sales(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		TotalRevenue:     report.TotalRevenue(sales),
		TodayOrders:      report.TodayOrders(sales, requestcontext.Now(ctx)),
		LowStockCount:    report.LowStockCount(products),
		Chart:            report.ChartSeries(sales),
		ProductCount:     len(products),
		SaleCount:        len(sales),
		SalesHaveDates:   report.HasDates(sales),
		SalesHaveRevenue: report.HasRevenue(sales),
	}, nil
}

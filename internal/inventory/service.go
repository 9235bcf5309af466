package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"stockdeck/internal/domain"
	"stockdeck/internal/platform/metrics"
	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/requestcontext"
)

// Notifier is the slice of the notification emitter this service consumes.
type Notifier interface {
	Notify(ctx context.Context, ownerID, message string, notifType domain.NotificationType) error
	List(ctx context.Context, ownerID string) ([]domain.Notification, error)
}

// Service is the owner-scoped data layer: it fetches collections filtered by
// the principal, applies mutations against the stores, and keeps the local
// cache reconciled. Product mutations patch the cache in place; recording a
// sale refetches products and sales instead. That asymmetry is inherited
// behavior and callers rely on the post-sale re-read, so it stays.
type Service struct {
	products ProductStore
	sales    SaleStore
	notifier Notifier
	cache    *Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewService(products ProductStore, sales SaleStore, notifier Notifier, cache *Cache, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		products: products,
		sales:    sales,
		notifier: notifier,
		cache:    cache,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("stockdeck/inventory"),
	}
}

// Cache exposes the snapshot cache, mainly for wiring the tracker
// subscription and for tests.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Products fetches the owner's products. Without an owner the query is never
// issued. Store failures are logged and degrade to an empty result; they do
// not reach the caller.
func (s *Service) Products(ctx context.Context, ownerID string) ([]domain.Product, error) {
	if ownerID == "" {
		return nil, apierrors.New(apierrors.CodeInvalidInput, "owner id is required")
	}

	owner, epoch := s.cache.Tag()
	start := time.Now()
	products, err := s.products.ListByOwner(ctx, ownerID)
	s.metrics.ObserveFetch("products", time.Since(start).Seconds())
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch products failed", "error", err, "owner_id", ownerID)
		s.cache.ClearLoading()
		return []domain.Product{}, nil
	}

	if owner == ownerID {
		s.cache.ApplyProducts(owner, epoch, products)
	} else {
		s.cache.ClearLoading()
	}
	return products, nil
}

// Sales fetches the owner's sales sorted newest first. The store gives no
// ordering, so the sort happens here: by the date field's epoch seconds
// descending, missing dates counting as zero.
func (s *Service) Sales(ctx context.Context, ownerID string) ([]domain.Sale, error) {
	if ownerID == "" {
		return nil, apierrors.New(apierrors.CodeInvalidInput, "owner id is required")
	}

	owner, epoch := s.cache.Tag()
	start := time.Now()
	sales, err := s.sales.ListByOwner(ctx, ownerID)
	s.metrics.ObserveFetch("sales", time.Since(start).Seconds())
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch sales failed", "error", err, "owner_id", ownerID)
		s.cache.ClearLoading()
		return []domain.Sale{}, nil
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Date.Seconds() > sales[j].Date.Seconds()
	})

	if owner == ownerID {
		s.cache.ApplySales(owner, epoch, sales)
	} else {
		s.cache.ClearLoading()
	}
	return sales, nil
}

// Notifications fetches the owner's notification feed with the same skip and
// degrade rules as the other collections.
func (s *Service) Notifications(ctx context.Context, ownerID string) ([]domain.Notification, error) {
	if ownerID == "" {
		return nil, apierrors.New(apierrors.CodeInvalidInput, "owner id is required")
	}

	owner, epoch := s.cache.Tag()
	start := time.Now()
	notifications, err := s.notifier.List(ctx, ownerID)
	s.metrics.ObserveFetch("notifications", time.Since(start).Seconds())
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch notifications failed", "error", err, "owner_id", ownerID)
		s.cache.ClearLoading()
		return []domain.Notification{}, nil
	}

	if owner == ownerID {
		s.cache.ApplyNotifications(owner, epoch, notifications)
	} else {
		s.cache.ClearLoading()
	}
	return notifications, nil
}

// ProductInput carries the four editable product fields as submitted. Price
// and quantity arrive as strings because that is what the form posts;
// validation owns the parsing.
type ProductInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

func (in ProductInput) parse() (price float64, quantity int, err error) {
	if in.Name == "" || in.Category == "" || in.Price == "" || in.Quantity == "" {
		return 0, 0, apierrors.New(apierrors.CodeInvalidInput, "All fields are required")
	}
	price, perr := strconv.ParseFloat(in.Price, 64)
	if perr != nil || price <= 0 {
		return 0, 0, apierrors.New(apierrors.CodeInvalidInput, "Price must be greater than 0")
	}
	quantity, qerr := strconv.Atoi(in.Quantity)
	if qerr != nil || quantity < 0 {
		return 0, 0, apierrors.New(apierrors.CodeInvalidInput, "Quantity cannot be negative")
	}
	return price, quantity, nil
}

// CreateProduct validates the input, writes the record, appends it to the
// local snapshot without a refetch, and emits a success notification. Store
// failures propagate; the cache is only touched after the write succeeds.
func (s *Service) CreateProduct(ctx context.Context, ownerID string, in ProductInput) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.CreateProduct")
	defer span.End()

	price, quantity, err := in.parse()
	if err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Category:  in.Category,
		Price:     price,
		Quantity:  quantity,
		OwnerID:   ownerID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.products.Insert(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.cache.AppendProduct(ownerID, product)
	s.metrics.IncrementProductsCreated()

	if err := s.notifier.Notify(ctx, ownerID, `Product "`+in.Name+`" added successfully`, domain.NotificationSuccess); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// UpdateProduct validates and overwrites all four fields, patches the cache
// entry in place, and emits a low-stock warning when the new quantity drops
// under five. The cache patch only happens after the write succeeds, so a
// failed write leaves local state in its pre-update form.
func (s *Service) UpdateProduct(ctx context.Context, ownerID, id string, in ProductInput) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.UpdateProduct")
	defer span.End()

	price, quantity, err := in.parse()
	if err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:       id,
		Name:     in.Name,
		Category: in.Category,
		Price:    price,
		Quantity: quantity,
		OwnerID:  ownerID,
	}
	if err := s.products.Update(ctx, product); err != nil {
		return domain.Product{}, err
	}

	s.cache.PatchProduct(ownerID, product)

	// Strictly under five, unlike the dashboard's <=5 low-stock card. Both
	// thresholds are inherited and independently load-bearing.
	if quantity < 5 {
		if err := s.notifier.Notify(ctx, ownerID, `Low stock alert for "`+in.Name+`"`, domain.NotificationWarning); err != nil {
			return domain.Product{}, err
		}
	}
	return product, nil
}

// DeleteProduct removes the record from the store and the cache and emits an
// info notification. Not reversible; there is no soft delete.
func (s *Service) DeleteProduct(ctx context.Context, ownerID, id string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.DeleteProduct")
	defer span.End()

	if err := s.products.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.cache.RemoveProduct(ownerID, id)
	return s.notifier.Notify(ctx, ownerID, "Product deleted successfully", domain.NotificationInfo)
}

// RecordSale writes a completed sale and decrements the product's stock.
// The two writes are independent: a failure after the sale insert leaves the
// sale visible without a decrement. That window is inherited behavior and is
// deliberately not wrapped in a transaction.
func (s *Service) RecordSale(ctx context.Context, ownerID, productID string, quantity int) (domain.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.RecordSale")
	defer span.End()

	if quantity <= 0 {
		return domain.Sale{}, apierrors.New(apierrors.CodeInvalidInput, "Quantity must be greater than 0")
	}

	product, err := s.productByID(ctx, ownerID, productID)
	if err != nil {
		return domain.Sale{}, err
	}
	if quantity > product.Quantity {
		return domain.Sale{}, apierrors.New(apierrors.CodeInsufficientStock, "Not enough stock")
	}

	amount := product.Price * float64(quantity)
	now := requestcontext.Now(ctx)
	sale := domain.Sale{
		ID:          uuid.NewString(),
		OrderID:     generateOrderID(),
		ProductName: product.Name,
		Quantity:    json.Number(strconv.Itoa(quantity)),
		Price:       json.Number(strconv.FormatFloat(product.Price, 'f', -1, 64)),
		Amount:      &amount,
		Date:        domain.NewDocTime(now),
		Status:      domain.SaleStatusCompleted,
		OwnerID:     ownerID,
	}
	if err := s.sales.Insert(ctx, sale); err != nil {
		return domain.Sale{}, err
	}

	product.Quantity -= quantity
	if err := s.products.Update(ctx, product); err != nil {
		return domain.Sale{}, err
	}

	s.metrics.IncrementSalesRecorded()
	if err := s.notifier.Notify(ctx, ownerID, `New sale recorded for "`+product.Name+`"`, domain.NotificationInfo); err != nil {
		return domain.Sale{}, err
	}

	// Unlike product mutations this path re-reads both collections rather
	// than patching the snapshot.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Products(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		_, err := s.Sales(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

func (s *Service) productByID(ctx context.Context, ownerID, id string) (domain.Product, error) {
	products := s.cache.Products(ownerID)
	if products == nil {
		fetched, err := s.Products(ctx, ownerID)
		if err != nil {
			return domain.Product{}, err
		}
		products = fetched
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apierrors.New(apierrors.CodeNotFound, "product not found")
}

// generateOrderID builds the human-readable order id: "ORD-" plus six random
// decimal digits. Not globally unique; the sale row's primary key is, so a
// collision here is cosmetic.
func generateOrderID() string {
	return "ORD-" + strconv.Itoa(100000+rand.IntN(900000))
}

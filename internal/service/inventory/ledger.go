package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// ProductStore is the product collaborator the ledger reads and writes.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	UpdateColorStock(ctx context.Context, productID, colorName string, stock map[string]int) error
}

// SaleStore persists and lists offline sale records.
type SaleStore interface {
	Insert(ctx context.Context, sale models.OfflineSale) (*models.OfflineSale, error)
	List(ctx context.Context, filter models.SaleFilter) ([]models.OfflineSale, error)
}

// Transactor runs fn atomically; all store calls issued with the callback
// context commit together or not at all.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service describes the operations the HTTP layer can perform.
type Service interface {
	RecordSale(ctx context.Context, input SaleInput) (*models.OfflineSale, error)
	ListSales(ctx context.Context, filter models.SaleFilter) ([]models.OfflineSale, error)
}

// SaleInput is a validated-on-entry offline sale request.
type SaleInput struct {
	ProductID    string
	ColorName    string
	Sizes        map[string]int
	CustomerInfo *models.CustomerInfo
	TotalAmount  *float64
	Notes        string
	SaleDate     time.Time
}

// Ledger applies offline sales against per-size stock counters. Every sale
// is one atomic transaction: all requested decrements plus the sale record,
// or nothing.
type Ledger struct {
	products ProductStore
	sales    SaleStore
	tx       Transactor
	logger   *zap.Logger
}

// NewLedger wires a new ledger instance.
func NewLedger(products ProductStore, sales SaleStore, tx Transactor, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{products: products, sales: sales, tx: tx, logger: logger}
}

// RecordSale validates the request, checks stock for every requested size,
// and commits the stock decrement together with the new sale record. The
// transactor re-runs the callback on conflicts, so two concurrent sales of
// the same size cannot both deduct from the same observed stock.
func (l *Ledger) RecordSale(ctx context.Context, input SaleInput) (*models.OfflineSale, error) {
	if input.ProductID == "" {
		return nil, apperrors.Validation("productId is required")
	}
	if input.ColorName == "" {
		return nil, apperrors.Validation("colorName is required")
	}
	if len(input.Sizes) == 0 {
		return nil, apperrors.Validation("sizes must contain at least one entry")
	}
	for size, qty := range input.Sizes {
		if qty <= 0 {
			return nil, apperrors.Validation("quantity for size %q must be positive", size)
		}
	}

	var created *models.OfflineSale

	err := l.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		product, err := l.products.GetByID(txCtx, input.ProductID)
		if err != nil {
			return err
		}

		color := product.ColorByName(input.ColorName)
		if color == nil {
			return apperrors.NotFound("product %s has no color %q", input.ProductID, input.ColorName)
		}

		// Check every size before touching anything; a missing size key
		// counts as zero stock. Sizes are walked in sorted order so the
		// reported failure is deterministic.
		updated := make(map[string]int, len(color.Stock))
		for size, qty := range color.Stock {
			updated[size] = qty
		}
		for _, size := range sortedSizes(input.Sizes) {
			requested := input.Sizes[size]
			available := updated[size]
			if requested > available {
				return &apperrors.InsufficientStockError{Size: size, Available: available, Requested: requested}
			}
			updated[size] = available - requested
		}

		if err := l.products.UpdateColorStock(txCtx, input.ProductID, input.ColorName, updated); err != nil {
			return err
		}

		totalQuantity := 0
		for _, qty := range input.Sizes {
			totalQuantity += qty
		}

		unitPrice := decimal.NewFromFloat(product.Price)
		totalAmount := unitPrice.Mul(decimal.NewFromInt(int64(totalQuantity)))
		if input.TotalAmount != nil {
			totalAmount = decimal.NewFromFloat(*input.TotalAmount)
		}

		saleDate := input.SaleDate
		if saleDate.IsZero() {
			saleDate = time.Now()
		}

		sale := models.OfflineSale{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ColorName:     input.ColorName,
			Sizes:         input.Sizes,
			TotalQuantity: totalQuantity,
			UnitPrice:     product.Price,
			TotalAmount:   totalAmount.Round(2).InexactFloat64(),
			CustomerInfo:  input.CustomerInfo,
			Notes:         input.Notes,
			SaleDate:      saleDate.UTC(),
			CreatedAt:     time.Now().UTC(),
		}

		created, err = l.sales.Insert(txCtx, sale)
		return err
	})
	if err != nil {
		return nil, classifyTxError(err)
	}

	l.logger.Info("offline sale recorded",
		zap.String("sale_id", created.ID.Hex()),
		zap.String("product_id", input.ProductID),
		zap.String("color", input.ColorName),
		zap.Int("total_quantity", created.TotalQuantity))

	return created, nil
}

// ListSales returns sales matching the filter, newest sale date first.
func (l *Ledger) ListSales(ctx context.Context, filter models.SaleFilter) ([]models.OfflineSale, error) {
	return l.sales.List(ctx, filter)
}

// classifyTxError keeps domain errors intact and wraps everything else as a
// failed commit.
func classifyTxError(err error) error {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		stockErr      *apperrors.InsufficientStockError
	)
	if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) || errors.As(err, &stockErr) {
		return err
	}
	return &apperrors.TransactionError{Err: err}
}

func sortedSizes(sizes map[string]int) []string {
	keys := make([]string, 0, len(sizes))
	for size := range sizes {
		keys = append(keys, size)
	}
	sort.Strings(keys)
	return keys
}

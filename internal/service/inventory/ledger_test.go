package inventory

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alibiomar/ashe-admin-api/internal/domain/apperrors"
	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// memStore is an in-memory stand-in for the product and sale collections.
type memStore struct {
	products map[string]*models.Product
	sales    []models.OfflineSale
}

func newMemStore(products ...*models.Product) *memStore {
	s := &memStore{products: map[string]*models.Product{}}
	for _, p := range products {
		s.products[p.ID.Hex()] = p
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NotFound("product %s not found", id)
	}
	copied := *p
	copied.Colors = make([]models.ProductColor, len(p.Colors))
	for i, c := range p.Colors {
		copied.Colors[i] = c
		copied.Colors[i].Stock = copyStock(c.Stock)
	}
	return &copied, nil
}

func (s *memStore) UpdateColorStock(_ context.Context, productID, colorName string, stock map[string]int) error {
	p, ok := s.products[productID]
	if !ok {
		return apperrors.NotFound("product %s not found", productID)
	}
	for i := range p.Colors {
		if p.Colors[i].Name == colorName {
			p.Colors[i].Stock = copyStock(stock)
			return nil
		}
	}
	return apperrors.NotFound("product %s has no color %q", productID, colorName)
}

func (s *memStore) Insert(_ context.Context, sale models.OfflineSale) (*models.OfflineSale, error) {
	sale.ID = primitive.NewObjectID()
	s.sales = append(s.sales, sale)
	return &sale, nil
}

func (s *memStore) List(_ context.Context, filter models.SaleFilter) ([]models.OfflineSale, error) {
	var out []models.OfflineSale
	for _, sale := range s.sales {
		if filter.ProductID != "" && sale.ProductID.Hex() != filter.ProductID {
			continue
		}
		if !filter.Start.IsZero() && sale.SaleDate.Before(filter.Start) {
			continue
		}
		if !filter.End.IsZero() && !sale.SaleDate.Before(filter.End) {
			continue
		}
		out = append(out, sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (s *memStore) snapshot() *memStore {
	backup := newMemStore()
	for id := range s.products {
		copied, _ := s.GetByID(context.Background(), id)
		backup.products[id] = copied
	}
	backup.sales = append([]models.OfflineSale{}, s.sales...)
	return backup
}

func (s *memStore) restore(backup *memStore) {
	s.products = backup.products
	s.sales = backup.sales
}

// memTx mimics the store's transaction: fn runs against the live store and
// every change is rolled back when fn (or the commit) fails.
type memTx struct {
	store     *memStore
	commitErr error
}

func (t *memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	backup := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(backup)
		return err
	}
	if t.commitErr != nil {
		t.store.restore(backup)
		return t.commitErr
	}
	return nil
}

func copyStock(stock map[string]int) map[string]int {
	copied := make(map[string]int, len(stock))
	for size, qty := range stock {
		copied[size] = qty
	}
	return copied
}

func tshirt() *models.Product {
	return &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "T-Shirt",
		Price: 20,
		Colors: []models.ProductColor{
			{Name: "Blue", Code: "#1e40af", Stock: map[string]int{"S": 10, "M": 3}},
			{Name: "Black", Code: "#000000", Stock: map[string]int{"S": 4}},
		},
	}
}

func newTestLedger(store *memStore) *Ledger {
	return NewLedger(store, store, &memTx{store: store}, nil)
}

func TestRecordSale_DecrementsStockAndWritesRecord(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	sale, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 2, "M": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, sale.TotalQuantity)
	assert.Equal(t, 20.0, sale.UnitPrice)
	assert.Equal(t, 60.0, sale.TotalAmount)
	assert.Equal(t, "T-Shirt", sale.ProductName)
	assert.False(t, sale.ID.IsZero())

	stock := store.products[product.ID.Hex()].Colors[0].Stock
	assert.Equal(t, map[string]int{"S": 8, "M": 2}, stock)
	// other colors untouched
	assert.Equal(t, map[string]int{"S": 4}, store.products[product.ID.Hex()].Colors[1].Stock)
	assert.Len(t, store.sales, 1)
}

func TestRecordSale_InsufficientStockAbortsWholeSale(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	_, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 2, "M": 1},
	})
	require.NoError(t, err)

	_, err = ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"M": 5},
	})
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "M", stockErr.Size)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	// no partial deduction, no new record
	stock := store.products[product.ID.Hex()].Colors[0].Stock
	assert.Equal(t, map[string]int{"S": 8, "M": 2}, stock)
	assert.Len(t, store.sales, 1)
}

func TestRecordSale_MixedRequestRollsBackEverySize(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	// S is plentiful but M is not; nothing may change.
	_, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 1, "M": 99},
	})
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	stock := store.products[product.ID.Hex()].Colors[0].Stock
	assert.Equal(t, map[string]int{"S": 10, "M": 3}, stock)
	assert.Empty(t, store.sales)
}

func TestRecordSale_MissingSizeKeyCountsAsZeroStock(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	_, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"XL": 1},
	})
	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "XL", stockErr.Size)
	assert.Equal(t, 0, stockErr.Available)
}

func TestRecordSale_Validation(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	cases := []struct {
		name  string
		input SaleInput
	}{
		{"missing product id", SaleInput{ColorName: "Blue", Sizes: map[string]int{"S": 1}}},
		{"missing color name", SaleInput{ProductID: product.ID.Hex(), Sizes: map[string]int{"S": 1}}},
		{"empty sizes", SaleInput{ProductID: product.ID.Hex(), ColorName: "Blue"}},
		{"non-positive quantity", SaleInput{ProductID: product.ID.Hex(), ColorName: "Blue", Sizes: map[string]int{"S": 0}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.RecordSale(context.Background(), tc.input)
			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	assert.Empty(t, store.sales)
}

func TestRecordSale_UnknownProductAndColor(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	var notFoundErr *apperrors.NotFoundError

	_, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: primitive.NewObjectID().Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 1},
	})
	assert.ErrorAs(t, err, &notFoundErr)

	_, err = ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Crimson",
		Sizes:     map[string]int{"S": 1},
	})
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestRecordSale_CallerSuppliedTotalAmountWins(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	amount := 45.5
	sale, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID:   product.ID.Hex(),
		ColorName:   "Blue",
		Sizes:       map[string]int{"S": 3},
		TotalAmount: &amount,
	})
	require.NoError(t, err)
	assert.Equal(t, 45.5, sale.TotalAmount)
	assert.Equal(t, 20.0, sale.UnitPrice)
}

func TestRecordSale_SequentialSalesDeductCumulatively(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := newTestLedger(store)

	input := SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 2},
	}

	_, err := ledger.RecordSale(context.Background(), input)
	require.NoError(t, err)
	_, err = ledger.RecordSale(context.Background(), input)
	require.NoError(t, err)

	stock := store.products[product.ID.Hex()].Colors[0].Stock
	assert.Equal(t, 6, stock["S"])
	assert.Len(t, store.sales, 2)
}

func TestRecordSale_CommitFailureLeavesNoTrace(t *testing.T) {
	product := tshirt()
	store := newMemStore(product)
	ledger := NewLedger(store, store, &memTx{store: store, commitErr: errors.New("commit aborted")}, nil)

	_, err := ledger.RecordSale(context.Background(), SaleInput{
		ProductID: product.ID.Hex(),
		ColorName: "Blue",
		Sizes:     map[string]int{"S": 1},
	})
	var txErr *apperrors.TransactionError
	require.ErrorAs(t, err, &txErr)

	stock := store.products[product.ID.Hex()].Colors[0].Stock
	assert.Equal(t, map[string]int{"S": 10, "M": 3}, stock)
	assert.Empty(t, store.sales)
}

func TestListSales_FiltersByProduct(t *testing.T) {
	first := tshirt()
	second := tshirt()
	second.Name = "Hoodie"
	store := newMemStore(first, second)
	ledger := newTestLedger(store)

	for _, p := range []*models.Product{first, second} {
		_, err := ledger.RecordSale(context.Background(), SaleInput{
			ProductID: p.ID.Hex(),
			ColorName: "Blue",
			Sizes:     map[string]int{"S": 1},
		})
		require.NoError(t, err)
	}

	sales, err := ledger.ListSales(context.Background(), models.SaleFilter{ProductID: first.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "T-Shirt", sales[0].ProductName)
}

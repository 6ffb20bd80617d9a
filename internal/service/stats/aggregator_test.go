package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixtures struct {
	orders      []models.Order
	ordersErr   error
	products    []models.Product
	productsErr error
	users       []models.User
	subscribers []models.Subscriber
	sales       []models.OfflineSale
	salesErr    error
	spendings   []models.Spending
}

func (f *fixtures) List(_ context.Context, _ string) ([]models.Order, error) {
	return f.orders, f.ordersErr
}

type productSrc struct{ f *fixtures }

func (s productSrc) List(_ context.Context) ([]models.Product, error) {
	return s.f.products, s.f.productsErr
}

type userSrc struct{ f *fixtures }

func (s userSrc) List(_ context.Context) ([]models.User, error) { return s.f.users, nil }

type subscriberSrc struct{ f *fixtures }

func (s subscriberSrc) List(_ context.Context) ([]models.Subscriber, error) {
	return s.f.subscribers, nil
}

type saleSrc struct{ f *fixtures }

func (s saleSrc) List(_ context.Context, _ models.SaleFilter) ([]models.OfflineSale, error) {
	return s.f.sales, s.f.salesErr
}

type spendingSrc struct{ f *fixtures }

func (s spendingSrc) List(_ context.Context, _ models.SpendingFilter) ([]models.Spending, error) {
	return s.f.spendings, nil
}

func newTestAggregator(f *fixtures) *Aggregator {
	a := NewAggregator(f, productSrc{f}, userSrc{f}, subscriberSrc{f}, saleSrc{f}, spendingSrc{f}, nil)
	a.nowFn = func() time.Time { return testNow }
	return a
}

func buildReport(t *testing.T, f *fixtures) *models.StatsReport {
	t.Helper()
	report, err := newTestAggregator(f).BuildReport(context.Background())
	require.NoError(t, err)
	return report
}

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"gain from nothing", 50, 0, 100},
		{"still nothing", 0, 0, 0},
		{"decline", 150, 200, -25.0},
		{"exact doubling", 80, 40, 100},
		{"fractional", 105, 100, 5.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := growthRate(decimal.NewFromFloat(tc.current), decimal.NewFromFloat(tc.previous))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildReport_ShippingFeeSplit(t *testing.T) {
	f := &fixtures{orders: []models.Order{
		{Status: "New", TotalAmount: 100, CreatedAt: testNow.AddDate(0, 0, -1)},
		// below the fee: product share floors at zero, fee still accrues
		{Status: "New", TotalAmount: 5, CreatedAt: testNow.AddDate(0, 0, -1)},
		// zero total earns nothing, not even the fee
		{Status: "New", TotalAmount: 0, CreatedAt: testNow.AddDate(0, 0, -1)},
	}}

	report := buildReport(t, f)

	assert.Equal(t, 92.0, report.Revenue.ProductRevenue.Total)
	assert.Equal(t, 16.0, report.Revenue.ShippingRevenue.Total)
	assert.Equal(t, 108.0, report.Revenue.TotalRevenue)
}

func TestBuildReport_WindowBucketing(t *testing.T) {
	f := &fixtures{orders: []models.Order{
		{Status: "New", TotalAmount: 58, CreatedAt: testNow.AddDate(0, 0, -2)},         // current month + trailing week
		{Status: "Pending", TotalAmount: 108, CreatedAt: testNow.AddDate(0, 0, -13)},   // current month only
		{Status: "Shipped", TotalAmount: 208, CreatedAt: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)}, // last calendar month
		{Status: "Shipped", TotalAmount: 308, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},  // older
	}}

	report := buildReport(t, f)

	assert.Equal(t, models.CountBuckets{Total: 4, CurrentMonth: 2, LastMonth: 1, Last7Days: 1}, report.Orders.Counts)
	assert.Equal(t, 650.0, report.Revenue.ProductRevenue.Total)
	assert.Equal(t, 150.0, report.Revenue.ProductRevenue.CurrentMonth)
	assert.Equal(t, 200.0, report.Revenue.ProductRevenue.LastMonth)
	assert.Equal(t, 50.0, report.Revenue.ProductRevenue.Last7Days)

	// 150 current vs 200 last month
	assert.Equal(t, -25.0, report.Revenue.ProductGrowth)
	// counts: 2 current vs 1 last month
	assert.Equal(t, 100.0, report.Orders.Growth)

	assert.Equal(t, map[string]int{"New": 1, "Pending": 1, "Shipped": 2}, report.Orders.ByStatus)
}

func TestBuildReport_PaymentMethodBreakdownSkipsEmpty(t *testing.T) {
	f := &fixtures{orders: []models.Order{
		{Status: "New", TotalAmount: 50, PaymentMethod: "cash", CreatedAt: testNow},
		{Status: "New", TotalAmount: 50, PaymentMethod: "card", CreatedAt: testNow},
		{Status: "New", TotalAmount: 50, PaymentMethod: "cash", CreatedAt: testNow},
		{Status: "New", TotalAmount: 50, CreatedAt: testNow},
	}}

	report := buildReport(t, f)
	assert.Equal(t, map[string]int{"cash": 2, "card": 1}, report.Orders.ByPaymentMethod)
}

func TestBuildReport_AverageOrderValueAndConversion(t *testing.T) {
	f := &fixtures{
		orders: []models.Order{
			{Status: "New", TotalAmount: 60, CreatedAt: testNow},
			{Status: "New", TotalAmount: 40, CreatedAt: testNow},
		},
		sales: []models.OfflineSale{
			{TotalAmount: 50, SaleDate: testNow},
		},
		users: make([]models.User, 10),
	}

	report := buildReport(t, f)

	// (100 + 50) / 3
	assert.Equal(t, 50.0, report.KPIs.AverageOrderValue)
	// 3 transactions over 10 users
	assert.Equal(t, 30.0, report.KPIs.ConversionRate)
	assert.Equal(t, 3, report.KPIs.TotalOrders)
}

func TestBuildReport_EmptyCollectionsYieldZeroes(t *testing.T) {
	report := buildReport(t, &fixtures{})

	assert.Equal(t, 0.0, report.KPIs.AverageOrderValue)
	assert.Equal(t, 0.0, report.KPIs.ConversionRate)
	assert.Equal(t, 0.0, report.KPIs.TotalRevenue)
	assert.Equal(t, 0.0, report.Revenue.ProductGrowth)
	assert.True(t, report.DataQuality.Orders)
}

func TestBuildReport_OfflineSalesCountFullyAsProductRevenue(t *testing.T) {
	f := &fixtures{sales: []models.OfflineSale{
		{TotalAmount: 120, SaleDate: testNow.AddDate(0, 0, -1)},
		{TotalAmount: 80, SaleDate: time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)},
	}}

	report := buildReport(t, f)

	assert.Equal(t, 200.0, report.OfflineSales.Amounts.Total)
	assert.Equal(t, 120.0, report.OfflineSales.Amounts.CurrentMonth)
	assert.Equal(t, 80.0, report.OfflineSales.Amounts.LastMonth)
	assert.Equal(t, 200.0, report.Revenue.TotalRevenue)
	assert.Equal(t, 0.0, report.Revenue.ShippingRevenue.Total)
	// offline: 120 current vs 80 last month
	assert.Equal(t, 50.0, report.Revenue.ProductGrowth)
}

func TestBuildReport_ExpensesByCategoryAndNetProfit(t *testing.T) {
	f := &fixtures{
		orders: []models.Order{{Status: "New", TotalAmount: 508, CreatedAt: testNow}},
		spendings: []models.Spending{
			{Amount: 100, Category: "marketing", Date: testNow.AddDate(0, 0, -1)},
			{Amount: 50.25, Category: "marketing", Date: testNow.AddDate(0, 0, -2)},
			{Amount: 30, Category: "rent", Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		},
	}

	report := buildReport(t, f)

	assert.Equal(t, 180.25, report.Expenses.Amounts.Total)
	assert.Equal(t, map[string]float64{"marketing": 150.25, "rent": 30}, report.Expenses.ByCategory)
	// revenue 508 (500 product + 8 shipping) minus 180.25 expenses
	assert.Equal(t, 327.75, report.KPIs.NetProfit)
	// expenses: 150.25 current vs 30 last month
	assert.Equal(t, 400.8, report.Expenses.Growth)
}

func TestBuildReport_StockClassification(t *testing.T) {
	f := &fixtures{products: []models.Product{
		{
			ID:       primitive.NewObjectID(),
			Name:     "Linen Shirt",
			Price:    30,
			Category: "shirts",
			Colors: []models.ProductColor{
				{Name: "Sand", Stock: map[string]int{"S": 0, "M": 5, "L": 6}},
			},
		},
	}}

	report := buildReport(t, f)

	require.Len(t, report.Inventory.OutOfStock, 1)
	assert.Equal(t, []string{"S"}, report.Inventory.OutOfStock[0].Sizes)
	require.Len(t, report.Inventory.LowStock, 1)
	assert.Equal(t, []string{"M"}, report.Inventory.LowStock[0].Sizes)

	assert.Equal(t, 11, report.Inventory.TotalStockUnits)
	assert.Equal(t, 330.0, report.Inventory.InventoryValue)
	assert.Equal(t, map[string]int{"shirts": 1}, report.Inventory.ByCategory)
}

func TestBuildReport_CustomerBucketsAndLocations(t *testing.T) {
	f := &fixtures{users: []models.User{
		{Governorate: "Tunis", CreatedAt: testNow.AddDate(0, 0, -2)},                      // week + 30d + current month
		{City: "Sfax", CreatedAt: testNow.AddDate(0, 0, -10)},                             // 30d + current month
		{Governorate: "Sousse", City: "Sousse", CreatedAt: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)}, // 30d + last month
		{CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},                          // old, no location
	}}

	report := buildReport(t, f)

	assert.Equal(t, 4, report.Customers.Total)
	assert.Equal(t, 3, report.Customers.Last30Days)
	assert.Equal(t, 1, report.Customers.Last7Days)
	assert.Equal(t, 2, report.Customers.CurrentMonth)
	assert.Equal(t, 1, report.Customers.LastMonth)
	assert.Equal(t, map[string]int{"Tunis": 1, "Sfax": 1, "Sousse": 1, "Unknown": 1}, report.Customers.ByLocation)
	// 2 current vs 1 last month
	assert.Equal(t, 100.0, report.Customers.Growth)
}

func TestBuildReport_NewsletterBuckets(t *testing.T) {
	f := &fixtures{subscribers: []models.Subscriber{
		{SubscribedAt: testNow.AddDate(0, 0, -1)},
		{SubscribedAt: testNow.AddDate(0, 0, -20)},
		{SubscribedAt: testNow.AddDate(0, 0, -40)},
	}}

	report := buildReport(t, f)

	assert.Equal(t, 3, report.Newsletter.Total)
	assert.Equal(t, 2, report.Newsletter.Last30Days)
	assert.Equal(t, 1, report.Newsletter.Last7Days)
}

func TestBuildReport_SourceFailureDegradesSectionOnly(t *testing.T) {
	f := &fixtures{
		ordersErr: errors.New("collection offline"),
		sales: []models.OfflineSale{
			{TotalAmount: 75, SaleDate: testNow},
		},
	}

	report := buildReport(t, f)

	assert.False(t, report.DataQuality.Orders)
	assert.True(t, report.DataQuality.OfflineSales)
	assert.Equal(t, 0, report.Orders.Counts.Total)
	assert.Equal(t, 75.0, report.OfflineSales.Amounts.Total)
	assert.Equal(t, 75.0, report.KPIs.TotalRevenue)
	assert.Equal(t, testNow, report.LastUpdated)
}

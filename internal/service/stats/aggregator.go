package stats

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/domain/models"
)

// ShippingFee is the flat shipping fee baked into every online order total.
const ShippingFee = 8

// lowStockThreshold classifies a size as low stock when its quantity is
// between 1 and this value inclusive.
const lowStockThreshold = 5

// Snapshot sources. Each fetch is independent and fault-isolated; a failed
// read degrades its report section to zero values instead of failing the
// whole report.
type (
	OrderSource interface {
		List(ctx context.Context, status string) ([]models.Order, error)
	}
	ProductSource interface {
		List(ctx context.Context) ([]models.Product, error)
	}
	UserSource interface {
		List(ctx context.Context) ([]models.User, error)
	}
	SubscriberSource interface {
		List(ctx context.Context) ([]models.Subscriber, error)
	}
	SaleSource interface {
		List(ctx context.Context, filter models.SaleFilter) ([]models.OfflineSale, error)
	}
	SpendingSource interface {
		List(ctx context.Context, filter models.SpendingFilter) ([]models.Spending, error)
	}
)

// Service describes the operations the HTTP layer and scheduler can perform.
type Service interface {
	BuildReport(ctx context.Context) (*models.StatsReport, error)
}

// Aggregator folds the six raw collections into a single KPI report.
type Aggregator struct {
	orders      OrderSource
	products    ProductSource
	users       UserSource
	subscribers SubscriberSource
	sales       SaleSource
	spendings   SpendingSource
	logger      *zap.Logger
	nowFn       func() time.Time
}

// NewAggregator wires a new aggregator instance.
func NewAggregator(orders OrderSource, products ProductSource, users UserSource, subscribers SubscriberSource, sales SaleSource, spendings SpendingSource, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		orders:      orders,
		products:    products,
		users:       users,
		subscribers: subscribers,
		sales:       sales,
		spendings:   spendings,
		logger:      logger,
		nowFn:       time.Now,
	}
}

// BuildReport fetches snapshots of all six collections concurrently and
// reduces them into one report. Monetary accumulation runs on decimals;
// rounding to two decimals happens only when the report is assembled.
func (a *Aggregator) BuildReport(ctx context.Context) (*models.StatsReport, error) {
	now := a.nowFn().UTC()
	w := ComputeWindows(now)

	var (
		wg sync.WaitGroup

		orders         []models.Order
		products       []models.Product
		users          []models.User
		subscribers    []models.Subscriber
		sales          []models.OfflineSale
		spendings      []models.Spending
		ordersErr      error
		productsErr    error
		usersErr       error
		subscribersErr error
		salesErr       error
		spendingsErr   error
	)

	wg.Add(6)
	go func() { defer wg.Done(); orders, ordersErr = a.orders.List(ctx, "") }()
	go func() { defer wg.Done(); products, productsErr = a.products.List(ctx) }()
	go func() { defer wg.Done(); users, usersErr = a.users.List(ctx) }()
	go func() { defer wg.Done(); subscribers, subscribersErr = a.subscribers.List(ctx) }()
	go func() { defer wg.Done(); sales, salesErr = a.sales.List(ctx, models.SaleFilter{}) }()
	go func() { defer wg.Done(); spendings, spendingsErr = a.spendings.List(ctx, models.SpendingFilter{}) }()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quality := models.DataQuality{
		Orders:       ordersErr == nil,
		Products:     productsErr == nil,
		Users:        usersErr == nil,
		Newsletter:   subscribersErr == nil,
		OfflineSales: salesErr == nil,
		Spendings:    spendingsErr == nil,
	}
	for name, err := range map[string]error{
		"orders": ordersErr, "products": productsErr, "users": usersErr,
		"newsletter": subscribersErr, "offline_sales": salesErr, "spendings": spendingsErr,
	} {
		if err != nil {
			a.logger.Warn("stats source unavailable, section degraded", zap.String("source", name), zap.Error(err))
		}
	}

	fee := decimal.NewFromInt(ShippingFee)

	// Online orders: the flat shipping fee is carved out of every total
	// (floored at zero) to derive product revenue; the fee itself counts as
	// shipping revenue only for strictly positive totals.
	var (
		productRev  moneyAcc
		shippingRev moneyAcc
		orderGross  decimal.Decimal
		orderCounts countAcc
		byStatus    = map[string]int{}
		byPayment   = map[string]int{}
	)
	for _, o := range orders {
		total := decimal.NewFromFloat(o.TotalAmount)
		productPart := total.Sub(fee)
		if productPart.IsNegative() {
			productPart = decimal.Zero
		}
		shippingPart := decimal.Zero
		if total.IsPositive() {
			shippingPart = fee
		}

		productRev.add(productPart, o.CreatedAt, w)
		shippingRev.add(shippingPart, o.CreatedAt, w)
		orderGross = orderGross.Add(total)
		orderCounts.add(o.CreatedAt, w)

		byStatus[o.Status]++
		if o.PaymentMethod != "" {
			byPayment[o.PaymentMethod]++
		}
	}

	// Offline sales: the whole amount is product revenue, no shipping split.
	var (
		offlineAmounts moneyAcc
		offlineCounts  countAcc
	)
	for _, s := range sales {
		offlineAmounts.add(decimal.NewFromFloat(s.TotalAmount), s.SaleDate, w)
		offlineCounts.add(s.SaleDate, w)
	}

	var (
		expenses          moneyAcc
		expenseByCategory = map[string]decimal.Decimal{}
	)
	for _, s := range spendings {
		amount := decimal.NewFromFloat(s.Amount)
		expenses.add(amount, s.Date, w)
		expenseByCategory[s.Category] = expenseByCategory[s.Category].Add(amount)
	}

	inventory := reduceInventory(products)

	customers := models.CustomerStats{ByLocation: map[string]int{}}
	for _, u := range users {
		customers.Total++
		if w.InTrailingMonth(u.CreatedAt) {
			customers.Last30Days++
		}
		if w.InTrailingWeek(u.CreatedAt) {
			customers.Last7Days++
		}
		if w.InCurrentMonth(u.CreatedAt) {
			customers.CurrentMonth++
		}
		if w.InLastMonth(u.CreatedAt) {
			customers.LastMonth++
		}
		customers.ByLocation[u.Location()]++
	}
	customers.Growth = growthRateInt(customers.CurrentMonth, customers.LastMonth)

	newsletter := models.NewsletterStats{}
	for _, s := range subscribers {
		newsletter.Total++
		if w.InTrailingMonth(s.SubscribedAt) {
			newsletter.Last30Days++
		}
		if w.InTrailingWeek(s.SubscribedAt) {
			newsletter.Last7Days++
		}
	}

	// Derived metrics combine online and offline where applicable.
	productRevGrowth := growthRate(
		productRev.currentMonth.Add(offlineAmounts.currentMonth),
		productRev.lastMonth.Add(offlineAmounts.lastMonth))
	totalRevGrowth := growthRate(
		productRev.currentMonth.Add(shippingRev.currentMonth).Add(offlineAmounts.currentMonth),
		productRev.lastMonth.Add(shippingRev.lastMonth).Add(offlineAmounts.lastMonth))
	orderGrowth := growthRateInt(
		orderCounts.currentMonth+offlineCounts.currentMonth,
		orderCounts.lastMonth+offlineCounts.lastMonth)
	expenseGrowth := growthRate(expenses.currentMonth, expenses.lastMonth)

	totalRevenue := productRev.total.Add(shippingRev.total).Add(offlineAmounts.total)
	netProfit := totalRevenue.Sub(expenses.total)

	transactionCount := orderCounts.total + offlineCounts.total
	averageOrderValue := decimal.Zero
	if transactionCount > 0 {
		averageOrderValue = orderGross.Add(offlineAmounts.total).Div(decimal.NewFromInt(int64(transactionCount)))
	}

	conversionRate := decimal.Zero
	if customers.Total > 0 {
		conversionRate = decimal.NewFromInt(int64(transactionCount)).
			Div(decimal.NewFromInt(int64(customers.Total))).
			Mul(decimal.NewFromInt(100))
	}

	report := &models.StatsReport{
		Revenue: models.RevenueStats{
			ProductRevenue:  productRev.buckets(),
			ShippingRevenue: shippingRev.buckets(),
			TotalRevenue:    round2(totalRevenue),
			NetProfit:       round2(netProfit),
			ProductGrowth:   productRevGrowth,
			TotalGrowth:     totalRevGrowth,
		},
		Orders: models.OrderStats{
			Counts:          orderCounts.buckets(),
			ByStatus:        byStatus,
			ByPaymentMethod: byPayment,
			Growth:          orderGrowth,
		},
		OfflineSales: models.OfflineSalesStats{
			Amounts: offlineAmounts.buckets(),
			Counts:  offlineCounts.buckets(),
		},
		Expenses: models.ExpenseStats{
			Amounts:    expenses.buckets(),
			ByCategory: roundCategoryMap(expenseByCategory),
			Growth:     expenseGrowth,
		},
		Inventory:  inventory,
		Customers:  customers,
		Newsletter: newsletter,
		KPIs: models.KPISummary{
			TotalRevenue:      round2(totalRevenue),
			TotalExpenses:     round2(expenses.total),
			NetProfit:         round2(netProfit),
			TotalOrders:       transactionCount,
			TotalCustomers:    customers.Total,
			AverageOrderValue: round2(averageOrderValue),
			ConversionRate:    round2(conversionRate),
			RevenueGrowth:     totalRevGrowth,
			OrderGrowth:       orderGrowth,
			ExpenseGrowth:     expenseGrowth,
			CustomerGrowth:    customers.Growth,
		},
		DataQuality: quality,
		LastUpdated: now,
	}

	return report, nil
}

func reduceInventory(products []models.Product) models.InventoryStats {
	stats := models.InventoryStats{
		ByCategory: map[string]int{},
		OutOfStock: []models.StockAlert{},
		LowStock:   []models.StockAlert{},
	}

	value := decimal.Zero
	for _, p := range products {
		stats.ProductCount++

		category := p.Category
		if category == "" {
			category = "uncategorized"
		}
		stats.ByCategory[category]++

		totalStock := p.TotalStock()
		stats.TotalStockUnits += totalStock
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(totalStock))))

		for _, color := range p.Colors {
			var outSizes, lowSizes []string
			for _, size := range sortedStockSizes(color.Stock) {
				switch qty := color.Stock[size]; {
				case qty == 0:
					outSizes = append(outSizes, size)
				case qty <= lowStockThreshold:
					lowSizes = append(lowSizes, size)
				}
			}
			if len(outSizes) > 0 {
				stats.OutOfStock = append(stats.OutOfStock, models.StockAlert{
					ProductID:   p.ID.Hex(),
					ProductName: p.Name,
					ColorName:   color.Name,
					Sizes:       outSizes,
				})
			}
			if len(lowSizes) > 0 {
				stats.LowStock = append(stats.LowStock, models.StockAlert{
					ProductID:   p.ID.Hex(),
					ProductName: p.Name,
					ColorName:   color.Name,
					Sizes:       lowSizes,
				})
			}
		}
	}

	stats.InventoryValue = round2(value)
	return stats
}

// moneyAcc accumulates one monetary metric across the reporting windows
// without intermediate rounding.
type moneyAcc struct {
	total        decimal.Decimal
	currentMonth decimal.Decimal
	lastMonth    decimal.Decimal
	last7Days    decimal.Decimal
}

func (m *moneyAcc) add(amount decimal.Decimal, t time.Time, w Windows) {
	m.total = m.total.Add(amount)
	if w.InCurrentMonth(t) {
		m.currentMonth = m.currentMonth.Add(amount)
	}
	if w.InLastMonth(t) {
		m.lastMonth = m.lastMonth.Add(amount)
	}
	if w.InTrailingWeek(t) {
		m.last7Days = m.last7Days.Add(amount)
	}
}

func (m *moneyAcc) buckets() models.MoneyBuckets {
	return models.MoneyBuckets{
		Total:        round2(m.total),
		CurrentMonth: round2(m.currentMonth),
		LastMonth:    round2(m.lastMonth),
		Last7Days:    round2(m.last7Days),
	}
}

// countAcc accumulates one counter metric across the reporting windows.
type countAcc struct {
	total        int
	currentMonth int
	lastMonth    int
	last7Days    int
}

func (c *countAcc) add(t time.Time, w Windows) {
	c.total++
	if w.InCurrentMonth(t) {
		c.currentMonth++
	}
	if w.InLastMonth(t) {
		c.lastMonth++
	}
	if w.InTrailingWeek(t) {
		c.last7Days++
	}
}

func (c *countAcc) buckets() models.CountBuckets {
	return models.CountBuckets{
		Total:        c.total,
		CurrentMonth: c.currentMonth,
		LastMonth:    c.lastMonth,
		Last7Days:    c.last7Days,
	}
}

// growthRate computes the period-over-period percentage change, rounded to
// one decimal. A zero previous period yields 100 when anything was gained
// and 0 otherwise.
func growthRate(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		Round(1).
		InexactFloat64()
}

func growthRateInt(current, previous int) float64 {
	return growthRate(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func roundCategoryMap(amounts map[string]decimal.Decimal) map[string]float64 {
	rounded := make(map[string]float64, len(amounts))
	for category, amount := range amounts {
		rounded[category] = round2(amount)
	}
	return rounded
}

func sortedStockSizes(stock map[string]int) []string {
	sizes := make([]string, 0, len(stock))
	for size := range stock {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	return sizes
}

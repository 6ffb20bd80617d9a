package models

import "time"

// MoneyBuckets holds one monetary metric split across the reporting windows.
// CurrentMonth and LastMonth are calendar months; Last7Days is a rolling
// trailing week.
type MoneyBuckets struct {
	Total        float64 `json:"total"`
	CurrentMonth float64 `json:"currentMonth"`
	LastMonth    float64 `json:"lastMonth"`
	Last7Days    float64 `json:"last7Days"`
}

// CountBuckets holds one counter metric split across the reporting windows.
type CountBuckets struct {
	Total        int `json:"total"`
	CurrentMonth int `json:"currentMonth"`
	LastMonth    int `json:"lastMonth"`
	Last7Days    int `json:"last7Days"`
}

// RevenueStats covers online product revenue, the shipping-fee share, and
// combined totals.
type RevenueStats struct {
	ProductRevenue  MoneyBuckets `json:"productRevenue"`
	ShippingRevenue MoneyBuckets `json:"shippingRevenue"`
	TotalRevenue    float64      `json:"totalRevenue"`
	NetProfit       float64      `json:"netProfit"`
	ProductGrowth   float64      `json:"productGrowth"`
	TotalGrowth     float64      `json:"totalGrowth"`
}

// OrderStats counts online orders and breaks them down by status and
// payment method.
type OrderStats struct {
	Counts          CountBuckets   `json:"counts"`
	ByStatus        map[string]int `json:"byStatus"`
	ByPaymentMethod map[string]int `json:"byPaymentMethod"`
	Growth          float64        `json:"growth"`
}

// OfflineSalesStats covers walk-in sales revenue and volume.
type OfflineSalesStats struct {
	Amounts MoneyBuckets `json:"amounts"`
	Counts  CountBuckets `json:"counts"`
}

// ExpenseStats covers recorded spendings.
type ExpenseStats struct {
	Amounts    MoneyBuckets       `json:"amounts"`
	ByCategory map[string]float64 `json:"byCategory"`
	Growth     float64            `json:"growth"`
}

// StockAlert is one product's out-of-stock or low-stock detail.
type StockAlert struct {
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	ColorName   string   `json:"colorName"`
	Sizes       []string `json:"sizes"`
}

// InventoryStats summarizes the catalog's stock position.
type InventoryStats struct {
	ProductCount    int            `json:"productCount"`
	TotalStockUnits int            `json:"totalStockUnits"`
	InventoryValue  float64        `json:"inventoryValue"`
	ByCategory      map[string]int `json:"byCategory"`
	OutOfStock      []StockAlert   `json:"outOfStock"`
	LowStock        []StockAlert   `json:"lowStock"`
}

// CustomerStats buckets storefront accounts by signup recency and location.
// Last30Days is a rolling month, distinct from the calendar CurrentMonth.
type CustomerStats struct {
	Total        int            `json:"total"`
	Last30Days   int            `json:"last30Days"`
	Last7Days    int            `json:"last7Days"`
	CurrentMonth int            `json:"currentMonth"`
	LastMonth    int            `json:"lastMonth"`
	ByLocation   map[string]int `json:"byLocation"`
	Growth       float64        `json:"growth"`
}

// NewsletterStats buckets signups by recency.
type NewsletterStats struct {
	Total      int `json:"total"`
	Last30Days int `json:"last30Days"`
	Last7Days  int `json:"last7Days"`
}

// KPISummary duplicates the headline numbers for dashboard cards.
type KPISummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalExpenses     float64 `json:"totalExpenses"`
	NetProfit         float64 `json:"netProfit"`
	TotalOrders       int     `json:"totalOrders"`
	TotalCustomers    int     `json:"totalCustomers"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	ConversionRate    float64 `json:"conversionRate"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OrderGrowth       float64 `json:"orderGrowth"`
	ExpenseGrowth     float64 `json:"expenseGrowth"`
	CustomerGrowth    float64 `json:"customerGrowth"`
}

// DataQuality flags which source collections were readable when the report
// was built. A false flag means that section degraded to zero values.
type DataQuality struct {
	Orders       bool `json:"orders"`
	Products     bool `json:"products"`
	Users        bool `json:"users"`
	Newsletter   bool `json:"newsletter"`
	OfflineSales bool `json:"offlineSales"`
	Spendings    bool `json:"spendings"`
}

// StatsReport is the full KPI report served by the stats endpoint. All
// currency figures are rounded to two decimals at build time.
type StatsReport struct {
	Revenue      RevenueStats      `bson:"revenue" json:"revenue"`
	Orders       OrderStats        `bson:"orders" json:"orders"`
	OfflineSales OfflineSalesStats `bson:"offlineSales" json:"offlineSales"`
	Expenses     ExpenseStats      `bson:"expenses" json:"expenses"`
	Inventory    InventoryStats    `bson:"inventory" json:"inventory"`
	Customers    CustomerStats     `bson:"customers" json:"customers"`
	Newsletter   NewsletterStats   `bson:"newsletter" json:"newsletter"`
	KPIs         KPISummary        `bson:"kpis" json:"kpis"`
	DataQuality  DataQuality       `bson:"dataQuality" json:"dataQuality"`
	LastUpdated  time.Time         `bson:"lastUpdated" json:"lastUpdated"`
}

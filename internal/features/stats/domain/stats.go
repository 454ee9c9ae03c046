package domain

// OrderStats breaks down recent orders by status.
type OrderStats struct {
	TotalOrders      int `json:"totalOrders"`
	PendingOrder     int `json:"pendingOrder"`
	ProcessingOrders int `json:"processingOrders"`
	CancelledOrders  int `json:"cancelledOrders"`
	ConfirmedOrders  int `json:"confirmedOrders"`
	DispatchedOrders int `json:"dispatchedOrders"`
	DeliveredOrders  int `json:"deliveredOrders"`
}

// SalesStats aggregates revenue over non-cancelled orders.
type SalesStats struct {
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int     `json:"totalOrders"`
}

// ProductStats counts the catalog.
type ProductStats struct {
	TotalProducts int `json:"totalProducts"`
}

// CategoryStats is a category annotated with its product count.
type CategoryStats struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Href         string `json:"href"`
	Page         bool   `json:"page"`
	ProductCount int    `json:"productCount"`
}

// Stats is the dashboard aggregate over the last thirty days.
type Stats struct {
	Orders     OrderStats      `json:"orders"`
	Sales      SalesStats      `json:"sales"`
	Products   ProductStats    `json:"products"`
	Categories []CategoryStats `json:"categories"`
}

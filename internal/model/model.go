// Package model содержит доменные сущности магазина AM Store.
package model

// Product описывает товар каталога.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid сообщает, входит ли статус в закрытый набор значений.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Order описывает оформленный заказ покупателя.
// ProductName и TotalPrice фиксируются в момент оформления и не
// пересчитываются при последующих изменениях каталога или тарифов.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone"`
	Wilaya       string      `json:"wilaya"`
	Baladiya     string      `json:"baladiya"`
	ProductName  string      `json:"productName"`
	TotalPrice   int64       `json:"totalPrice"`
	Date         string      `json:"date"`
	Status       OrderStatus `json:"status"`
}

// Stats содержит агрегированные показатели для панели администратора.
type Stats struct {
	TotalSales    int64 `json:"totalSales"`
	TotalOrders   int   `json:"totalOrders"`
	PendingOrders int   `json:"pendingOrders"`
	StockCount    int   `json:"stockCount"`
}

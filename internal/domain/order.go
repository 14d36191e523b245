package domain

import "time"

type OrderStatus string

const (
	OrderStatusPendingInfo OrderStatus = "pending_info"
	OrderStatusShippable   OrderStatus = "shippable"
)

// DateLayout is the format orders carry in the store.
const DateLayout = "2006-01-02 15:04"

// Order mirrors one data row of the orders table. The store keeps every cell
// as text, so the numeric fields stay raw here and are coerced where needed.
type Order struct {
	Row       int         `json:"row"` // 1-based row number in the store, header = row 1
	CreatedAt string      `json:"created_at"`
	Buyer     string      `json:"buyer"`
	Item      string      `json:"item"`
	Quantity  string      `json:"qty"`
	UnitPrice string      `json:"price"`
	Status    OrderStatus `json:"status"`
}

func NewOrder(now time.Time, buyer, item, qty, price string, status OrderStatus) *Order {
	return &Order{
		CreatedAt: now.Format(DateLayout),
		Buyer:     buyer,
		Item:      item,
		Quantity:  qty,
		UnitPrice: price,
		Status:    status,
	}
}

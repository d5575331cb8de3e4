package domain

import (
	"fmt"
	"time"
)

// Payment methods, used as the first segment of an order reference.
const (
	MethodJar     = "jar"
	MethodInvoice = "invoice"
)

// NewOrder builds a pending order with a reference of the form
// {method}_{eventId}_{chatId}_{unixMillis}.
func NewOrder(method string, event Event, chatID int64, quantity int, now time.Time) Order {
	return Order{
		Reference:  fmt.Sprintf("%s_%d_%d_%d", method, event.ID, chatID, now.UnixMilli()),
		ChatID:     chatID,
		EventID:    event.ID,
		Quantity:   quantity,
		TotalPrice: event.Price * int64(quantity),
		CreatedAt:  now,
	}
}

// TicketCode returns the unique code of the n-th ticket of the order, n
// counted from 1.
func (o Order) TicketCode(n int) string {
	return fmt.Sprintf("%s_%d", o.Reference, n)
}

package domain

import (
	"time"
)

// Event is an immutable catalog entry. Price is in kopiykas.
type Event struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Jar is a shared deposit account used to collect payments. At most one chat
// holds a reservation on a jar at a time; ReservedBy and ReservedAt are set
// and cleared together.
type Jar struct {
	ID         int        `json:"id"`
	Pc         string     `json:"pc"`
	C          string     `json:"c"`
	ClientID   string     `json:"clientId"`
	Referer    string     `json:"referer"`
	URL        string     `json:"url"`
	IsReserved bool       `json:"isReserved"`
	ReservedBy int64      `json:"reservedBy,omitempty"`
	ReservedAt *time.Time `json:"reservedAt,omitempty"`
}

// Order is a pending purchase, keyed by its reference. Jar holds a snapshot
// of the assigned jar at reservation time, not a live reference; it is nil
// for invoice-paid orders.
type Order struct {
	Reference        string    `json:"reference"`
	ChatID           int64     `json:"chatId"`
	EventID          int       `json:"eventId"`
	Quantity         int       `json:"quantity"`
	TotalPrice       int64     `json:"totalPrice"`
	PaymentConfirmed bool      `json:"paymentConfirmed"`
	Jar              *Jar      `json:"jar,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

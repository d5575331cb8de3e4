package domain

import (
	"fmt"
	"strings"
)

// Catalog is the static event list loaded at startup.
type Catalog struct {
	events []Event
}

func NewCatalog(events []Event) *Catalog {
	return &Catalog{events: events}
}

// DefaultEvents is the built-in catalog used when no events file is
// configured.
func DefaultEvents() []Event {
	return []Event{
		{ID: 1, Name: "Концерт А", Price: 500},
		{ID: 2, Name: "Фестиваль Б", Price: 75000},
	}
}

func (c *Catalog) All() []Event {
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Catalog) ByID(id int) (Event, bool) {
	for _, e := range c.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// ByTitle matches user input against event names. Keyboard labels carry a
// price suffix ("Концерт А - 5 грн."), so only the part before the first
// dash is compared.
func (c *Catalog) ByTitle(text string) (Event, bool) {
	title := EventTitle(text)
	for _, e := range c.events {
		if e.Name == title {
			return e, true
		}
	}
	return Event{}, false
}

// EventTitle strips the price suffix from a keyboard label, returning the
// trimmed text before the first dash.
func EventTitle(text string) string {
	if i := strings.IndexRune(text, '-'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// Label renders the keyboard button text for an event.
func (e Event) Label() string {
	return fmt.Sprintf("%s - %d грн.", e.Name, e.Price/100)
}

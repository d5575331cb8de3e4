package bot

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/observability"
)

// Issuer renders QR tickets and delivers them to the buyer.
type Issuer struct {
	transport Transport
	catalog   *domain.Catalog
	logger    observability.Logger
}

func NewIssuer(transport Transport, catalog *domain.Catalog, logger observability.Logger) *Issuer {
	return &Issuer{transport: transport, catalog: catalog, logger: logger}
}

// Deliver sends one QR ticket per purchased seat. A failure on one ticket is
// logged and delivery continues with the next.
func (i *Issuer) Deliver(order domain.Order) {
	event, ok := i.catalog.ByID(order.EventID)
	if !ok {
		i.logger.WithField("reference", order.Reference).
			WithField("event_id", order.EventID).
			Error("event missing from catalog, cannot issue tickets")
		return
	}

	for n := 1; n <= order.Quantity; n++ {
		code := order.TicketCode(n)
		info := fmt.Sprintf("Квиток №%d на %s\nУнікальний код: %s", n, event.Name, code)

		png, err := qrcode.Encode(info, qrcode.Medium, 256)
		if err != nil {
			i.logger.WithField("ticket_code", code).Error("failed to render ticket QR: ", err)
			continue
		}

		caption := fmt.Sprintf(msgTicketCaption, n, event.Name)
		if err := i.transport.SendPhoto(order.ChatID, png, caption); err != nil {
			i.logger.WithField("ticket_code", code).Error("failed to send ticket: ", err)
			continue
		}
		observability.TicketsIssued.Inc()
	}
}

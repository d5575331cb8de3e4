package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/ledger"
	"github.com/yevhenkap/tixjar/internal/observability"
)

// OrderCompleter finishes a paid order: tickets, cleanup, chat reset. It is
// satisfied by *bot.Handler.
type OrderCompleter interface {
	CompleteOrder(order domain.Order)
}

type Handlers struct {
	ledger    *ledger.Ledger
	completer OrderCompleter
	logger    observability.Logger
}

func NewHandlers(led *ledger.Ledger, completer OrderCompleter, logger observability.Logger) *Handlers {
	return &Handlers{
		ledger:    led,
		completer: completer,
		logger:    logger,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

const successPage = `<!doctype html>
<html lang="uk">
<head><meta charset="utf-8"><title>Оплата успішна</title></head>
<body>
<h1>✅ Оплата успішна</h1>
<p>Поверніться в чат — квитки вже в дорозі.</p>
</body>
</html>`

func (h *Handlers) Success(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(successPage))
}

// MonobankWebhook processes invoice status callbacks. The provider requires
// an acknowledgement regardless of the internal outcome, so the response is
// always 200.
func (h *Handlers) MonobankWebhook(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithField("webhook_id", uuid.NewString())

	var payload struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Warn("malformed webhook payload: ", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	observability.WebhooksReceived.WithLabelValues(payload.Status).Inc()

	if payload.Status == "success" {
		if order, ok := h.ledger.Get(payload.Reference); ok {
			h.completer.CompleteOrder(order)
		} else {
			logger.WithField("reference", payload.Reference).Error("order not found for webhook")
		}
	}

	w.WriteHeader(http.StatusOK)
}

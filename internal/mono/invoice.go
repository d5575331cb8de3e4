package mono

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/yevhenkap/tixjar/internal/observability"
)

// InvoiceClient creates merchant invoices for the direct-payment path.
type InvoiceClient struct {
	url    string
	token  string
	client *http.Client
	logger observability.Logger
}

func NewInvoiceClient(url, token string, logger observability.Logger) *InvoiceClient {
	return &InvoiceClient{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

type InvoiceRequest struct {
	Amount           int64            `json:"amount"`
	Ccy              int              `json:"ccy"`
	MerchantPaymInfo MerchantPaymInfo `json:"merchantPaymInfo"`
	RedirectURL      string           `json:"redirectUrl"`
	WebHookURL       string           `json:"webHookUrl"`
}

type MerchantPaymInfo struct {
	Reference   string `json:"reference"`
	Destination string `json:"destination"`
}

type Invoice struct {
	InvoiceID string `json:"invoiceId"`
	PageURL   string `json:"pageUrl"`
}

// CurrencyUAH is the ISO 4217 numeric code sent with every invoice.
const CurrencyUAH = 980

func (c *InvoiceClient) CreateInvoice(ctx context.Context, inv InvoiceRequest) (*Invoice, error) {
	body, err := json.Marshal(inv)
	if err != nil {
		return nil, errors.Wrap(err, "encode invoice request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build invoice request")
	}
	req.Header.Set("X-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		observability.InvoicesCreated.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "invoice request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.InvoicesCreated.WithLabelValues("error").Inc()
		return nil, errors.Newf("invoice request: unexpected status %d", resp.StatusCode)
	}

	var invoice Invoice
	if err := json.NewDecoder(resp.Body).Decode(&invoice); err != nil {
		observability.InvoicesCreated.WithLabelValues("error").Inc()
		return nil, errors.Wrap(err, "decode invoice response")
	}
	observability.InvoicesCreated.WithLabelValues("ok").Inc()
	return &invoice, nil
}

package mono

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/observability"
)

// BalanceClient queries the public jar endpoint for a jar's current amount.
// Amounts are in kopiykas.
type BalanceClient struct {
	url    string
	client *http.Client
	logger observability.Logger
}

func NewBalanceClient(url string, logger observability.Logger) *BalanceClient {
	return &BalanceClient{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

type balanceRequest struct {
	Pc       string `json:"Pc"`
	C        string `json:"c"`
	ClientID string `json:"clientId"`
	Referer  string `json:"referer"`
}

type balanceResponse struct {
	JarAmount *decimal.Decimal `json:"jarAmount"`
}

// FetchBalance returns the jar's current balance. A missing or malformed
// jarAmount field yields zero, so an unknown balance can never confirm a
// payment. Transport failures are returned to the caller, who surfaces them
// to the user for a manual retry.
func (c *BalanceClient) FetchBalance(ctx context.Context, jar domain.Jar) (decimal.Decimal, error) {
	body, err := json.Marshal(balanceRequest{
		Pc:       jar.Pc,
		C:        jar.C,
		ClientID: jar.ClientID,
		Referer:  jar.Referer,
	})
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "encode jar balance request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "build jar balance request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if jar.Referer != "" {
		req.Header.Set("Referer", jar.Referer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "jar balance request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, errors.Newf("jar balance request: unexpected status %d", resp.StatusCode)
	}

	var payload balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.WithField("jar_id", jar.ID).Warn("malformed jar balance response: ", err)
		return decimal.Zero, nil
	}
	if payload.JarAmount == nil {
		return decimal.Zero, nil
	}
	return *payload.JarAmount, nil
}

package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yevhenkap/tixjar/internal/domain"
	httphandler "github.com/yevhenkap/tixjar/internal/http"
	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/ledger"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

type recordingCompleter struct {
	completed []domain.Order
}

func (r *recordingCompleter) CompleteOrder(order domain.Order) {
	r.completed = append(r.completed, order)
}

func newRouter(t *testing.T) (http.Handler, *ledger.Ledger, *recordingCompleter) {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := observability.NewLogger()
	pool := jarpool.New(nil, store, logger, 12*time.Hour)
	led := ledger.New(store, pool, logger, 12*time.Hour)
	completer := &recordingCompleter{}
	handlers := httphandler.NewHandlers(led, completer, logger)
	return httphandler.SetupRouter(handlers, logger), led, completer
}

func TestHealth(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestSuccessPage(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/success", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Оплата успішна") {
		t.Error("expected the confirmation page body")
	}
}

func TestWebhookCompletesKnownOrder(t *testing.T) {
	router, led, completer := newRouter(t)

	event := domain.Event{ID: 1, Name: "Концерт А", Price: 500}
	order := domain.NewOrder(domain.MethodInvoice, event, 42, 2, time.Now())
	if err := led.Create(order); err != nil {
		t.Fatal(err)
	}

	body := strings.NewReader(`{"status": "success", "reference": "` + order.Reference + `"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/monobank", body))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(completer.completed) != 1 || completer.completed[0].Reference != order.Reference {
		t.Errorf("expected the order completed, got %+v", completer.completed)
	}
}

func TestWebhookAcksUnknownReference(t *testing.T) {
	router, _, completer := newRouter(t)

	body := strings.NewReader(`{"status": "success", "reference": "invoice_9_9_0"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/monobank", body))

	if rec.Code != http.StatusOK {
		t.Errorf("provider requires 200 regardless of outcome, got %d", rec.Code)
	}
	if len(completer.completed) != 0 {
		t.Error("expected no completion for an unknown reference")
	}
}

func TestWebhookAcksNonSuccessStatus(t *testing.T) {
	router, _, completer := newRouter(t)

	body := strings.NewReader(`{"status": "failure", "reference": "invoice_9_9_0"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/monobank", body))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if len(completer.completed) != 0 {
		t.Error("expected no completion for a failed payment")
	}
}

func TestWebhookAcksMalformedBody(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/monobank", strings.NewReader("not json")))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for malformed payload, got %d", rec.Code)
	}
}

package mono_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/mono"
	"github.com/yevhenkap/tixjar/internal/observability"
)

func testJar() domain.Jar {
	return domain.Jar{
		ID:       1,
		Pc:       "pc-token",
		C:        "c-token",
		ClientID: "client-1",
		Referer:  "https://send.monobank.ua/jar",
	}
}

func TestFetchBalance(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"jarAmount": 123.45}`))
	}))
	defer srv.Close()

	client := mono.NewBalanceClient(srv.URL, observability.NewLogger())
	balance, err := client.FetchBalance(context.Background(), testJar())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("expected 123.45, got %s", balance)
	}
	if gotBody["Pc"] != "pc-token" || gotBody["c"] != "c-token" || gotBody["clientId"] != "client-1" {
		t.Errorf("expected jar credentials in request body, got %v", gotBody)
	}
}

func TestFetchBalanceMissingFieldIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := mono.NewBalanceClient(srv.URL, observability.NewLogger())
	balance, err := client.FetchBalance(context.Background(), testJar())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("expected zero for missing jarAmount, got %s", balance)
	}
}

func TestFetchBalanceMalformedBodyIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := mono.NewBalanceClient(srv.URL, observability.NewLogger())
	balance, err := client.FetchBalance(context.Background(), testJar())
	if err != nil {
		t.Fatalf("expected no error for malformed body, got %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("expected zero for malformed body, got %s", balance)
	}
}

func TestFetchBalanceServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := mono.NewBalanceClient(srv.URL, observability.NewLogger())
	if _, err := client.FetchBalance(context.Background(), testJar()); err == nil {
		t.Error("expected an error for a 500 response")
	}
}

func TestFetchBalanceNetworkErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := mono.NewBalanceClient(srv.URL, observability.NewLogger())
	if _, err := client.FetchBalance(context.Background(), testJar()); err == nil {
		t.Error("expected an error when the provider is unreachable")
	}
}

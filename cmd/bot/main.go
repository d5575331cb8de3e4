package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/yevhenkap/tixjar/internal/bot"
	"github.com/yevhenkap/tixjar/internal/config"
	"github.com/yevhenkap/tixjar/internal/domain"
	httphandler "github.com/yevhenkap/tixjar/internal/http"
	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/ledger"
	"github.com/yevhenkap/tixjar/internal/mono"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/payment"
	"github.com/yevhenkap/tixjar/internal/storage"
	"github.com/yevhenkap/tixjar/internal/sweep"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := observability.NewLogger()

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to open data dir: %v", err)
	}

	catalog := domain.NewCatalog(loadEvents(cfg.EventsFile, logger))
	pool := jarpool.New(loadJars(cfg.JarsFile, logger), store, logger, cfg.ReservationTTL)
	led := ledger.New(store, pool, logger, cfg.ReservationTTL)

	balance := mono.NewBalanceClient(cfg.JarAPIURL, logger)
	engine := payment.NewEngine(balance, store, logger)
	invoices := mono.NewInvoiceClient(cfg.InvoiceAPIURL, cfg.MerchantToken, logger)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to connect to telegram: %v", err)
	}
	logger.WithField("username", api.Self.UserName).Info("telegram bot authorized")

	transport := bot.NewTransport(api)
	states := bot.NewStates(store, logger)
	issuer := bot.NewIssuer(transport, catalog, logger)
	handler := bot.NewHandler(transport, states, catalog, pool, led, engine, invoices, issuer, cfg.PublicBaseURL, logger)

	webhooks := httphandler.NewHandlers(led, handler, logger)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httphandler.SetupRouter(webhooks, logger),
	}

	sweeper := sweep.New(pool, led, logger, cfg.SweepInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(ctx, api)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("exiting with error: %v", err)
	}
	logger.Info("bot exiting")
}

// loadJars reads the jar pool definition. A missing file leaves the pool
// empty; the bot still sells through invoices.
func loadJars(path string, logger observability.Logger) []domain.Jar {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("no jar pool file, jar payments disabled: ", err)
		return nil
	}
	var jars []domain.Jar
	if err := json.Unmarshal(data, &jars); err != nil {
		logger.Error("failed to parse jar pool file: ", err)
		return nil
	}
	return jars
}

func loadEvents(path string, logger observability.Logger) []domain.Event {
	if path == "" {
		return domain.DefaultEvents()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read events file, using defaults: ", err)
		return domain.DefaultEvents()
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		logger.Warn("failed to parse events file, using defaults: ", err)
		return domain.DefaultEvents()
	}
	return events
}

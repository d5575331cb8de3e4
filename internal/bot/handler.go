package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/jarpool"
	"github.com/yevhenkap/tixjar/internal/ledger"
	"github.com/yevhenkap/tixjar/internal/mono"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/payment"
)

// InvoiceCreator is satisfied by *mono.InvoiceClient.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, inv mono.InvoiceRequest) (*mono.Invoice, error)
}

// Handler drives the per-chat purchase conversation:
// main_menu → selecting_event → selecting_quantity → selecting_payment_method
// → waiting_for_payment_confirmation → main_menu.
type Handler struct {
	transport Transport
	states    *States
	catalog   *domain.Catalog
	pool      *jarpool.Pool
	ledger    *ledger.Ledger
	engine    *payment.Engine
	invoices  InvoiceCreator
	issuer    *Issuer
	baseURL   string
	logger    observability.Logger
	now       func() time.Time
}

func NewHandler(
	transport Transport,
	states *States,
	catalog *domain.Catalog,
	pool *jarpool.Pool,
	led *ledger.Ledger,
	engine *payment.Engine,
	invoices InvoiceCreator,
	issuer *Issuer,
	baseURL string,
	logger observability.Logger,
) *Handler {
	return &Handler{
		transport: transport,
		states:    states,
		catalog:   catalog,
		pool:      pool,
		ledger:    led,
		engine:    engine,
		invoices:  invoices,
		issuer:    issuer,
		baseURL:   baseURL,
		logger:    logger,
		now:       time.Now,
	}
}

// Run consumes Telegram updates until ctx is done. Updates are handled one
// at a time, so messages within a chat are processed in arrival order.
func (h *Handler) Run(ctx context.Context, api *tgbotapi.BotAPI) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message == nil {
				continue
			}
			msg := upd.Message
			if msg.IsCommand() {
				h.HandleCommand(ctx, msg.Chat.ID, msg.Command())
				continue
			}
			h.HandleMessage(ctx, msg.Chat.ID, msg.Text)
		}
	}
}

// HandleCommand processes bot commands. /start resets the chat to the main
// menu; anything else gets the generic reprompt.
func (h *Handler) HandleCommand(ctx context.Context, chatID int64, command string) {
	if command != "start" {
		h.send(chatID, msgUnknown, MessageOptions{})
		return
	}
	h.states.Set(chatID, ChatState{State: StateMainMenu})
	h.send(chatID, msgWelcome, MessageOptions{Keyboard: mainMenuKeyboard()})
}

// HandleMessage advances the chat's state machine with one inbound message.
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) {
	st := h.states.Get(chatID)

	switch text {
	case btnEvents:
		h.send(chatID, msgChooseEvent, MessageOptions{Keyboard: eventKeyboard(h.catalog.All()), OneTime: true})
		st.State = StateSelectingEvent
		st.SelectedEvent = nil
		st.Quantity = 0
		st.Order = nil
		h.states.Set(chatID, st)
		return
	case btnHelp:
		h.send(chatID, msgHelp, MessageOptions{})
		return
	}

	switch st.State {
	case StateSelectingEvent:
		h.handleEventSelection(chatID, st, text)
	case StateSelectingQuantity:
		h.handleQuantitySelection(chatID, st, text)
	case StateSelectingPayment:
		h.handlePaymentSelection(ctx, chatID, st, text)
	case StateWaitingForConfirmation:
		h.handleConfirmation(ctx, chatID, st, text)
	default:
		h.send(chatID, msgUnknown, MessageOptions{})
	}
}

func (h *Handler) handleEventSelection(chatID int64, st ChatState, text string) {
	event, ok := h.catalog.ByTitle(text)
	if !ok {
		h.send(chatID, msgEventNotFound, MessageOptions{})
		return
	}

	st.SelectedEvent = &event
	st.State = StateSelectingQuantity
	h.states.Set(chatID, st)
	h.send(chatID, fmt.Sprintf(msgChooseQuantity, event.Name), MessageOptions{
		Keyboard: quantityKeyboard(),
		OneTime:  true,
		Markdown: true,
	})
}

func (h *Handler) handleQuantitySelection(chatID int64, st ChatState, text string) {
	quantity, err := strconv.Atoi(text)
	if err != nil || quantity < 1 || quantity > 5 {
		h.send(chatID, msgQuantityRange, MessageOptions{})
		return
	}

	st.Quantity = quantity
	st.State = StateSelectingPayment
	h.states.Set(chatID, st)
	h.send(chatID, msgChoosePayment, MessageOptions{Keyboard: paymentMethodKeyboard(), OneTime: true})
}

func (h *Handler) handlePaymentSelection(ctx context.Context, chatID int64, st ChatState, text string) {
	if st.SelectedEvent == nil || st.Quantity == 0 {
		h.reset(chatID, msgError)
		return
	}

	switch text {
	case btnPayJar:
		h.startJarPayment(ctx, chatID, st)
	case btnPayInvoice:
		h.startInvoicePayment(ctx, chatID, st)
	default:
		h.send(chatID, msgUnknown, MessageOptions{})
	}
}

// startJarPayment reserves a jar, snapshots the chat's balance baseline, and
// records the order. Any failure after the reservation releases the jar.
func (h *Handler) startJarPayment(ctx context.Context, chatID int64, st ChatState) {
	now := h.now()
	jar, err := h.pool.Assign(now, chatID)
	if err != nil {
		h.logger.WithField("chat_id", chatID).Warn("jar assignment failed: ", err)
		h.reset(chatID, msgNoJars)
		return
	}

	if _, err := h.engine.SnapshotBaseline(ctx, chatID, *jar); err != nil {
		h.logger.WithField("chat_id", chatID).Error("failed to snapshot jar baseline: ", err)
		h.pool.Release(jar.ID)
		h.reset(chatID, msgError)
		return
	}

	order := domain.NewOrder(domain.MethodJar, *st.SelectedEvent, chatID, st.Quantity, now)
	order.Jar = jar
	if err := h.ledger.Create(order); err != nil {
		h.logger.WithField("reference", order.Reference).Error("failed to record order: ", err)
		h.pool.Release(jar.ID)
		h.reset(chatID, msgError)
		return
	}

	st.Order = &order
	st.State = StateWaitingForConfirmation
	h.states.Set(chatID, st)
	h.send(chatID, fmt.Sprintf(msgJarPayment, order.TotalPrice/100, jar.URL), MessageOptions{
		Keyboard: confirmationKeyboard(),
		Markdown: true,
	})
}

// startInvoicePayment creates a merchant invoice; the order is completed
// later by the payment webhook.
func (h *Handler) startInvoicePayment(ctx context.Context, chatID int64, st ChatState) {
	order := domain.NewOrder(domain.MethodInvoice, *st.SelectedEvent, chatID, st.Quantity, h.now())
	if err := h.ledger.Create(order); err != nil {
		h.logger.WithField("reference", order.Reference).Error("failed to record order: ", err)
		h.reset(chatID, msgError)
		return
	}

	invoice, err := h.invoices.CreateInvoice(ctx, mono.InvoiceRequest{
		Amount: order.TotalPrice,
		Ccy:    mono.CurrencyUAH,
		MerchantPaymInfo: mono.MerchantPaymInfo{
			Reference:   order.Reference,
			Destination: fmt.Sprintf("Оплата %d квитків на %s", order.Quantity, st.SelectedEvent.Name),
		},
		RedirectURL: h.baseURL + "/success",
		WebHookURL:  h.baseURL + "/monobank",
	})
	if err != nil {
		h.logger.WithField("reference", order.Reference).Error("failed to create invoice: ", err)
		h.ledger.Remove(order.Reference)
		h.reset(chatID, msgInvoiceFailed)
		return
	}

	h.send(chatID, fmt.Sprintf(msgInvoiceLink, order.Quantity, st.SelectedEvent.Name, invoice.PageURL), MessageOptions{
		Markdown:       true,
		RemoveKeyboard: true,
	})
	h.states.Set(chatID, ChatState{State: StateMainMenu})
}

func (h *Handler) handleConfirmation(ctx context.Context, chatID int64, st ChatState, text string) {
	if st.Order == nil {
		h.reset(chatID, msgError)
		return
	}

	switch text {
	case btnPaid:
		order, ok := h.ledger.Get(st.Order.Reference)
		if !ok || order.Jar == nil {
			h.reset(chatID, msgError)
			return
		}
		confirmed, err := h.engine.Confirm(ctx, order, *order.Jar)
		if err != nil {
			// Stay in the confirmation state so the user can retry.
			h.logger.WithField("reference", order.Reference).Error("payment check failed: ", err)
			h.send(chatID, msgCheckFailed, MessageOptions{Keyboard: confirmationKeyboard()})
			return
		}
		if !confirmed {
			h.send(chatID, msgNotPaidYet, MessageOptions{Keyboard: confirmationKeyboard()})
			return
		}
		h.CompleteOrder(order)
	case btnCancel:
		if st.Order.Jar != nil {
			h.pool.Release(st.Order.Jar.ID)
		}
		h.ledger.Remove(st.Order.Reference)
		h.reset(chatID, msgCancelled)
	default:
		h.send(chatID, msgUnknown, MessageOptions{})
	}
}

// CompleteOrder issues the tickets, releases the order's jar, deletes the
// order, and puts the chat back in the main menu. It is called from the
// conversation flow for jar payments and from the webhook for invoices.
func (h *Handler) CompleteOrder(order domain.Order) {
	h.issuer.Deliver(order)
	h.send(order.ChatID, msgThanks, MessageOptions{Keyboard: mainMenuKeyboard()})

	if order.Jar != nil {
		h.pool.Release(order.Jar.ID)
	}
	h.ledger.Remove(order.Reference)
	h.states.Set(order.ChatID, ChatState{State: StateMainMenu})
}

// reset puts the chat back in the main menu with the given message.
func (h *Handler) reset(chatID int64, text string) {
	h.states.Set(chatID, ChatState{State: StateMainMenu})
	h.send(chatID, text, MessageOptions{Keyboard: mainMenuKeyboard()})
}

func (h *Handler) send(chatID int64, text string, opts MessageOptions) {
	if err := h.transport.SendMessage(chatID, text, opts); err != nil {
		h.logger.WithField("chat_id", chatID).Error("failed to send message: ", err)
	}
}

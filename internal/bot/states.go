package bot

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/yevhenkap/tixjar/internal/domain"
	"github.com/yevhenkap/tixjar/internal/observability"
	"github.com/yevhenkap/tixjar/internal/storage"
)

// State identifies the current step of a chat's purchase flow.
type State string

const (
	StateMainMenu               State = "main_menu"
	StateSelectingEvent         State = "selecting_event"
	StateSelectingQuantity      State = "selecting_quantity"
	StateSelectingPayment       State = "selecting_payment_method"
	StateWaitingForConfirmation State = "waiting_for_payment_confirmation"
)

// ChatState is the per-chat conversation state. Order is a copy of the
// ledger record, including the jar snapshot taken at reservation time.
type ChatState struct {
	State         State         `json:"state"`
	SelectedEvent *domain.Event `json:"selectedEvent,omitempty"`
	Quantity      int           `json:"quantity,omitempty"`
	Order         *domain.Order `json:"order,omitempty"`
}

const statesKey = "states"

// States is the per-chat state repository. Chats that were never seen start
// in the main menu.
type States struct {
	mu     sync.Mutex
	byChat map[int64]ChatState
	store  *storage.Store
	logger observability.Logger
}

func NewStates(store *storage.Store, logger observability.Logger) *States {
	s := &States{
		byChat: make(map[int64]ChatState),
		store:  store,
		logger: logger,
	}
	if err := store.Load(statesKey, &s.byChat); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load state snapshot: ", err)
	}
	return s
}

func (s *States) Get(chatID int64) ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.byChat[chatID]; ok {
		return st
	}
	return ChatState{State: StateMainMenu}
}

func (s *States) Set(chatID int64, st ChatState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byChat[chatID] = st
	if err := s.store.Save(statesKey, s.byChat); err != nil {
		s.logger.Warn("failed to persist state snapshot: ", err)
	}
}

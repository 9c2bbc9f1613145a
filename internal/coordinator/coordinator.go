package coordinator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/qmuntal/stateless"

	"github.com/hmoraes/chatlite/internal/backend"
	"github.com/hmoraes/chatlite/internal/history"
	"github.com/hmoraes/chatlite/internal/logger"
)

// FSM states. The submission gate only ever sits in one of these two.
type State stateless.State

var (
	StateIdle     State = "Idle"
	StateAwaiting State = "AwaitingResponse"
)

// FSM triggers.
type Trigger stateless.Trigger

var (
	TriggerSubmit  Trigger = "Submit"
	TriggerSettled Trigger = "Settled"
)

// ErrorReply is the fixed text appended when a request fails, whatever the
// cause; transport errors and non-2xx statuses are not distinguished.
const ErrorReply = "Sorry, something went wrong. Please try again."

var (
	// ErrEmptyInput is returned for blank or whitespace-only input.
	ErrEmptyInput = errors.New("input is empty")
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("a request is already awaiting a response")
)

// Coordinator drives one request/response cycle at a time against the
// inference endpoint, recording both sides of the exchange in the log store.
type Coordinator struct {
	transport backend.Transport
	store     *history.Store
	fsm       *stateless.StateMachine
	now       func() time.Time
}

// New creates a coordinator in the Idle state.
func New(transport backend.Transport, store *history.Store) *Coordinator {
	fsm := stateless.NewStateMachine(StateIdle)
	fsm.Configure(StateIdle).
		Permit(TriggerSubmit, StateAwaiting)
	fsm.Configure(StateAwaiting).
		Permit(TriggerSettled, StateIdle)

	return &Coordinator{
		transport: transport,
		store:     store,
		fsm:       fsm,
		now:       time.Now,
	}
}

// State reports the current gate state.
func (c *Coordinator) State(ctx context.Context) State {
	st, err := c.fsm.State(ctx)
	if err != nil {
		logger.L.Error("FSM state read failed", "error", err)
		return StateIdle
	}
	return State(st)
}

// Submit runs one full cycle: it appends the user's record, sends the message
// to the inference endpoint, appends the reply (or the fixed error record)
// once the call settles, and persists the full sequence. It returns the new
// sequence. Blank input and submission while a request is outstanding are
// rejected before anything is mutated.
func (c *Coordinator) Submit(ctx context.Context, input string) ([]history.Message, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return nil, ErrEmptyInput
	}

	if err := c.fsm.FireCtx(ctx, TriggerSubmit); err != nil {
		return nil, ErrBusy
	}

	c.store.Append(ctx, history.Message{
		Kind:      history.KindUser,
		Content:   text,
		CreatedAt: c.now().UTC(),
	})

	reply, err := c.transport.Send(ctx, text)
	kind := history.KindBot
	if err != nil {
		logger.L.Warn("inference request failed", "error", err)
		kind = history.KindError
		reply = ErrorReply
	}

	seq := c.store.Append(ctx, history.Message{
		Kind:      kind,
		Content:   reply,
		CreatedAt: c.now().UTC(),
	})

	if err := c.store.Persist(ctx, seq); err != nil {
		logger.L.Error("failed to persist chat log", "error", err)
	}

	if err := c.fsm.FireCtx(ctx, TriggerSettled); err != nil {
		logger.L.Error("FSM settle transition failed", "error", err)
	}

	return seq, nil
}

// Clear wipes the log, in memory and on disk, and leaves the gate Idle.
func (c *Coordinator) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

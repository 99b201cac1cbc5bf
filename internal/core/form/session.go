package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
)

const sessionQueueSize = 64

// Session runs one form on its own event loop. Every controller call happens on the loop
// goroutine; lookups run elsewhere and post their completions back onto the loop.
type Session struct {
	id       string
	ctrl     *Controller
	searcher portssvc.ProductSearchSvc
	logger   *slog.Logger

	events    chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	stopped   chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewSession wraps ctrl in a session. The loop starts with Start and stops when parent is
// cancelled or Close is called.
func NewSession(parent context.Context, id string, ctrl *Controller, searcher portssvc.ProductSearchSvc, logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(parent)
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:       id,
		ctrl:     ctrl,
		searcher: searcher,
		logger:   logger.With(slog.String("form_id", id)),
		events:   make(chan func(), sessionQueueSize),
		ctx:      ctx,
		cancel:   cancel,
		stopped:  make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Start launches the event loop.
func (s *Session) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ctx.Done():
			return
		case fn := <-s.events:
			fn()
		}
	}
}

// Close stops the loop and cancels in-flight lookups. It waits for the loop to exit.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.startOnce.Do(func() { close(s.stopped) })
		<-s.stopped
		s.logger.Info("Form session closed")
	})
}

// Do runs fn on the event loop and waits for its result.
func (s *Session) Do(ctx context.Context, fn func(c *Controller) error) error {
	if s.ctx.Err() != nil {
		return apperrors.ErrSessionClosed
	}
	result := make(chan error, 1)
	event := func() {
		result <- s.safely(fn)
	}

	select {
	case s.events <- event:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return apperrors.ErrSessionClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return apperrors.ErrSessionClosed
	}
}

func (s *Session) safely(fn func(c *Controller) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic in form event", slog.Any("panic", r))
			err = fmt.Errorf("form event panicked: %v", r)
		}
	}()
	return fn(s.ctrl)
}

// State returns a copy of the form.
func (s *Session) State(ctx context.Context) (domain.FormState, error) {
	var st domain.FormState
	err := s.Do(ctx, func(c *Controller) error {
		st = c.State()
		st.FormID = s.id
		return nil
	})
	return st, err
}

// AddRow appends a row and returns its index.
func (s *Session) AddRow(ctx context.Context, seed *domain.Seed) (int, error) {
	var index int
	err := s.Do(ctx, func(c *Controller) error {
		index = c.OnRowAdded(seed)
		return nil
	})
	return index, err
}

// RemoveRow deletes a row.
func (s *Session) RemoveRow(ctx context.Context, index int) error {
	return s.Do(ctx, func(c *Controller) error {
		return c.OnRowRemoved(index)
	})
}

// SelectProduct applies a product pick. The catalog lookup it may start completes
// asynchronously; its result is applied on the loop when it arrives.
func (s *Session) SelectProduct(ctx context.Context, index int, ref domain.ProductRef) error {
	return s.Do(ctx, func(c *Controller) error {
		p, err := c.OnProductSelected(s.ctx, index, ref)
		if err != nil {
			return err
		}
		if p != nil {
			go s.awaitLookup(p)
		}
		return nil
	})
}

func (s *Session) awaitLookup(p *PendingLookup) {
	select {
	case <-p.Done():
	case <-s.ctx.Done():
		return
	}
	select {
	case s.events <- func() { s.ctrl.CompleteLookup(p) }:
	case <-s.ctx.Done():
	}
}

// ClearProduct drops a row's product selection.
func (s *Session) ClearProduct(ctx context.Context, index int) error {
	return s.Do(ctx, func(c *Controller) error {
		return c.OnProductCleared(index)
	})
}

// EditField stores a typed row value.
func (s *Session) EditField(ctx context.Context, index int, field, value string) error {
	return s.Do(ctx, func(c *Controller) error {
		return c.OnFieldEdited(index, field, value)
	})
}

// EditTotalsInput stores a typed discount or paid amount.
func (s *Session) EditTotalsInput(ctx context.Context, name, value string) error {
	return s.Do(ctx, func(c *Controller) error {
		return c.OnTotalsInputEdited(name, value)
	})
}

// SearchProducts runs the type-ahead search. It does not touch form state and so
// bypasses the event loop.
func (s *Session) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	if s.ctx.Err() != nil {
		return nil, apperrors.ErrSessionClosed
	}
	if s.searcher == nil {
		return []domain.Product{}, nil
	}
	return s.searcher.Search(ctx, term)
}

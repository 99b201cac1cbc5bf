package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/core/form"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/dto"
	"github.com/google/uuid"
)

// SearchDecorator wraps the shared catalog searcher for one form, e.g. to debounce it.
type SearchDecorator func(portssvc.ProductSearchSvc) portssvc.ProductSearchSvc

type formService struct {
	BaseService
	catalog       portssvc.ProductCatalogClient
	decorate      SearchDecorator
	lookupTimeout time.Duration
	idleTimeout   time.Duration
	logger        *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*openForm
}

// openForm is a live session plus the time of its last request, in unix nanoseconds.
type openForm struct {
	session    *form.Session
	lastActive atomic.Int64
}

func (f *openForm) touch(now time.Time) {
	f.lastActive.Store(now.UnixNano())
}

func (f *openForm) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, f.lastActive.Load()))
}

// FormServiceOption is a functional option for configuring the form service
type FormServiceOption func(*formService)

// WithSearchDecorator wraps every form's type-ahead searcher.
func WithSearchDecorator(decorate SearchDecorator) FormServiceOption {
	return func(s *formService) {
		s.decorate = decorate
	}
}

// WithFormLookupTimeout bounds each catalog lookup started by a form.
func WithFormLookupTimeout(timeout time.Duration) FormServiceOption {
	return func(s *formService) {
		s.lookupTimeout = timeout
	}
}

// WithFormIdleTimeout closes forms that have seen no request for the given duration.
// Zero keeps forms open until they are closed explicitly.
func WithFormIdleTimeout(timeout time.Duration) FormServiceOption {
	return func(s *formService) {
		s.idleTimeout = timeout
	}
}

// WithFormLogger sets the logger form sessions report to.
func WithFormLogger(logger *slog.Logger) FormServiceOption {
	return func(s *formService) {
		s.logger = logger
	}
}

// FormService is the form service plus its lifecycle hook.
type FormService interface {
	portssvc.FormSvcFacade
	// Shutdown closes every open form.
	Shutdown()
}

// NewFormService creates the service that owns all open invoice forms.
func NewFormService(catalog portssvc.ProductCatalogClient, options ...FormServiceOption) FormService {
	ctx, cancel := context.WithCancel(context.Background())
	s := &formService{
		catalog:       catalog,
		lookupTimeout: form.DefaultLookupTimeout,
		logger:        slog.Default(),
		ctx:           ctx,
		cancel:        cancel,
		sessions:      make(map[string]*openForm),
	}
	for _, option := range options {
		option(s)
	}
	if s.idleTimeout > 0 {
		go s.reapIdle(s.idleTimeout / 2)
	}
	return s
}

var _ portssvc.FormSvcFacade = (*formService)(nil)

func (s *formService) CreateForm(ctx context.Context, req dto.CreateFormRequest) (*domain.FormState, error) {
	if s.ctx.Err() != nil {
		return nil, apperrors.ErrSessionClosed
	}
	formID := uuid.NewString()
	logger := s.logger.With(slog.String("form_id", formID))

	ctrl := form.NewController(s.catalog,
		form.WithLogger(logger),
		form.WithLookupTimeout(s.lookupTimeout),
	)
	ctrl.Init(req.Seeds())
	for name, value := range map[string]string{
		form.TotalsDiscount:        req.Discount,
		form.TotalsManagerDiscount: req.ManagerDiscount,
		form.TotalsAmountPaid:      req.AmountPaid,
	} {
		if value == "" {
			continue
		}
		if err := ctrl.OnTotalsInputEdited(name, value); err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", name, err)
		}
	}

	var searcher portssvc.ProductSearchSvc
	if s.catalog != nil {
		searcher = s.catalog
		if s.decorate != nil {
			searcher = s.decorate(searcher)
		}
	}
	session := form.NewSession(s.ctx, formID, ctrl, searcher, s.logger)
	session.Start()

	entry := &openForm{session: session}
	entry.touch(time.Now())
	s.mu.Lock()
	s.sessions[formID] = entry
	s.mu.Unlock()

	s.LogInfo(ctx, "Form opened", slog.String("form_id", formID), slog.Int("rows", len(req.Items)))
	return s.state(ctx, session)
}

func (s *formService) GetForm(ctx context.Context, formID string) (*domain.FormState, error) {
	session, err := s.session(formID)
	if err != nil {
		return nil, err
	}
	return s.state(ctx, session)
}

func (s *formService) CloseForm(ctx context.Context, formID string) error {
	s.mu.Lock()
	entry, ok := s.sessions[formID]
	delete(s.sessions, formID)
	s.mu.Unlock()
	if !ok {
		return apperrors.NewAppError(404, "form not found", apperrors.ErrNotFound)
	}
	entry.session.Close()
	return nil
}

func (s *formService) AddRow(ctx context.Context, formID string, seed *domain.Seed) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		_, err := session.AddRow(ctx, seed)
		return err
	})
}

func (s *formService) RemoveRow(ctx context.Context, formID string, index int) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		return session.RemoveRow(ctx, index)
	})
}

func (s *formService) SelectProduct(ctx context.Context, formID string, index int, ref domain.ProductRef) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		return session.SelectProduct(ctx, index, ref)
	})
}

func (s *formService) ClearProduct(ctx context.Context, formID string, index int) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		return session.ClearProduct(ctx, index)
	})
}

func (s *formService) EditField(ctx context.Context, formID string, index int, field, value string) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		return session.EditField(ctx, index, field, value)
	})
}

func (s *formService) EditTotalsInput(ctx context.Context, formID string, field, value string) (*domain.FormState, error) {
	return s.apply(ctx, formID, func(session *form.Session) error {
		return session.EditTotalsInput(ctx, field, value)
	})
}

func (s *formService) SearchProducts(ctx context.Context, formID string, term string) ([]domain.Product, error) {
	session, err := s.session(formID)
	if err != nil {
		return nil, err
	}
	products, err := session.SearchProducts(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products for form: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *formService) DecodeSubmission(ctx context.Context, values url.Values) (*domain.InvoiceSubmission, error) {
	sub := form.DecodeSubmission(values)
	s.LogDebug(ctx, "Decoded invoice submission", slog.Int("items", len(sub.Items)))
	return &sub, nil
}

// Shutdown closes every open form and refuses new ones.
func (s *formService) Shutdown() {
	s.cancel()
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*openForm)
	s.mu.Unlock()
	for _, entry := range sessions {
		entry.session.Close()
	}
}

func (s *formService) reapIdle(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			s.closeIdle(now)
		}
	}
}

func (s *formService) closeIdle(now time.Time) {
	var idle []*openForm
	s.mu.Lock()
	for formID, entry := range s.sessions {
		if entry.idleSince(now) >= s.idleTimeout {
			delete(s.sessions, formID)
			idle = append(idle, entry)
		}
	}
	s.mu.Unlock()

	for _, entry := range idle {
		entry.session.Close()
		s.logger.Info("Closed idle form", slog.String("form_id", entry.session.ID()))
	}
}

func (s *formService) session(formID string) (*form.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[formID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewAppError(404, "form not found", apperrors.ErrNotFound)
	}
	entry.touch(time.Now())
	return entry.session, nil
}

func (s *formService) apply(ctx context.Context, formID string, event func(*form.Session) error) (*domain.FormState, error) {
	session, err := s.session(formID)
	if err != nil {
		return nil, err
	}
	if err := event(session); err != nil {
		return nil, err
	}
	return s.state(ctx, session)
}

func (s *formService) state(ctx context.Context, session *form.Session) (*domain.FormState, error) {
	st, err := session.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read form state: %w", err)
	}
	return &st, nil
}

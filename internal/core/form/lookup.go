package form

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
)

// LookupResult is the outcome of a catalog lookup: either a product or a failure.
type LookupResult struct {
	Product domain.Product
	Err     error
}

// PendingLookup is a catalog lookup started for one row. Its result is only
// available once Done is closed.
type PendingLookup struct {
	Index     int
	ProductID string

	done   chan struct{}
	result LookupResult
}

func startLookup(ctx context.Context, svc portssvc.ProductLookupSvc, index int, productID string, timeout time.Duration) *PendingLookup {
	p := &PendingLookup{
		Index:     index,
		ProductID: productID,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.result = LookupResult{Err: fmt.Errorf("lookup of product %s panicked: %v: %w", productID, r, apperrors.ErrLookupFailed)}
			}
		}()

		if svc == nil {
			p.result = LookupResult{Err: fmt.Errorf("no catalog configured for product %s: %w", productID, apperrors.ErrLookupFailed)}
			return
		}

		lookupCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		product, err := svc.Lookup(lookupCtx, productID)
		p.result = LookupResult{Product: product, Err: err}
	}()

	return p
}

// Done is closed when the lookup has finished.
func (p *PendingLookup) Done() <-chan struct{} {
	return p.done
}

// Result returns the lookup outcome. It must only be called after Done is closed.
func (p *PendingLookup) Result() LookupResult {
	return p.result
}

// Wait blocks until the lookup finishes or ctx is cancelled.
func (p *PendingLookup) Wait(ctx context.Context) (LookupResult, error) {
	select {
	case <-p.done:
		return p.result, nil
	case <-ctx.Done():
		return LookupResult{}, ctx.Err()
	}
}

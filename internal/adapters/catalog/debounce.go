package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
)

// DefaultDebounce is how long a search waits for the user to stop typing.
const DefaultDebounce = 250 * time.Millisecond

// DebouncedSearcher delays each search and drops it if a newer search arrives in the meantime.
// One searcher serves one form, as a single type-ahead input would.
type DebouncedSearcher struct {
	next  portssvc.ProductSearchSvc
	delay time.Duration

	mu  sync.Mutex
	seq uint64
}

// NewDebouncedSearcher wraps next with a debounce delay.
func NewDebouncedSearcher(next portssvc.ProductSearchSvc, delay time.Duration) *DebouncedSearcher {
	return &DebouncedSearcher{next: next, delay: delay}
}

// Search waits out the debounce delay, then searches unless a newer call superseded this one,
// in which case it returns apperrors.ErrSuperseded.
func (d *DebouncedSearcher) Search(ctx context.Context, term string) ([]domain.Product, error) {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.mu.Unlock()

	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	d.mu.Lock()
	latest := d.seq == mine
	d.mu.Unlock()
	if !latest {
		return nil, apperrors.ErrSuperseded
	}
	return d.next.Search(ctx, term)
}

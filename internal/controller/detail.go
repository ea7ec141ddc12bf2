package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/vasanta-estates/listings-api/internal/logger"
	"github.com/vasanta-estates/listings-api/internal/models"
	"github.com/vasanta-estates/listings-api/internal/services"
)

// DetailState is the detail view's fetch state.
type DetailState int

const (
	// DetailIdle means no slug has been requested yet.
	DetailIdle DetailState = iota
	// DetailLoading means the fetch for the current slug is in flight.
	DetailLoading
	// DetailFound means the record for the current slug is loaded.
	DetailFound
	// DetailNotFound means the slug matched no record: the property does
	// not exist or was removed. Distinct from a transport failure.
	DetailNotFound
	// DetailFailed means the fetch failed; Err holds the cause.
	DetailFailed
)

// FetchFunc fetches one listing by slug, returning
// services.ErrPropertyNotFound when the slug matches nothing.
type FetchFunc func(ctx context.Context, slug string) (*models.Property, error)

// DetailSnapshot is an immutable view of the controller state.
type DetailSnapshot struct {
	Slug     string
	Property *models.Property
	Err      error
	State    DetailState
}

// DetailController owns the fetch lifecycle for a single property view.
// It is re-invoked whenever the slug changes (navigation to a different
// property); a fetch for a superseded slug never overwrites state for the
// current one, under the same sequence-number rule as the listing
// controller.
type DetailController struct {
	// notifyMu serializes onChange delivery in commit order, as in
	// ListingController. Always acquired before mu.
	notifyMu sync.Mutex
	mu       sync.Mutex
	fetch    FetchFunc
	log      *logger.Logger
	onChange func(DetailSnapshot)

	state    DetailState
	slug     string
	property *models.Property
	err      error

	seq    uint64
	cancel context.CancelFunc
}

// NewDetailController creates a controller in the Idle state.
func NewDetailController(fetch FetchFunc, log *logger.Logger, onChange func(DetailSnapshot)) *DetailController {
	return &DetailController{
		fetch:    fetch,
		log:      log,
		onChange: onChange,
		state:    DetailIdle,
	}
}

// SetSlug requests the record for the given slug, superseding any fetch
// still in flight for a previous slug.
func (c *DetailController) SetSlug(ctx context.Context, slug string) {
	c.notifyMu.Lock()
	c.mu.Lock()

	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.slug = slug
	c.state = DetailLoading
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	c.notifyMu.Unlock()

	go c.run(fetchCtx, seq, slug)
}

func (c *DetailController) run(ctx context.Context, seq uint64, slug string) {
	property, err := c.fetch(ctx, slug)

	c.notifyMu.Lock()
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.notifyMu.Unlock()
		if c.log != nil {
			c.log.Debug("Discarding stale detail result", map[string]interface{}{
				"slug": slug,
			})
		}
		return
	}

	switch {
	case err == nil:
		c.state = DetailFound
		c.property = property
		c.err = nil
	case errors.Is(err, services.ErrPropertyNotFound):
		c.state = DetailNotFound
		c.property = nil
		c.err = nil
	default:
		// Includes slug-uniqueness violations: an ambiguous slug is a
		// data-integrity failure, not a lookup miss.
		c.state = DetailFailed
		c.property = nil
		c.err = err
		if c.log != nil {
			c.log.Error("Detail fetch failed", err, map[string]interface{}{
				"slug": slug,
			})
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	c.notifyMu.Unlock()
}

// Snapshot returns the current state.
func (c *DetailController) Snapshot() DetailSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *DetailController) snapshotLocked() DetailSnapshot {
	return DetailSnapshot{
		State:    c.state,
		Slug:     c.slug,
		Property: c.property,
		Err:      c.err,
	}
}

func (c *DetailController) notify(s DetailSnapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

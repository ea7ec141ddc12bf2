// Package controller implements the client-side fetch state machines for
// the listing and detail views: one owned task per controller, superseded
// deterministically when the inputs change. Embedders (a server-rendered
// frontend, a TUI, tests) read state through snapshots and an optional
// change notification callback.
package controller

import (
	"context"
	"sync"

	"github.com/vasanta-estates/listings-api/internal/logger"
	"github.com/vasanta-estates/listings-api/internal/models"
)

// ListingState is the listing view's fetch state.
type ListingState int

const (
	// ListingIdle means no query has been issued yet.
	ListingIdle ListingState = iota
	// ListingLoading means a query for the current criteria is in flight.
	ListingLoading
	// ListingSuccess means the current result set matches the current
	// criteria. An empty result set is still a success.
	ListingSuccess
	// ListingFailed means the query for the current criteria failed.
	// The view shows its empty-results affordance with a retry option.
	ListingFailed
)

// SearchFunc issues one composed listing query.
type SearchFunc func(ctx context.Context, criteria models.FilterCriteria) ([]models.Property, error)

// ListingSnapshot is an immutable view of the controller state.
type ListingSnapshot struct {
	Criteria   models.FilterCriteria
	Properties []models.Property
	Err        error
	State      ListingState
}

// ListingController owns the fetch lifecycle for the listing view. Every
// SetFilters call replaces the criteria wholesale, issues exactly one
// query, and tags it with a monotonically increasing sequence number.
// Only the newest sequence may commit its result: an earlier-issued query
// that completes late is discarded, so displayed state always reflects
// the most recently set criteria regardless of completion order.
type ListingController struct {
	// notifyMu is held across a transition and its onChange delivery, so
	// callbacks arrive in commit order. Always acquired before mu.
	notifyMu sync.Mutex
	mu       sync.Mutex
	search   SearchFunc
	log      *logger.Logger
	onChange func(ListingSnapshot)

	state      ListingState
	criteria   models.FilterCriteria
	properties []models.Property
	err        error

	seq    uint64
	cancel context.CancelFunc
}

// NewListingController creates a controller in the Idle state. onChange,
// if non-nil, is invoked after every state transition with the new
// snapshot, in the order the transitions committed. Delivery holds the
// controller's notification lock, so callbacks must not call back into
// the controller synchronously.
func NewListingController(search SearchFunc, log *logger.Logger, onChange func(ListingSnapshot)) *ListingController {
	return &ListingController{
		search:   search,
		log:      log,
		onChange: onChange,
		state:    ListingIdle,
	}
}

// SetFilters replaces the criteria snapshot and issues a new query. The
// controller re-enters Loading from any state. A still-outstanding query
// for older criteria gets its context cancelled best-effort; whether or
// not the transport honors the cancellation, its result can no longer
// commit because its sequence number is stale.
func (c *ListingController) SetFilters(ctx context.Context, criteria models.FilterCriteria) {
	c.notifyMu.Lock()
	c.mu.Lock()

	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	queryCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.criteria = criteria
	c.state = ListingLoading
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	c.notifyMu.Unlock()

	go c.run(queryCtx, seq, criteria)
}

// run executes one query and commits the result if it is still current.
func (c *ListingController) run(ctx context.Context, seq uint64, criteria models.FilterCriteria) {
	properties, err := c.search(ctx, criteria)

	c.notifyMu.Lock()
	c.mu.Lock()
	if seq != c.seq {
		newest := c.seq
		c.mu.Unlock()
		c.notifyMu.Unlock()
		if c.log != nil {
			c.log.Debug("Discarding stale listing result", map[string]interface{}{
				"seq":    seq,
				"newest": newest,
			})
		}
		return
	}

	if err != nil {
		c.state = ListingFailed
		c.err = err
		c.properties = nil
		if c.log != nil {
			c.log.Error("Listing query failed", err, nil)
		}
	} else {
		c.state = ListingSuccess
		c.err = nil
		c.properties = properties
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	c.notifyMu.Unlock()
}

// Snapshot returns the current state.
func (c *ListingController) Snapshot() ListingSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *ListingController) snapshotLocked() ListingSnapshot {
	return ListingSnapshot{
		State:      c.state,
		Criteria:   c.criteria,
		Properties: c.properties,
		Err:        c.err,
	}
}

func (c *ListingController) notify(s ListingSnapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

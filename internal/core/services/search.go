package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/geofind/internal/core/domain"
	"github.com/custodia-labs/geofind/internal/core/ports/driven"
	"github.com/custodia-labs/geofind/internal/core/ports/driving"
	"github.com/custodia-labs/geofind/internal/logger"
	"github.com/custodia-labs/geofind/internal/normalisers/marker"
)

// Ensure SearchCoordinator implements the interface.
var _ driving.SearchCoordinator = (*SearchCoordinator)(nil)

// ErrNoBackend is returned in an outcome when the coordinator has no backend.
var ErrNoBackend = errors.New("no search backend configured")

type subscription struct {
	id int
	fn func(domain.SearchUIState)
}

// SearchCoordinator owns the search screen state: markers, info, meta,
// error, loading flag and the selected marker.
//
// Every mutation is one publish: the state is changed under a lock and the
// resulting snapshot is handed to subscribers in publish order.
// Subscribers must not call back into methods that publish.
type SearchCoordinator struct {
	backend driven.LocationBackend
	now     func() time.Time
	newID   func() string

	// publishMu serialises publish + notify so subscribers see states in order.
	publishMu sync.Mutex

	mu      sync.Mutex
	state   domain.SearchUIState
	subs    []subscription
	nextSub int
}

// NewSearchCoordinator creates a coordinator in the idle state.
func NewSearchCoordinator(backend driven.LocationBackend) *SearchCoordinator {
	return &SearchCoordinator{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
		state: domain.SearchUIState{
			Markers:   []domain.Marker{},
			Selection: domain.NoSelection(),
		},
	}
}

// Begin enters the loading state for query.
func (c *SearchCoordinator) Begin(query domain.SearchQuery) (domain.SearchTicket, bool) {
	q := query.Trimmed()
	if q.IsEmpty() {
		logger.Debug("Empty query, ignoring search")
		return domain.SearchTicket{}, false
	}

	ticket := domain.SearchTicket{
		ID:        c.newID(),
		Query:     q,
		StartedAt: c.now(),
	}

	logger.Section("Location Search")
	logger.Info("Search %s: %s %q", ticket.ID, q.Type, q.Value)

	c.publish(func(s *domain.SearchUIState) {
		s.Loading = true
		s.ErrorMessage = ""
		s.ErrorKind = domain.ErrorKindNone
		s.Markers = []domain.Marker{}
		s.Info = nil
		s.Selection = domain.NoSelection()
		s.Meta = domain.SearchMeta{Type: q.Type, Value: q.Value}
		s.Revision++
	})

	return ticket, true
}

// Fetch performs the backend request for ticket and normalises the payload.
// It does not touch coordinator state and is safe to run off the UI loop.
// Panics in the backend are recovered into the outcome error.
func (c *SearchCoordinator) Fetch(ctx context.Context, ticket domain.SearchTicket) (outcome domain.SearchOutcome) {
	outcome.Ticket = ticket

	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Search %s panicked: %v", ticket.ID, r)
			outcome = domain.SearchOutcome{
				Ticket: ticket,
				Err:    fmt.Errorf("search panicked: %v", r),
			}
		}
	}()

	q := ticket.Query
	if !q.Type.IsValid() {
		outcome.Err = fmt.Errorf("%w: %s", domain.ErrUnknownSearchType, q.Type)
		return outcome
	}
	if c.backend == nil {
		outcome.Err = ErrNoBackend
		return outcome
	}

	payload, err := c.backend.Search(ctx, driven.SearchRequest{
		ID:    ticket.ID,
		Type:  q.Type,
		Value: q.Value,
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if payload == nil {
		payload = &driven.SearchPayload{}
	}

	outcome.Markers = marker.Markers(payload.Markers)
	outcome.Info = marker.Info(payload.Info)
	outcome.Count = marker.Count(payload.Count, len(outcome.Markers))

	logger.Debug("Search %s: %d markers normalised (count %d)",
		ticket.ID, len(outcome.Markers), outcome.Count)

	return outcome
}

// Complete publishes outcome. The loading flag is always cleared, last.
func (c *SearchCoordinator) Complete(outcome domain.SearchOutcome) {
	elapsed := time.Duration(0)
	if !outcome.Ticket.StartedAt.IsZero() {
		elapsed = c.now().Sub(outcome.Ticket.StartedAt)
	}

	c.publish(func(s *domain.SearchUIState) {
		defer func() { s.Loading = false }()

		if outcome.Err != nil {
			s.ErrorKind = domain.ErrorKindHard
			s.ErrorMessage = errorMessage(outcome.Err)
			return
		}

		markers := outcome.Markers
		if markers == nil {
			markers = []domain.Marker{}
		}
		s.Markers = markers
		s.Info = outcome.Info
		s.Meta.Count = outcome.Count
		s.Revision++

		if len(markers) == 0 {
			s.ErrorKind = domain.ErrorKindSoftEmpty
			s.ErrorMessage = domain.MessageNoResults
			return
		}
		s.Selection = domain.Select(markers[0].ID)
	})

	if outcome.Err != nil {
		logger.Warn("Search %s failed after %s: %v", outcome.Ticket.ID, elapsed, outcome.Err)
		return
	}
	logger.Info("Search %s completed in %s: %d markers", outcome.Ticket.ID, elapsed, len(outcome.Markers))
}

// Search runs a complete search synchronously and returns the final state.
func (c *SearchCoordinator) Search(ctx context.Context, query domain.SearchQuery) (state domain.SearchUIState) {
	ticket, ok := c.Begin(query)
	if !ok {
		return c.State()
	}

	outcome := domain.SearchOutcome{
		Ticket: ticket,
		Err:    errors.New(domain.MessageUnexpected),
	}
	defer func() {
		c.Complete(outcome)
		state = c.State()
	}()

	outcome = c.Fetch(ctx, ticket)
	return state
}

// Select sets the active marker. The id is not validated against the
// current markers.
func (c *SearchCoordinator) Select(id domain.MarkerID) {
	logger.Debug("Select marker %q", id)
	c.publish(func(s *domain.SearchUIState) {
		s.Selection = domain.Select(id)
	})
}

// State returns a snapshot of the current state.
func (c *SearchCoordinator) State() domain.SearchUIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every publish.
func (c *SearchCoordinator) Subscribe(fn func(domain.SearchUIState)) func() {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *SearchCoordinator) publish(mutate func(s *domain.SearchUIState)) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state.Clone()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot.Clone())
	}
}

// errorMessage renders err for display, falling back to a generic message.
func errorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return domain.MessageUnexpected
	}
	return msg
}

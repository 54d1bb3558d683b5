package content

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Table is the table the store mirrors and watches.
const Table = "content_sections"

// Fetcher reads the full content section table ordered by sort_order.
type Fetcher interface {
	FindAllOrdered(ctx context.Context) ([]models.ContentSection, error)
}

type snapshot struct {
	all    []models.ContentSection
	byType map[string]int
	active []models.ContentSection
}

func newSnapshot(rows []models.ContentSection) snapshot {
	all := make([]models.ContentSection, len(rows))
	copy(all, rows)
	sort.SliceStable(all, func(i, j int) bool { return all[i].SortOrder < all[j].SortOrder })

	s := snapshot{
		all:    all,
		byType: make(map[string]int, len(all)),
		active: make([]models.ContentSection, 0, len(all)),
	}
	for i, row := range all {
		if _, seen := s.byType[row.SectionType]; !seen {
			s.byType[row.SectionType] = i
		}
		if row.Active() {
			s.active = append(s.active, row)
		}
	}
	return s
}

// Store keeps an in-memory mirror of the content section table and re-reads it
// whenever a change notification arrives. Each refresh takes a token; a result
// whose token is not the most recently issued is discarded.
type Store struct {
	fetcher    Fetcher
	subscriber realtime.Subscriber
	logger     zerolog.Logger

	token atomic.Uint64

	mu          sync.RWMutex
	state       snapshot
	lastErr     string
	loading     bool
	started     bool
	stopped     bool
	unsubscribe func()
	refreshes   sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewStore(fetcher Fetcher, subscriber realtime.Subscriber) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		fetcher:    fetcher,
		subscriber: subscriber,
		logger:     log.With().Str("component", "contentStore").Logger(),
		state:      newSnapshot(nil),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start subscribes to changes on the content section table and performs the initial read.
// A failed initial read is recorded in Err and does not fail Start.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	unsubscribe, err := s.subscriber.Subscribe(Table, realtime.EventAll, s.onChange)
	if err != nil {
		return errs.NewSubscriptionError(Table, err)
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Initial content section read failed")
	}
	return nil
}

// Stop cancels the subscription and any in-flight refresh. State is frozen afterwards.
func (s *Store) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	s.cancel()
	s.refreshes.Wait()
}

func (s *Store) onChange(evt realtime.Event) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.refreshes.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.refreshes.Done()
		if err := s.Refresh(s.ctx); err != nil {
			s.logger.Warn().Err(err).Str("event", string(evt.Type)).Msg("Content section refresh failed")
		}
	}()
}

// Refresh re-reads the whole table and replaces the state atomically.
// On failure the previous state is kept and the error text is recorded.
func (s *Store) Refresh(ctx context.Context) error {
	token := s.token.Add(1)

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	rows, err := s.fetcher.FindAllOrdered(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || token != s.token.Load() {
		s.logger.Debug().Uint64("token", token).Msg("Discarding superseded content section read")
		return nil
	}
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return errs.NewBackendUnavailableError("fetch content sections", err)
	}

	s.state = newSnapshot(rows)
	s.lastErr = ""
	return nil
}

// Section returns the first section of the given type by ascending sort order.
func (s *Store) Section(sectionType string) (models.ContentSection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.state.byType[sectionType]
	if !ok {
		return models.ContentSection{}, false
	}
	return s.state.all[i], true
}

// Metadata returns a copy of the metadata of Section(sectionType).
func (s *Store) Metadata(sectionType string) (map[string]interface{}, bool) {
	section, ok := s.Section(sectionType)
	if !ok {
		return nil, false
	}
	meta := make(map[string]interface{}, len(section.Metadata))
	for k, v := range section.Metadata {
		meta[k] = v
	}
	return meta, true
}

// Sections returns every row ordered by sort order.
func (s *Store) Sections() []models.ContentSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ContentSection(nil), s.state.all...)
}

// ActiveSections returns rows whose is_active flag is true, in sort order.
func (s *Store) ActiveSections() []models.ContentSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ContentSection(nil), s.state.active...)
}

// Err returns the text of the last failed read, or "" after a successful one.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loading reports whether the most recent refresh is still in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

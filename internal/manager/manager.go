package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/glassroom/internal/cache"
)

// ErrClosed is returned by operations on a closed Manager.
var ErrClosed = errors.New("manager closed")

// ErrStalePageToken is returned by RefreshList for a page token that is not
// the manager's current NextPageToken.
var ErrStalePageToken = errors.New("stale page token")

// Status is the load state of a Manager.
type Status int

const (
	// Idle: nothing loaded yet (the list may hold cached items).
	Idle Status = iota
	// Loading: a refresh is in flight.
	Loading
	// Loaded: the last refresh or cache read succeeded.
	Loaded
	// Failed: the last refresh failed; the last known items are kept.
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Snapshot is a copy of a Manager's state at one point in time.
type Snapshot[T any] struct {
	Status        Status
	Items         []T
	NextPageToken string
	Err           error
}

// Loading reports whether a refresh was in flight.
func (s Snapshot[T]) Loading() bool {
	return s.Status == Loading
}

// subscriberBuffer is how many undelivered events a subscriber may hold
// before the oldest is dropped.
const subscriberBuffer = 16

// refreshKey is the singleflight key; all refreshes of a manager share it.
const refreshKey = "refresh"

// Manager owns the list of one resource kind for one owner.
//
// Thread-safety: all methods are safe for concurrent use.
type Manager[T any] struct {
	key    string
	list   ListFunc[T]
	store  cache.Store
	logger *slog.Logger

	flight singleflight.Group
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	state   Snapshot[T]
	subs    map[int]chan Snapshot[T]
	nextSub int
	closed  bool
	current *waiters
}

// waiters tracks the callers of the refresh in flight. The refresh runs
// under ctx, which is cancelled by Close or once every caller has given up.
type waiters struct {
	ctx    context.Context
	cancel context.CancelFunc
	count  int
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for refresh failures and cache degradations.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a Manager persisting under key in store. A nil store disables
// caching.
func New[T any](key string, list ListFunc[T], store cache.Store, opts ...Option) *Manager[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager[T]{
		key:    key,
		list:   list,
		store:  store,
		logger: o.logger.With("cache_key", key),
		ctx:    ctx,
		cancel: cancel,
		state:  Snapshot[T]{Status: Idle, Items: []T{}},
		subs:   make(map[int]chan Snapshot[T]),
	}
}

// Key returns the cache key the manager persists under.
func (m *Manager[T]) Key() string {
	return m.key
}

// Snapshot returns a copy of the current state.
func (m *Manager[T]) Snapshot() Snapshot[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager[T]) snapshotLocked() Snapshot[T] {
	s := m.state
	s.Items = slices.Clone(m.state.Items)
	if s.Items == nil {
		s.Items = []T{}
	}
	return s
}

// LoadList loads the list, preferring the cache.
//
// Without bypassCache a non-empty cache read moves straight to Loaded and
// no request is made; an empty or unreadable cache falls through to a full
// refresh. With bypassCache the cached items are shown while all pages are
// fetched again.
func (m *Manager[T]) LoadList(ctx context.Context, bypassCache bool) (Snapshot[T], error) {
	if m.isClosed() {
		return m.Snapshot(), ErrClosed
	}

	cached := m.readCache(ctx)

	if !bypassCache && len(cached) > 0 {
		m.mu.Lock()
		m.state = Snapshot[T]{Status: Loaded, Items: cached}
		snap := m.snapshotLocked()
		m.notifyLocked(snap)
		m.mu.Unlock()

		m.logger.Debug("list loaded from cache", "items", len(cached))
		return snap, nil
	}

	if len(cached) > 0 {
		m.mu.Lock()
		if len(m.state.Items) == 0 {
			m.state.Items = cached
		}
		m.mu.Unlock()
	}

	return m.RefreshList(ctx, "", true)
}

// RefreshList fetches the page at pageToken and commits it.
//
// An empty pageToken replaces the in-memory list; a non-empty one appends.
// With fetchAllPages the following pages are fetched too and committed
// together. On success the list is persisted to the cache. On failure the
// manager moves to Failed, keeps its items, and returns the error alongside
// the Failed snapshot.
//
// A non-empty pageToken other than the current NextPageToken is stale: no
// request is made and ErrStalePageToken is returned with the current
// snapshot.
//
// A call made while another refresh is in flight waits for that refresh and
// returns its result. Cancelling ctx abandons only this caller's wait; the
// refresh itself is cancelled when every waiting caller has given up.
func (m *Manager[T]) RefreshList(ctx context.Context, pageToken string, fetchAllPages bool) (Snapshot[T], error) {
	if m.isClosed() {
		return m.Snapshot(), ErrClosed
	}

	w := m.join()
	defer m.leave(w)

	ch := m.flight.DoChan(refreshKey, func() (any, error) {
		return m.refresh(w.ctx, pageToken, fetchAllPages)
	})

	select {
	case res := <-ch:
		snap, _ := res.Val.(Snapshot[T])
		if res.Err != nil && ctx.Err() != nil {
			return snap, ctx.Err()
		}
		return snap, res.Err
	case <-ctx.Done():
		return m.Snapshot(), ctx.Err()
	}
}

// LoadMore fetches the next page when there is one. Without a next page it
// returns the current snapshot.
func (m *Manager[T]) LoadMore(ctx context.Context) (Snapshot[T], error) {
	snap := m.Snapshot()
	if snap.NextPageToken == "" {
		return snap, nil
	}
	return m.RefreshList(ctx, snap.NextPageToken, false)
}

// ClearCache overwrites the persisted list with an empty one. The in-memory
// state is untouched.
func (m *Manager[T]) ClearCache(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	if err := cache.Clear(ctx, m.store, m.key); err != nil {
		m.logger.Warn("cache clear failed", "error", err)
		return err
	}
	return nil
}

// Subscribe returns a channel receiving a Snapshot after every state change,
// and a func that unsubscribes. The channel is closed on unsubscribe or
// Close. A subscriber that falls behind loses its oldest events.
func (m *Manager[T]) Subscribe() (<-chan Snapshot[T], func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Snapshot[T], subscriberBuffer)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(sub)
			}
		})
	}
}

// Close cancels any in-flight refresh and closes all subscriptions. Later
// loads and refreshes fail with ErrClosed. Close is idempotent.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Manager[T]) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// join registers a caller with the refresh in flight, starting a new
// waiters record when there is none.
func (m *Manager[T]) join() *waiters {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		ctx, cancel := context.WithCancel(m.ctx)
		m.current = &waiters{ctx: ctx, cancel: cancel}
	}
	m.current.count++
	return m.current
}

// leave drops a caller. The last one out cancels the refresh context, which
// only aborts work when the refresh has not finished yet.
func (m *Manager[T]) leave(w *waiters) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w.count--
	if w.count > 0 {
		return
	}
	w.cancel()
	if m.current == w {
		m.current = nil
	}
}

// refresh runs inside the singleflight group under the waiters' context.
func (m *Manager[T]) refresh(ctx context.Context, pageToken string, fetchAll bool) (Snapshot[T], error) {
	m.mu.Lock()
	if pageToken != "" && pageToken != m.state.NextPageToken {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		m.logger.Debug("stale page token rejected", "page_token", pageToken)
		return snap, fmt.Errorf("%w: %q", ErrStalePageToken, pageToken)
	}
	m.state.Status = Loading
	m.state.Err = nil
	m.notifyLocked(m.snapshotLocked())
	m.mu.Unlock()

	fetched, next, err := m.fetch(ctx, pageToken, fetchAll)
	if err != nil {
		return m.fail(err)
	}

	m.mu.Lock()
	if pageToken == "" {
		m.state.Items = fetched
	} else {
		m.state.Items = append(slices.Clone(m.state.Items), fetched...)
	}
	m.state.Status = Loaded
	m.state.NextPageToken = next
	m.state.Err = nil
	snap := m.snapshotLocked()
	m.notifyLocked(snap)
	m.mu.Unlock()

	m.logger.Debug("list refreshed",
		"items", len(snap.Items),
		"fetched", len(fetched),
		"has_next_page", next != "",
	)

	m.writeCache(m.ctx, snap.Items)
	return snap, nil
}

// fetch calls list starting at pageToken, following next-page tokens when
// fetchAll is set. Returns the accumulated items and the last next-page
// token.
func (m *Manager[T]) fetch(ctx context.Context, pageToken string, fetchAll bool) ([]T, string, error) {
	items := []T{}
	token := pageToken
	seen := map[string]bool{}

	for {
		page, err := m.list(ctx, token)
		if err != nil {
			return nil, "", err
		}
		items = append(items, page.Items...)

		next := page.NextPageToken
		if !fetchAll || next == "" {
			return items, next, nil
		}
		if seen[next] {
			return nil, "", fmt.Errorf("page token %q repeated", next)
		}
		seen[next] = true
		token = next
	}
}

func (m *Manager[T]) fail(err error) (Snapshot[T], error) {
	m.mu.Lock()
	m.state.Status = Failed
	m.state.Err = err
	snap := m.snapshotLocked()
	m.notifyLocked(snap)
	m.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		m.logger.Info("refresh cancelled")
	} else {
		m.logger.Error("refresh failed", "error", err)
	}
	return snap, err
}

// notifyLocked delivers snap to every subscriber without blocking.
// Caller must hold m.mu.
func (m *Manager[T]) notifyLocked(snap Snapshot[T]) {
	if m.closed {
		return
	}
	for _, ch := range m.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Full: drop the oldest event and retry once.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// readCache returns the cached list, or nil when there is none or it cannot
// be read.
func (m *Manager[T]) readCache(ctx context.Context) []T {
	if m.store == nil {
		return nil
	}
	items, err := cache.ReadList[T](ctx, m.store, m.key)
	if err != nil {
		m.logger.Warn("cache read failed, treating as empty", "error", err)
		return nil
	}
	return items
}

func (m *Manager[T]) writeCache(ctx context.Context, items []T) {
	if m.store == nil {
		return
	}
	if err := cache.WriteList(ctx, m.store, m.key, items); err != nil {
		m.logger.Warn("cache write failed", "error", err)
	}
}

// Package catalog holds the paginated catalog listing state: initial load,
// debounced search, infinite scroll and the derived visible set.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/animabing/animabing/internal/models"
)

const (
	// DefaultPageSize is the number of items requested per page
	DefaultPageSize = 36
	// DebounceDelay is the quiet period before a typed query is searched
	DebounceDelay = 500 * time.Millisecond
	// ScrollThreshold is the fraction of the content height that triggers
	// loading the next page
	ScrollThreshold = 0.8
)

var errSearch = errors.New("search failed")

// Fetcher is the network side of the catalog
type Fetcher interface {
	FetchPage(ctx context.Context, page, pageSize int) ([]models.ContentItem, error)
	Search(ctx context.Context, query string) ([]models.ContentItem, error)
}

// Phase is the state of a listing session
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseIdle
	PhaseSearching
	PhaseLoadingMore
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhaseLoadingMore:
		return "loading-more"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Empty describes why nothing is shown
type Empty int

const (
	NotEmpty Empty = iota
	EmptyLoading
	EmptyNoResults // a search matched nothing
	EmptyCatalog   // the catalog itself is empty
	EmptyErrored
)

// generations are unique across sessions, so a result addressed to a
// closed session never matches a newer one
var generations atomic.Int64

func nextGen() int {
	return int(generations.Add(1))
}

// Options configures a Model
type Options struct {
	PageSize int
	Debounce time.Duration
	Logger   *slog.Logger
}

// Model is one listing session. It is driven from a single goroutine through
// Update; fetches run as tea.Cmds and report back through messages.
type Model struct {
	fetcher  Fetcher
	ctx      context.Context
	cancel   context.CancelFunc
	pageSize int
	debounce time.Duration
	logger   *slog.Logger

	items   []models.ContentItem
	page    int
	hasMore bool
	loading bool // a next-page request is in flight
	phase   Phase
	err     error

	query      string // as typed
	lastSearch string // query the current items were fetched for
	searched   bool   // items are search results
	seq        int    // debounce sequence
	gen        int    // renewed whenever the item list is reset
	closed     bool
}

// New creates a listing session
func New(fetcher Fetcher, opts Options) *Model {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DebounceDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		fetcher:  fetcher,
		ctx:      ctx,
		cancel:   cancel,
		pageSize: opts.PageSize,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		phase:    PhaseInitial,
	}
}

// Init loads the first page
func (m *Model) Init() tea.Cmd {
	return m.loadInitial(false)
}

// Close ends the session. Results of requests still in flight are dropped.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.gen = nextGen()
	m.cancel()
}

// Closed reports whether Close was called
func (m *Model) Closed() bool { return m.closed }

// loadInitial resets the list and fetches page 1, or runs the current
// search when isSearch is set.
func (m *Model) loadInitial(isSearch bool) tea.Cmd {
	if m.closed {
		return nil
	}

	m.gen = nextGen()
	m.loading = false
	m.err = nil

	if isSearch && m.lastSearch != "" {
		m.phase = PhaseSearching
		m.hasMore = false
		return m.searchCmd(m.gen, m.lastSearch)
	}

	m.phase = PhaseInitial
	m.lastSearch = ""
	return m.fetchPageCmd(m.gen, "", 1, false)
}

// SetQuery records the typed query and schedules a debounced search.
// A newer call supersedes any pending one.
func (m *Model) SetQuery(query string) tea.Cmd {
	if m.closed {
		return nil
	}
	m.query = query
	m.seq++
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Seq: seq}
	})
}

// Query returns the query as typed
func (m *Model) Query() string { return m.query }

// Scrolled reports the viewport position. Crossing the threshold loads the
// next page unless a load is in flight or there are no more pages.
func (m *Model) Scrolled(position, height float64) tea.Cmd {
	if m.closed || m.phase != PhaseIdle || m.loading || !m.hasMore || m.searched {
		return nil
	}
	if height <= 0 || position < ScrollThreshold*height {
		return nil
	}

	m.loading = true
	m.phase = PhaseLoadingMore
	return m.fetchPageCmd(m.gen, m.lastSearch, m.page+1, true)
}

// Retry reruns the request that failed
func (m *Model) Retry() tea.Cmd {
	if m.phase != PhaseFailed {
		return nil
	}
	return m.loadInitial(m.lastSearch != "")
}

// Update handles fetch results and debounce ticks
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case DebounceMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		return m, m.runQuery()

	case SearchLoadedMsg:
		if !m.current(msg.Gen, msg.Query) {
			m.logger.Debug("dropping stale search result", "query", msg.Query, "current", m.lastSearch)
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Warn("search failed", "query", msg.Query, "error", msg.Err)
			m.phase = PhaseFailed
			m.err = fmt.Errorf("%w: %w", errSearch, msg.Err)
			return m, nil
		}
		m.items = msg.Items
		m.page = 1
		m.hasMore = false
		m.searched = true
		m.phase = PhaseIdle
		return m, nil

	case PageLoadedMsg:
		if !m.current(msg.Gen, msg.Query) {
			m.logger.Debug("dropping stale page", "page", msg.Page)
			return m, nil
		}
		if msg.Append {
			return m, m.appendPage(msg)
		}
		if msg.Err != nil {
			m.logger.Warn("failed to load catalog", "error", msg.Err)
			m.phase = PhaseFailed
			m.err = msg.Err
			return m, nil
		}
		m.items = msg.Items
		m.page = 1
		m.hasMore = len(msg.Items) == m.pageSize
		m.searched = false
		m.phase = PhaseIdle
		return m, nil
	}

	return m, nil
}

func (m *Model) appendPage(msg PageLoadedMsg) tea.Cmd {
	m.loading = false
	m.phase = PhaseIdle

	if msg.Err != nil {
		// the list stays usable, it just ends here
		m.logger.Debug("load more failed", "page", msg.Page, "error", msg.Err)
		m.hasMore = false
		return nil
	}

	m.items = append(m.items, msg.Items...)
	m.page = msg.Page
	m.hasMore = len(msg.Items) == m.pageSize
	return nil
}

// runQuery acts on the debounced query
func (m *Model) runQuery() tea.Cmd {
	q := strings.TrimSpace(m.query)
	if q == "" {
		if m.lastSearch == "" {
			return nil
		}
		return m.loadInitial(false)
	}
	if q == m.lastSearch {
		return nil
	}

	m.lastSearch = q
	return m.loadInitial(true)
}

// current reports whether a result belongs to the live list and query
func (m *Model) current(gen int, query string) bool {
	return gen == m.gen && query == m.lastSearch
}

func (m *Model) fetchPageCmd(gen int, query string, page int, appendMode bool) tea.Cmd {
	ctx, fetcher, size := m.ctx, m.fetcher, m.pageSize
	return func() tea.Msg {
		items, err := fetcher.FetchPage(ctx, page, size)
		return PageLoadedMsg{Gen: gen, Query: query, Page: page, Append: appendMode, Items: items, Err: err}
	}
}

func (m *Model) searchCmd(gen int, query string) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		items, err := fetcher.Search(ctx, query)
		return SearchLoadedMsg{Gen: gen, Query: query, Items: items, Err: err}
	}
}

// Items returns the raw, unfiltered list
func (m *Model) Items() []models.ContentItem { return m.items }

// Visible returns the filtered view of the raw list
func (m *Model) Visible(contentType, subDub string, sortByTitle bool) []models.ContentItem {
	return Visible(m.items, contentType, subDub, sortByTitle)
}

// Phase returns the current state
func (m *Model) Phase() Phase { return m.phase }

// Page returns the last loaded page number
func (m *Model) Page() int { return m.page }

// HasMore reports whether scrolling can load another page
func (m *Model) HasMore() bool { return m.hasMore }

// Loading reports whether any fetch is outstanding
func (m *Model) Loading() bool {
	return m.phase == PhaseInitial || m.phase == PhaseSearching || m.phase == PhaseLoadingMore
}

// Searched reports whether the items are search results
func (m *Model) Searched() bool { return m.searched }

// LastSearch returns the query the current items belong to
func (m *Model) LastSearch() string { return m.lastSearch }

// Err returns the error that put the session into PhaseFailed
func (m *Model) Err() error { return m.err }

// IsSearchError reports whether err came from a failed search
func IsSearchError(err error) bool { return errors.Is(err, errSearch) }

// EmptyState classifies an empty visible list
func (m *Model) EmptyState(visibleCount int) Empty {
	switch {
	case m.phase == PhaseFailed:
		return EmptyErrored
	case visibleCount > 0:
		return NotEmpty
	case m.phase == PhaseInitial || m.phase == PhaseSearching:
		return EmptyLoading
	case m.searched:
		return EmptyNoResults
	default:
		return EmptyCatalog
	}
}

package browse

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
	"github.com/uvalib/virgo4-finna-ws/internal/view"
)

// ErrSuperseded is returned when a response arrives after a newer search
// replaced the state it was meant for. The response is discarded.
var ErrSuperseded = errors.New("search superseded by a newer search")

// Searcher fetches one page of search results
type Searcher interface {
	Search(ctx context.Context, req finna.SearchRequest) (*finna.Response, error)
}

// Filters narrow a search
type Filters struct {
	BooksOnly   bool
	FinnishOnly bool
}

// State is a snapshot of the accumulated search results
type State struct {
	Query       string
	Filters     Filters
	Page        int
	Items       []view.ListItem
	TotalCount  int
	HasMore     bool
	Loading     bool
	LoadingMore bool
	Err         error
}

// Controller accumulates search results page by page. It is safe for
// concurrent use; its lock is never held while a page is being fetched.
type Controller struct {
	searcher Searcher
	pageSize int

	mu         sync.Mutex
	generation uint64
	filters    Filters
	state      State
}

// NewController creates a controller fetching pageSize records per page
func NewController(searcher Searcher, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = finna.DefaultPageSize
	}
	return &Controller{
		searcher: searcher,
		pageSize: pageSize,
		state:    State{Page: 1, Items: []view.ListItem{}},
	}
}

// SetFilters sets the filters used by the next submitted search
func (c *Controller) SetFilters(f Filters) {
	c.mu.Lock()
	c.filters = f
	c.mu.Unlock()
}

// Filters returns the filters the next submitted search will use
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	return s
}

// Submit starts a new search, replacing any accumulated results. It reports
// false without fetching when the query is blank or a new search is already
// in flight.
func (c *Controller) Submit(ctx context.Context, query string) (bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return false, nil
	}

	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return false, nil
	}
	c.generation++
	gen := c.generation
	filters := c.filters
	c.state = State{
		Query:   query,
		Filters: filters,
		Page:    1,
		Items:   []view.ListItem{},
		Loading: true,
	}
	c.mu.Unlock()

	resp, err := c.searcher.Search(ctx, c.request(query, 1, filters))

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Printf("INFO: discard stale results for [%s]", query)
		return true, ErrSuperseded
	}
	c.state.Loading = false
	if err != nil {
		log.Printf("ERROR: search [%s] failed: %s", query, err.Error())
		c.state.Err = err
		return true, err
	}

	fetched := view.NewListItems(resp.Records)
	c.state.Items = fetched
	c.state.TotalCount = resp.ResultCount
	c.state.HasMore = hasMore(len(fetched), len(c.state.Items), resp.ResultCount)
	log.Printf("INFO: search [%s] found [%d] matches", query, resp.ResultCount)
	return true, nil
}

// LoadMore fetches the next page and appends it to the results. It reports
// false without fetching when a page or a new search is already in flight or
// when there is nothing more to load.
func (c *Controller) LoadMore(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state.LoadingMore || c.state.Loading || !c.state.HasMore {
		c.mu.Unlock()
		return false, nil
	}
	gen := c.generation
	query := c.state.Query
	filters := c.state.Filters
	next := c.state.Page + 1
	c.state.LoadingMore = true
	c.state.Err = nil
	c.mu.Unlock()

	resp, err := c.searcher.Search(ctx, c.request(query, next, filters))

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		log.Printf("INFO: discard stale page %d for [%s]", next, query)
		return true, ErrSuperseded
	}
	c.state.LoadingMore = false
	if err != nil {
		log.Printf("ERROR: page %d of [%s] failed: %s", next, query, err.Error())
		c.state.Err = err
		return true, err
	}

	fetched := view.NewListItems(resp.Records)
	c.state.Items = append(c.state.Items, fetched...)
	c.state.Page = next
	c.state.TotalCount = resp.ResultCount
	c.state.HasMore = hasMore(len(fetched), len(c.state.Items), resp.ResultCount)
	return true, nil
}

func (c *Controller) request(query string, page int, f Filters) finna.SearchRequest {
	return finna.SearchRequest{
		Query:       query,
		Page:        page,
		Limit:       c.pageSize,
		BooksOnly:   f.BooksOnly,
		FinnishOnly: f.FinnishOnly,
	}
}

// an empty page ends paging even if the total claims otherwise
func hasMore(fetched, have, total int) bool {
	return fetched > 0 && have < total
}

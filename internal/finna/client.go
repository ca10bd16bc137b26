package finna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/uvalib/virgo4-finna-ws/internal/metrics"
)

// DefaultBaseURL is the public Finna API origin
const DefaultBaseURL = "https://api.finna.fi"

// DefaultPageSize is the number of records requested per search page
const DefaultPageSize = 100

// ListFields are the record fields requested for search result lists
var ListFields = []string{"title", "author", "year", "id", "buildings", "formats"}

// Filter values for the optional search filters
const (
	BooksFilter   = `format:"0/Book/"`
	FinnishFilter = `language:"fin"`
)

// SearchRequest describes one page of a search
type SearchRequest struct {
	Query       string
	Page        int
	Limit       int
	Fields      []string
	BooksOnly   bool
	FinnishOnly bool
}

type searchParams struct {
	Lookfor string   `url:"lookfor"`
	Type    string   `url:"type"`
	Limit   int      `url:"limit"`
	Page    int      `url:"page,omitempty"`
	Fields  []string `url:"field[],omitempty"`
	Filters []string `url:"filter[],omitempty"`
}

type recordParams struct {
	ID string `url:"id"`
}

// Client sends requests to the Finna REST API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client for the API at baseURL. Outbound requests are
// limited to rps per second; zero or less disables the limit.
func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	log.Printf("Create HTTP client for Finna API calls to %s", baseURL)
	defaultTransport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 600 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Transport: defaultTransport,
			Timeout:   timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Search fetches one page of search results
func (c *Client) Search(ctx context.Context, req SearchRequest) (*Response, error) {
	lookfor := strings.TrimSpace(req.Query)
	if lookfor == "" {
		return nil, ErrEmptyQuery
	}

	params := searchParams{
		Lookfor: lookfor,
		Type:    "AllFields",
		Limit:   req.Limit,
		Page:    req.Page,
		Fields:  req.Fields,
	}
	if params.Limit <= 0 {
		params.Limit = DefaultPageSize
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Fields == nil {
		params.Fields = ListFields
	}
	if req.BooksOnly {
		params.Filters = append(params.Filters, BooksFilter)
	}
	if req.FinnishOnly {
		params.Filters = append(params.Filters, FinnishFilter)
	}

	return c.get(ctx, "search", params)
}

// Record fetches a single record with all of its default fields
func (c *Client) Record(ctx context.Context, id string) (*Response, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return c.get(ctx, "record", recordParams{ID: id})
}

// Ping issues a zero row search to check that the API answers
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "search", searchParams{Lookfor: "*", Type: "AllFields", Limit: 0})
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, params interface{}) (*Response, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("encode %s query: %w", endpoint, err)
	}
	apiURL := fmt.Sprintf("%s/api/v1/%s?%s", c.BaseURL, endpoint, values.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportError(http.StatusGatewayTimeout, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("Finna GET request: %s, timeout %.0f sec", apiURL, c.HTTPClient.Timeout.Seconds())
	startTime := time.Now()
	rawResp, rawErr := c.HTTPClient.Do(req)
	bodyBytes, status, reqErr := handleAPIResponse(apiURL, rawResp, rawErr)
	elapsed := time.Since(startTime)
	elapsedMS := int64(elapsed / time.Millisecond)
	metrics.ObserveUpstream(endpoint, status, elapsed)

	if reqErr != nil {
		if shouldLogAsError(reqErr.StatusCode) {
			log.Errorf("Failed response from Finna GET %s - %d:%s. Elapsed Time: %d (ms)",
				apiURL, reqErr.StatusCode, reqErr.Message, elapsedMS)
		} else {
			log.Infof("Response from Finna GET %s - %d:%s. Elapsed Time: %d (ms)",
				apiURL, reqErr.StatusCode, reqErr.Message, elapsedMS)
		}
		return nil, reqErr
	}
	log.Printf("Successful response from Finna GET %s. Elapsed Time: %d (ms)", apiURL, elapsedMS)

	var resp Response
	if err := json.Unmarshal(bodyBytes, &resp); err != nil {
		log.Errorf("Unable to parse Finna %s response: %s", endpoint, err.Error())
		return nil, serviceError(http.StatusBadGateway, fmt.Sprintf("API-virhe: virheellinen vastaus (%s)", err.Error()))
	}
	if resp.Error != "" {
		return nil, serviceError(http.StatusBadGateway, string(resp.Error))
	}
	return &resp, nil
}

func handleAPIResponse(logURL string, resp *http.Response, err error) ([]byte, int, *RequestError) {
	if err != nil {
		status := http.StatusBadGateway
		errMsg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Timeout") {
			status = http.StatusGatewayTimeout
			errMsg = fmt.Sprintf("%s timed out", logURL)
		} else if strings.Contains(err.Error(), "connection refused") {
			status = http.StatusServiceUnavailable
			errMsg = fmt.Sprintf("%s refused connection", logURL)
		}
		return nil, 0, transportError(status, errMsg)
	}

	defer resp.Body.Close()
	bodyBytes, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, serviceError(resp.StatusCode, upstreamMessage(bodyBytes))
	}
	if readErr != nil {
		return nil, resp.StatusCode, transportError(http.StatusBadGateway, readErr.Error())
	}
	return bodyBytes, resp.StatusCode, nil
}

// upstreamMessage pulls the error text out of a failed response body, if any
func upstreamMessage(body []byte) string {
	var envelope struct {
		Error         Text `json:"error"`
		StatusMessage Text `json:"statusMessage"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return string(envelope.Error)
	}
	return string(envelope.StatusMessage)
}

// do we log this http response as an error or is it expected under normal circumstances
func shouldLogAsError(httpStatus int) bool {
	return httpStatus != http.StatusOK && httpStatus != http.StatusNotFound
}

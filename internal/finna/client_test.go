package finna

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, 0), &hits
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestSearchEncodesQuery(t *testing.T) {
	var got url.Values
	var path string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		got = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"resultCount":250,"records":[{"id":"fikka.1"}],"status":"OK"}`)
	})

	resp, err := client.Search(context.Background(), SearchRequest{
		Query:       "  tuntematon sotilas ",
		Page:        2,
		BooksOnly:   true,
		FinnishOnly: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, resp.ResultCount)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, Text("fikka.1"), resp.Records[0].ID)

	assert.Equal(t, "/api/v1/search", path)
	assert.Equal(t, "tuntematon sotilas", got.Get("lookfor"))
	assert.Equal(t, "AllFields", got.Get("type"))
	assert.Equal(t, "100", got.Get("limit"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, ListFields, got["field[]"])
	assert.Equal(t, []string{BooksFilter, FinnishFilter}, got["filter[]"])
}

func TestSearchDefaults(t *testing.T) {
	var got url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"resultCount":0}`)
	})

	resp, err := client.Search(context.Background(), SearchRequest{Query: "muumi", Limit: 20, Fields: []string{"id"}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ResultCount)
	assert.Empty(t, resp.Records)
	assert.Equal(t, "1", got.Get("page"))
	assert.Equal(t, "20", got.Get("limit"))
	assert.Equal(t, []string{"id"}, got["field[]"])
	assert.Empty(t, got["filter[]"])
}

func TestPreconditionsSkipTheNetwork(t *testing.T) {
	client, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	})

	_, err := client.Search(context.Background(), SearchRequest{Query: " \t "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.True(t, IsPrecondition(err))

	_, err = client.Record(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.True(t, IsPrecondition(err))

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestRecordEscapesID(t *testing.T) {
	var id, rawQuery string
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		id = r.URL.Query().Get("id")
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"resultCount":1,"records":[{"id":"helka.99 &x"}]}`)
	})

	resp, err := client.Record(context.Background(), "helka.99 &x")
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "helka.99 &x", id)
	assert.Equal(t, "id=helka.99+%26x", rawQuery)
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		code    int
		message string
	}{
		{"status with message", http.StatusServiceUnavailable, `{"status":"ERROR","statusMessage":"Huoltokatko"}`, 503, "Huoltokatko"},
		{"status with error", http.StatusBadRequest, `{"error":"Invalid filter"}`, 400, "Invalid filter"},
		{"status without body", http.StatusInternalServerError, ``, 500, "API-virhe: 500 Internal Server Error"},
		{"error in ok body", http.StatusOK, `{"resultCount":0,"error":"Search failed"}`, 502, "Search failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, KindService, reqErr.Kind)
			assert.Equal(t, tt.code, reqErr.StatusCode)
			assert.Equal(t, tt.message, reqErr.Error())
		})
	}
}

func TestMalformedBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `<html>not json</html>`)
	})
	_, err := client.Record(context.Background(), "x")
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindService, reqErr.Kind)
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, time.Second, 0)
	_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindTransport, reqErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, reqErr.StatusCode)
	assert.Contains(t, reqErr.Message, "Verkkoyhteyden virhe")
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 50*time.Millisecond, 0)
	_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindTransport, reqErr.Kind)
	assert.Equal(t, http.StatusGatewayTimeout, reqErr.StatusCode)
}

func TestPing(t *testing.T) {
	var got url.Values
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		writeJSON(w, http.StatusOK, `{"resultCount":12345678,"status":"OK"}`)
	})
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "0", got.Get("limit"))
	assert.Equal(t, "", got.Get("page"))
}

func TestRateLimiterHonoursContext(t *testing.T) {
	client, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"resultCount":0}`)
	})
	client.limiter.SetLimit(0.001)

	_, err := client.Search(context.Background(), SearchRequest{Query: "x"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Search(ctx, SearchRequest{Query: "x"})
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, KindTransport, reqErr.Kind)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func newTestIndexer(t *testing.T, status int, reply string) (*EventIndexer, func() []recorded) {
	t.Helper()

	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	return NewEventIndexer(es, "events"), func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestEventIndexer_Index(t *testing.T) {
	t.Parallel()

	x, requests := newTestIndexer(t, http.StatusCreated, `{"result":"created"}`)
	e := &entity.Event{
		ID:        "e1",
		CreatorID: "u1",
		Title:     "Jazz night",
		Tags:      []string{"music"},
		StartDate: time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC),
		Capacity:  40,
	}

	require.NoError(t, x.Index(context.Background(), e))

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/events/_doc/e1", got[0].path)

	var doc eventDoc
	require.NoError(t, json.Unmarshal([]byte(got[0].body), &doc))
	assert.Equal(t, "Jazz night", doc.Title)
	assert.Equal(t, []string{"music"}, doc.Tags)
	assert.Equal(t, "2026-05-01T19:00:00Z", doc.StartDate)
}

func TestEventIndexer_IndexErrorStatus(t *testing.T) {
	t.Parallel()

	x, _ := newTestIndexer(t, http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`)
	err := x.Index(context.Background(), &entity.Event{ID: "e1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestEventIndexer_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "deleted", status: http.StatusOK},
		{name: "already gone", status: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			x, requests := newTestIndexer(t, tt.status, `{}`)
			err := x.Delete(context.Background(), "e1")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			got := requests()
			require.NotEmpty(t, got)
			assert.Equal(t, http.MethodDelete, got[0].method)
			assert.Equal(t, "/events/_doc/e1", got[0].path)
		})
	}
}

func TestEventIndexer_Search(t *testing.T) {
	t.Parallel()

	x, requests := newTestIndexer(t, http.StatusOK, `{"hits":{"hits":[{"_id":"e2"},{"_id":"e1"}]}}`)

	ids, err := x.Search(context.Background(), "jazz", 500)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, ids)

	got := requests()
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0].path, "/events/_search"))
	assert.Contains(t, got[0].body, `"size":10`)
	assert.Contains(t, got[0].body, `"query":"jazz"`)
}

func TestEventIndexer_Disabled(t *testing.T) {
	t.Parallel()

	x := NewEventIndexer(nil, "events")
	ctx := context.Background()

	assert.NoError(t, x.Index(ctx, &entity.Event{ID: "e1"}))
	assert.NoError(t, x.Delete(ctx, "e1"))
	ids, err := x.Search(ctx, "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEventIndexer_EnsureIndexExisting(t *testing.T) {
	t.Parallel()

	x, requests := newTestIndexer(t, http.StatusOK, `{}`)
	require.NoError(t, x.EnsureIndex(context.Background()))

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodHead, got[0].method)
	assert.Equal(t, "/events", got[0].path)
}

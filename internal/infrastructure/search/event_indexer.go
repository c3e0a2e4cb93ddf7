package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-community-events/internal/domain/entity"
)

const (
	defaultSize = 10
	maxSize     = 50
)

// EventIndexer keeps a denormalised copy of events in Elasticsearch for full-text lookup.
// The relational store stays authoritative; the index only yields ranked ids.
type EventIndexer struct {
	ES        *elasticsearch.Client
	IndexName string
	Timeout   time.Duration
}

func NewEventIndexer(es *elasticsearch.Client, index string) *EventIndexer {
	return &EventIndexer{ES: es, IndexName: index, Timeout: 3 * time.Second}
}

type eventDoc struct {
	ID          string   `json:"id"`
	CreatorID   string   `json:"creator_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Capacity    int      `json:"capacity"`
	UpdatedAt   string   `json:"updated_at"`
}

func toDoc(e *entity.Event) eventDoc {
	return eventDoc{
		ID:          e.ID,
		CreatorID:   e.CreatorID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		Tags:        e.Tags,
		StartDate:   e.StartDate.Format(time.RFC3339Nano),
		EndDate:     e.EndDate.Format(time.RFC3339Nano),
		Capacity:    e.Capacity,
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (x *EventIndexer) Index(ctx context.Context, e *entity.Event) error {
	if x.ES == nil || x.IndexName == "" {
		return nil
	}
	b, err := json.Marshal(toDoc(e))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("index event %s: %w", e.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index event %s: %s", e.ID, res.Status())
	}
	return nil
}

// Delete removes the document. A missing document is not an error.
func (x *EventIndexer) Delete(ctx context.Context, id string) error {
	if x.ES == nil || x.IndexName == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete event %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over title, description, location and tags and returns event ids
// in relevance order.
func (x *EventIndexer) Search(ctx context.Context, q string, size int) ([]string, error) {
	if x.ES == nil || x.IndexName == "" {
		return []string{}, nil
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "tags^2", "description", "location"},
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search events: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.ID)
	}
	return out, nil
}

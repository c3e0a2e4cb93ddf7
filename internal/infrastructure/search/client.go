package search

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewClient creates an Elasticsearch client with bounded dial and header timeouts and optional
// basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

const eventsMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "creator_id":  {"type": "keyword"},
      "title":       {"type": "text"},
      "description": {"type": "text"},
      "location":    {"type": "text"},
      "tags":        {"type": "keyword"},
      "start_date":  {"type": "date"},
      "end_date":    {"type": "date"},
      "capacity":    {"type": "integer"},
      "updated_at":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the events index with its mapping when it does not exist yet.
func (x *EventIndexer) EnsureIndex(ctx context.Context) error {
	if x.ES == nil || x.IndexName == "" {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	exists, err := esapi.IndicesExistsRequest{Index: []string{x.IndexName}}.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("check index %s: %w", x.IndexName, err)
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: x.IndexName, Body: strings.NewReader(eventsMapping)}.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("create index %s: %w", x.IndexName, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", x.IndexName, res.Status())
	}
	return nil
}

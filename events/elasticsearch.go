package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticIndexer mirrors clients and sessions into two search indexes.
type ElasticIndexer struct {
	client       *elasticsearch.Client
	clientIndex  string
	sessionIndex string
}

func NewElasticIndexer(client *elasticsearch.Client, clientIndex, sessionIndex string) *ElasticIndexer {
	return &ElasticIndexer{client: client, clientIndex: clientIndex, sessionIndex: sessionIndex}
}

// NewElasticClient builds a client for url and pings it.
func NewElasticClient(url string) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{url}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	res, err := es.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return es, nil
}

func (x *ElasticIndexer) Publish(ctx context.Context, e Event) error {
	if e.Client != nil {
		if err := x.index(ctx, x.clientIndex, e.Client.ID, e.Client); err != nil {
			return err
		}
	}
	if e.Session != nil {
		if err := x.index(ctx, x.sessionIndex, e.Session.ID, e.Session); err != nil {
			return err
		}
	}
	return nil
}

func (x *ElasticIndexer) index(ctx context.Context, index, id string, document interface{}) error {
	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

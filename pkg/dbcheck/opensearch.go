package dbcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/opensearch-project/opensearch-go/v2"
)

// OpenSearchConfig holds OpenSearch client settings.
type OpenSearchConfig struct {
	Addresses    []string `env:"OPENSEARCH_ADDRESSES,required"`
	Username     string   `env:"OPENSEARCH_USERNAME"`
	Password     string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries   int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry bool     `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
}

// ConnectOpenSearch creates a client and verifies the cluster answers.
func ConnectOpenSearch(ctx context.Context, cfg OpenSearchConfig) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:    cfg.Addresses,
		Username:     cfg.Username,
		Password:     cfg.Password,
		MaxRetries:   cfg.MaxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Join(ErrOpenSearchConnection, err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, errors.Join(ErrHealthcheckFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrHealthcheckFailed, res.Status())
	}

	return client, nil
}

// OpenSearchCounter counts documents of the index named by the model.
type OpenSearchCounter struct {
	client *opensearch.Client
}

// NewOpenSearchCounter creates a counter over client.
func NewOpenSearchCounter(client *opensearch.Client) *OpenSearchCounter {
	return &OpenSearchCounter{client: client}
}

// Count implements Counter with term filters on every query key.
func (o *OpenSearchCounter) Count(ctx context.Context, model string, query Query) (int64, error) {
	body, err := OpenSearchCountBody(query)
	if err != nil {
		return 0, err
	}

	res, err := o.client.Count(
		o.client.Count.WithContext(ctx),
		o.client.Count.WithIndex(model),
		o.client.Count.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return 0, fmt.Errorf("opensearch count: %s: %s", res.Status(), bytes.TrimSpace(msg))
	}

	var out struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("opensearch count: decode response: %w", err)
	}
	return out.Count, nil
}

// OpenSearchCountBody renders the request body of a count query.
func OpenSearchCountBody(query Query) ([]byte, error) {
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	filters := make([]map[string]any, 0, len(keys))
	for _, k := range keys {
		filters = append(filters, map[string]any{"term": map[string]any{k: query[k]}})
	}
	return json.Marshal(map[string]any{
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
	})
}

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/BersamaBelajar/gudang-pintar/config"
	"github.com/BersamaBelajar/gudang-pintar/internal/models"
)

// ElasticClient provides integration with Elasticsearch
type ElasticClient struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticClient creates a new Elasticsearch client
func NewElasticClient(cfg config.ElasticsearchConfig) (*ElasticClient, error) {
	esConfig := elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	}

	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Elasticsearch client")
	}

	return &ElasticClient{
		client: client,
		index:  cfg.Index,
	}, nil
}

// IndexDeliveryNote indexes a delivery note so the list screens can search it
func (c *ElasticClient) IndexDeliveryNote(ctx context.Context, note *models.DeliveryNote) error {
	doc := map[string]interface{}{
		"id":              note.ID.String(),
		"delivery_number": note.DeliveryNumber,
		"customer_name":   note.CustomerName,
		"division":        note.Division,
		"status":          note.Status,
		"approval_status": note.ApprovalStatus,
		"delivery_date":   note.DeliveryDate,
		"created_at":      note.CreatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal delivery note document")
	}

	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: note.ID.String(),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to index delivery note")
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.Errorf("indexing delivery note %s: %s", note.ID, res.Status())
	}

	log.Debug().Str("delivery_number", note.DeliveryNumber).Msg("delivery note indexed")
	return nil
}

// SearchDeliveryNotes runs a match query over the indexed note fields
func (c *ElasticClient) SearchDeliveryNotes(ctx context.Context, query string, limit int) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = 25
	}

	searchBody := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"delivery_number", "customer_name", "division"},
			},
		},
	}

	body, err := json.Marshal(searchBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal search query")
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(c.index),
		c.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search delivery notes")
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.Errorf("search failed: %s", res.Status())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read search response")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to parse search response")
	}

	results := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}

// DeleteDeliveryNote removes a note from the index
func (c *ElasticClient) DeleteDeliveryNote(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{
		Index:      c.index,
		DocumentID: id,
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return errors.Wrap(err, "failed to delete delivery note from index")
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return errors.Errorf("deleting delivery note %s from index: %s", id, res.Status())
	}
	return nil
}

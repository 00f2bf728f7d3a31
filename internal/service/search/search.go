package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/sumafit/medstore/internal/models"
)

const Index = "products"

// Search runs a fuzzy multi-match over the product index. Name hits weigh
// double over description hits.
func Search(ctx context.Context, es *elasticsearch.Client, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(Index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

// IndexProduct upserts one product document. Best effort, callers only log
// the error.
func IndexProduct(ctx context.Context, es *elasticsearch.Client, p *models.Product) error {
	if es == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      Index,
		DocumentID: fmt.Sprint(p.ID),
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func DeleteProduct(ctx context.Context, es *elasticsearch.Client, id uint) error {
	if es == nil {
		return nil
	}

	req := esapi.DeleteRequest{
		Index:      Index,
		DocumentID: fmt.Sprint(id),
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product %d: %s", id, res.Status())
	}
	return nil
}

// LikePattern builds the SQL fallback pattern used when no ES client is
// configured.
func LikePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}

// internal/catalog/search.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/pkg/matching"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	defaultSearchSize = 20
	maxSearchSize     = 100
)

// animalMapping keeps filterable fields as keywords and the prose as text.
const animalMapping = `{
	"mappings": {
		"properties": {
			"id":                    {"type": "keyword"},
			"name":                  {"type": "text"},
			"species":               {"type": "keyword"},
			"breed":                 {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"bio":                   {"type": "text"},
			"personalityTag":        {"type": "text"},
			"mbtiType":              {"type": "keyword"},
			"energyLevel":           {"type": "integer"},
			"experienceLevelNeeded": {"type": "keyword"},
			"specialNeeds":          {"type": "boolean"},
			"daysInShelter":         {"type": "integer"},
			"hdbApproved":           {"type": "boolean"},
			"age":                   {"type": "integer"},
			"shelterId":             {"type": "keyword"},
			"adopted":               {"type": "boolean"}
		}
	}
}`

type SearchQuery struct {
	Text    string `json:"text,omitempty"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
	HDBOnly bool   `json:"hdbOnly,omitempty"`
	From    int    `json:"from,omitempty"`
	Size    int    `json:"size,omitempty"`
}

type SearchHit struct {
	ID     string          `json:"id"`
	Score  float64         `json:"score"`
	Animal matching.Animal `json:"animal"`
}

type SearchResult struct {
	Total int         `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// Search runs free-text queries against the animal index.
type Search struct {
	client *elasticsearch.Client
	index  string
}

func NewSearch(client *elasticsearch.Client, index string) *Search {
	return &Search{client: client, index: index}
}

func (s *Search) Index() string { return s.index }

// BuildQuery turns q into an Elasticsearch request body.
func BuildQuery(q SearchQuery) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"adopted": false}},
	}

	if text := strings.TrimSpace(q.Text); text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name^3", "breed^2", "personalityTag^2", "bio"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if q.Species != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"species": q.Species},
		})
	}
	if q.Breed != "" {
		filter = append(filter, map[string]interface{}{
			"match": map[string]interface{}{"breed": q.Breed},
		})
	}
	if q.HDBOnly {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"hdbApproved": true},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
}

func normalizeSize(size int) int {
	if size <= 0 {
		return defaultSearchSize
	}
	if size > maxSearchSize {
		return maxSearchSize
	}
	return size
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string          `json:"_id"`
			Score  float64         `json:"_score"`
			Source matching.Animal `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *Search) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	body, err := json.Marshal(BuildQuery(q))
	if err != nil {
		return nil, errors.NewCatalogSearchFailedError(s.index, err)
	}

	from := q.From
	if from < 0 {
		from = 0
	}
	size := normalizeSize(q.Size)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		From:  &from,
		Size:  &size,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewCatalogSearchFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewCatalogSearchFailedError(s.index, fmt.Errorf("search error: %s", res.Status()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewCatalogSearchFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}

	out := &SearchResult{Total: r.Hits.Total.Value, Hits: make([]SearchHit, 0, len(r.Hits.Hits))}
	for _, h := range r.Hits.Hits {
		a := h.Source
		if a.ID == "" {
			a.ID = h.ID
		}
		out.Hits = append(out.Hits, SearchHit{ID: h.ID, Score: h.Score, Animal: a})
	}
	return out, nil
}

type indexedAnimal struct {
	matching.Animal
	Adopted bool `json:"adopted"`
}

// IndexAnimal writes a under its id, replacing any previous version.
func (s *Search) IndexAnimal(ctx context.Context, a matching.Animal, adopted bool) error {
	body, err := json.Marshal(indexedAnimal{Animal: a, Adopted: adopted})
	if err != nil {
		return errors.NewCatalogSearchFailedError(s.index, err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: a.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return errors.NewCatalogSearchFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewCatalogSearchFailedError(s.index, fmt.Errorf("index error: %s", res.Status()))
	}
	return nil
}

// Reindex writes every animal in animals and returns how many were indexed
// before the first failure.
func (s *Search) Reindex(ctx context.Context, animals []matching.Animal) (int, error) {
	for i, a := range animals {
		if err := s.IndexAnimal(ctx, a, false); err != nil {
			return i, err
		}
	}
	return len(animals), nil
}

// EnsureIndex creates the animal index with its mapping when missing.
func (s *Search) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return errors.NewCatalogSearchFailedError(s.index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(animalMapping),
	}.Do(ctx, s.client)
	if err != nil {
		return errors.NewCatalogSearchFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewCatalogSearchFailedError(s.index, fmt.Errorf("create index: %s", res.Status()))
	}
	return nil
}

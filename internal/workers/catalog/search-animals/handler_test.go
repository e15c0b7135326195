// internal/workers/catalog/search-animals/handler_test.go
package searchanimals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/pkg/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, q catalog.SearchQuery) (*catalog.SearchResult, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.(*catalog.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func mochi() matching.Animal {
	return matching.Animal{
		ID: "a-1", Name: "Mochi", Species: "dog", Breed: "Shiba Inu", MBTIType: "ENFP",
		EnergyLevel: 5, ExperienceLevelNeeded: matching.NeedsBeginner, HDBApproved: true,
	}
}

func createJob(vars string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 2001, Type: TaskType, Retries: 3, Variables: vars}}
}

func newESServer(t *testing.T, status int, response string) (*elasticsearch.Client, *map[string]interface{}) {
	body := map[string]interface{}{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client, &body
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PassesQueryThrough(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, catalog.SearchQuery{Text: "shiba", Species: "dog", From: 20, Size: 10}).
		Return(&catalog.SearchResult{
			Total: 21,
			Hits:  []catalog.SearchHit{{ID: "a-1", Score: 3.5, Animal: mochi()}},
		}, nil)

	handler := NewHandler(createTestConfig(), searcher, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Query: "shiba", Species: "dog", From: 20, Size: 10})

	require.NoError(t, err)
	assert.Equal(t, 21, output.TotalHits)
	assert.Equal(t, []string{"a-1"}, output.AnimalIDs)
	require.Len(t, output.Results, 1)
	assert.Equal(t, 3.5, output.Results[0].Relevance)
	assert.Nil(t, output.Results[0].MatchScore)
	searcher.AssertExpectations(t)
}

func TestHandler_Execute_ProfileScoresHitsAndForcesHDB(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, catalog.SearchQuery{Text: "playful", HDBOnly: true}).
		Return(&catalog.SearchResult{
			Total: 1,
			Hits:  []catalog.SearchHit{{ID: "a-1", Score: 1.2, Animal: mochi()}},
		}, nil)

	profile := &matching.UserProfile{
		MBTI:          "ENFP",
		ActivityLevel: matching.ActivityVeryActive,
		LivingSpace:   matching.LivingHDB,
		Experience:    matching.ExperienceFirstTimer,
	}

	handler := NewHandler(createTestConfig(), searcher, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Query: "playful", UserProfile: profile})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	require.NotNil(t, output.Results[0].MatchScore)
	assert.Equal(t, 90, *output.Results[0].MatchScore)
	searcher.AssertExpectations(t)
}

func TestHandler_Execute_SearchFailure(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything).
		Return(nil, errors.NewCatalogSearchFailedError("animals", fmt.Errorf("boom")))

	handler := NewHandler(createTestConfig(), searcher, nil, logger.NewTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Query: "cat"})

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeCatalogSearchFailed, errors.CodeOf(err))
}

// ==========================
// Elasticsearch Tests
// ==========================

func TestHandler_Run_AgainstElasticsearch(t *testing.T) {
	client, sent := newESServer(t, http.StatusOK, `{
		"hits": {
			"total": {"value": 1, "relation": "eq"},
			"hits": [
				{"_id": "a-1", "_score": 2.0, "_source": {"id": "a-1", "name": "Mochi", "species": "dog", "mbtiType": "ENFP", "energyLevel": 5}}
			]
		}
	}`)

	handler := NewHandler(createTestConfig(), catalog.NewSearch(client, "animals"), nil, logger.NewTestLogger(t))
	output, err := handler.run(context.Background(), createJob(`{"query":"mochi","species":"dog"}`))

	require.NoError(t, err)
	assert.Equal(t, []string{"a-1"}, output.AnimalIDs)
	assert.Equal(t, "Mochi", output.Results[0].Animal.Name)
	assert.Contains(t, *sent, "query")
}

func TestHandler_Run_ElasticsearchError(t *testing.T) {
	client, _ := newESServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

	handler := NewHandler(createTestConfig(), catalog.NewSearch(client, "animals"), nil, logger.NewTestLogger(t))
	output, err := handler.run(context.Background(), createJob(`{"query":"mochi"}`))

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeCatalogSearchFailed, errors.CodeOf(err))
}

func TestHandler_Run_MalformedVariables(t *testing.T) {
	handler := NewHandler(createTestConfig(), new(MockSearcher), nil, logger.NewTestLogger(t))
	_, err := handler.run(context.Background(), createJob(`{"query":`))
	assert.Equal(t, errors.ErrCodeParseError, errors.CodeOf(err))
}

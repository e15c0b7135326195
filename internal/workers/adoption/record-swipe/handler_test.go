// internal/workers/adoption/record-swipe/handler_test.go
package recordswipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/pkg/matching"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func createTestHandler(t *testing.T, db *sql.DB, client *redis.Client) *Handler {
	var cache *catalog.Cache
	if client != nil {
		cache = catalog.NewCache(client, time.Hour, time.Minute)
	}
	store := catalog.NewStore(catalog.NewRepository(db), cache, logger.NewTestLogger(t))
	h := NewHandler(createTestConfig(), store, nil, logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h
}

func seed(t *testing.T, mr *miniredis.Miniredis, key string, v interface{}) {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, mr.Set(key, string(data)))
}

func enfpFirstTimer() matching.UserProfile {
	return matching.UserProfile{
		MBTI:          "ENFP",
		ActivityLevel: matching.ActivityVeryActive,
		LivingSpace:   matching.LivingCondo,
		Experience:    matching.ExperienceFirstTimer,
	}
}

func mochi() matching.Animal {
	return matching.Animal{
		ID: "a-1", Name: "Mochi", Species: "dog", MBTIType: "ENFP", EnergyLevel: 5,
		ExperienceLevelNeeded: matching.NeedsBeginner, ShelterID: "s-1",
	}
}

const insertSwipe = `INSERT INTO swipes`

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_LikeScoresAndRecords(t *testing.T) {
	db, mock := setupMockDB(t)
	mr, client := setupRedis(t)
	seed(t, mr, catalog.ProfileKey("user-1"), enfpFirstTimer())
	seed(t, mr, catalog.AnimalKey("a-1"), mochi())

	mock.ExpectExec(insertSwipe).
		WithArgs(sqlmock.AnyArg(), "user-1", "a-1", "like", int64(90), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, db, client)
	output, err := handler.Execute(context.Background(), &Input{UserID: "user-1", AnimalID: "a-1", Direction: "like"})

	require.NoError(t, err)
	assert.True(t, output.Liked)
	require.NotNil(t, output.MatchScore)
	assert.Equal(t, 90, *output.MatchScore)
	assert.Equal(t, matching.TierStrong, output.MatchTier)
	assert.Equal(t, "s-1", output.ShelterID)
	assert.True(t, output.NotifyShelter)
	assert.Equal(t, fixedNow, output.SwipedAt)
	_, err = uuid.Parse(output.SwipeID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_PassSkipsScoring(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(insertSwipe).
		WithArgs(sqlmock.AnyArg(), "user-1", "a-9", "pass", nil, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, db, nil)
	output, err := handler.Execute(context.Background(), &Input{UserID: "user-1", AnimalID: "a-9", Direction: "pass"})

	require.NoError(t, err)
	assert.False(t, output.Liked)
	assert.Nil(t, output.MatchScore)
	assert.Empty(t, output.MatchTier)
	assert.False(t, output.NotifyShelter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_LikeWithInlineRecords(t *testing.T) {
	db, mock := setupMockDB(t)

	animal := mochi()
	animal.ShelterID = ""
	profile := enfpFirstTimer()

	mock.ExpectExec(insertSwipe).
		WithArgs(sqlmock.AnyArg(), "user-2", "a-1", "like", int64(90), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	handler := createTestHandler(t, db, nil)
	output, err := handler.Execute(context.Background(), &Input{
		UserID: "user-2", AnimalID: "a-1", Direction: "like",
		UserProfile: &profile, Animal: &animal,
	})

	require.NoError(t, err)
	assert.Equal(t, 90, *output.MatchScore)
	assert.False(t, output.NotifyShelter)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"unknown direction", Input{UserID: "user-1", AnimalID: "a-1", Direction: "superlike"}},
		{"missing user", Input{AnimalID: "a-1", Direction: "like"}},
		{"missing animal", Input{UserID: "user-1", Direction: "pass"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			handler := createTestHandler(t, db, nil)

			output, err := handler.Execute(context.Background(), &tt.input)
			assert.Nil(t, output)
			assert.Equal(t, errors.ErrCodeInputSchemaInvalid, errors.CodeOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_DuplicateSwipe(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(insertSwipe).WillReturnResult(sqlmock.NewResult(0, 0))

	handler := createTestHandler(t, db, nil)
	output, err := handler.Execute(context.Background(), &Input{UserID: "user-1", AnimalID: "a-9", Direction: "pass"})

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeDuplicateSwipe, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_UnknownAnimalOnLike(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`FROM animals WHERE id = \$1`).WithArgs("a-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile := enfpFirstTimer()
	handler := createTestHandler(t, db, nil)
	output, err := handler.Execute(context.Background(), &Input{
		UserID: "user-1", AnimalID: "a-404", Direction: "like", UserProfile: &profile,
	})

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeAnimalNotFound, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Run_StoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(insertSwipe).WillReturnError(sql.ErrConnDone)

	handler := createTestHandler(t, db, nil)
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key: 3001, Type: TaskType, Retries: 3,
		Variables: `{"userId":"user-1","animalId":"a-9","direction":"pass"}`,
	}}
	output, err := handler.run(context.Background(), job)

	assert.Nil(t, output)
	assert.Equal(t, errors.ErrCodeSwipeRecordFailed, errors.CodeOf(err))
	stdErr, ok := errors.As(err)
	require.True(t, ok)
	assert.True(t, stdErr.Retryable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

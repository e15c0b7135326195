// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleActivity(id string) Activity {
	return Activity{
		ID:                   id,
		DisplayName:          "Rank Animals",
		Description:          "Ranks the catalog for an adopter",
		Category:             "matching",
		Version:              "1.0.0",
		TaskType:             id,
		ImplementationStatus: "completed",
		InputSchema:          map[string]interface{}{"type": "object"},
		Timeout:              "10s",
		Retries:              3,
	}
}

func TestRegistry_AddFindSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "activity-registry.json")

	reg, err := LoadOrNew(path)
	require.NoError(t, err)
	require.NoError(t, reg.Add(sampleActivity("rank-animals"), fixedNow))
	assert.Error(t, reg.Add(sampleActivity("rank-animals"), fixedNow))

	require.NoError(t, Save(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	a, ok := loaded.FindByTaskType("rank-animals")
	require.True(t, ok)
	assert.Equal(t, "Rank Animals", a.DisplayName)
	assert.Equal(t, fixedNow.Format(time.RFC3339), loaded.LastUpdated)

	_, ok = loaded.FindByTaskType("unknown")
	assert.False(t, ok)
}

func TestRegistry_Update(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{sampleActivity("record-swipe")}}

	require.NoError(t, reg.Update("record-swipe", "retries", "5", fixedNow))
	require.NoError(t, reg.Update("record-swipe", "status", "verified", fixedNow))
	a, _ := reg.FindByID("record-swipe")
	assert.Equal(t, 5, a.Retries)
	assert.Equal(t, "verified", a.ImplementationStatus)

	assert.Error(t, reg.Update("record-swipe", "retries", "many", fixedNow))
	assert.Error(t, reg.Update("record-swipe", "timeout", "soon", fixedNow))
	assert.Error(t, reg.Update("record-swipe", "colour", "red", fixedNow))
	assert.Error(t, reg.Update("missing", "status", "planned", fixedNow))
}

func TestRegistry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reg     ActivityRegistry
		wantErr string
	}{
		{"empty", ActivityRegistry{}, "no activities"},
		{"duplicate id", ActivityRegistry{Activities: []Activity{sampleActivity("a"), sampleActivity("a")}}, "duplicate activity ID"},
		{"bad status", ActivityRegistry{Activities: []Activity{func() Activity {
			a := sampleActivity("a")
			a.ImplementationStatus = "done-ish"
			return a
		}()}}, "unknown status"},
		{"bad timeout", ActivityRegistry{Activities: []Activity{func() Activity {
			a := sampleActivity("a")
			a.Timeout = "ten seconds"
			return a
		}()}}, "invalid timeout"},
		{"valid", ActivityRegistry{Activities: []Activity{sampleActivity("a"), sampleActivity("b")}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRepositoryRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{
		"derive-user-profile", "calculate-match-score", "rank-animals",
		"generate-match-reasons", "search-animals", "record-swipe", "notify-shelter",
	} {
		_, ok := reg.FindByTaskType(taskType)
		assert.True(t, ok, taskType)
	}
}

// internal/common/observability/observability_test.go
package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew_RecordsJobMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs, err := New("test-service", WithRegisterer(reg))
	require.NoError(t, err)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "rank-animals", "completed")
	obs.RecordJobDuration(ctx, "rank-animals", 15*time.Millisecond, "completed")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "jobs_processed_total")
	assert.Contains(t, names, "jobs_duration_milliseconds")
	for _, name := range names {
		assert.NotContains(t, name, ".", "exported names must be legacy-safe")
	}
}

func TestStartSpan_RecordsError(t *testing.T) {
	obs, err := New("test-service", WithRegisterer(promclient.NewRegistry()), WithAlwaysSample())
	require.NoError(t, err)
	defer obs.Shutdown()

	recorder := tracetest.NewSpanRecorder()
	obs.RegisterSpanProcessor(recorder)

	_, span := StartSpan(context.Background(), "calculate-match-score", attribute.String("animalId", "a1"))
	EndSpan(span, errors.New("catalog down"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "calculate-match-score", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestEndSpan_OK(t *testing.T) {
	obs, err := New("test-service", WithRegisterer(promclient.NewRegistry()), WithAlwaysSample())
	require.NoError(t, err)
	defer obs.Shutdown()

	recorder := tracetest.NewSpanRecorder()
	obs.RegisterSpanProcessor(recorder)

	_, span := StartSpan(context.Background(), "rank-animals")
	EndSpan(span, nil)

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, codes.Unset, recorder.Ended()[0].Status().Code)
}

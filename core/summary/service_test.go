package summary_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitfewfer/attendance/core/summary"
	dummydb "github.com/rohitfewfer/attendance/storage/database/dummy"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := summary.NewService(dummydb.NewSummaryRepository(dummydb.Open()))

	avg, err := svc.AveragePercentage(ctx)
	require.NoError(t, err)
	assert.False(t, avg.Valid)

	first := summary.DailySummary{Date: "2024-01-01", Attended: 4, Total: 4, Percentage: 100}
	require.NoError(t, svc.Save(ctx, first))
	require.NoError(t, svc.Save(ctx, summary.DailySummary{Date: "2024-01-02", Attended: 1, Total: 2, Percentage: 50}))

	err = svc.Save(ctx, summary.DailySummary{Date: "2024-01-01", Attended: 0, Total: 4})
	assert.Equal(t, summary.ErrExists, errors.Cause(err))

	summaries, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2024-01-02", summaries[0].Date)
	assert.Equal(t, first, summaries[1], "existing summary is never overwritten")

	avg, err = svc.AveragePercentage(ctx)
	require.NoError(t, err)
	assert.True(t, avg.Valid)
	assert.Equal(t, 75.0, avg.Float64)

	n, err := svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	summaries, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

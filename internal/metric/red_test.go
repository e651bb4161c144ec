package metric

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var errDenied = errors.New("denied")

func TestREDClientRecord(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	rec := New(reg, "widget", errDenied)

	require.NoError(t, rec.Record("get")(nil))
	require.NoError(t, rec.Record("get")(nil))

	boom := errors.New("boom")
	require.ErrorIs(t, rec.Record("get")(boom), boom)
	require.Error(t, rec.Record("delete")(fmt.Errorf("wrapped: %w", errDenied)))

	require.Equal(t, 2.0, testutil.ToFloat64(rec.Counter("get", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.Counter("get", ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.Counter("delete", ResultDenied)))

	count, err := testutil.GatherAndCount(reg, "articled_widget_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestNewPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "widget")
	require.Panics(t, func() { New(reg, "widget") })
}

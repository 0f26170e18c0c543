package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	UserLookups.WithLabelValues("none").Inc()
	DAOWrites.WithLabelValues("user", "created").Inc()

	// the finds vector has no series yet
	n, err := testutil.GatherAndCount(reg, "edutask_user_lookups_total", "edutask_dao_writes_total", "edutask_dao_finds_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Panics(t, func() { RegisterCollectors(reg) })
}

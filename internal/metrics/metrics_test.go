package metrics

import (
	"testing"

	"github.com/khetguard/khetguard/internal/authview"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewAuth(reg, func() float64 { return 3 })
	require.NoError(t, err)

	a.Record(authview.OpLogin, authview.OutcomeSuccess)
	a.Record(authview.OpLogin, authview.OutcomeSuccess)
	a.Record(authview.OpSignup, authview.OutcomeInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(a.Submissions.WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Submissions.WithLabelValues("signup", "invalid")))
	assert.Equal(t, 3.0, testutil.ToFloat64(a.ActiveViews))
}

func TestNewAuth_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewAuth(reg, func() float64 { return 0 })
	require.NoError(t, err)

	_, err = NewAuth(reg, func() float64 { return 0 })
	assert.Error(t, err)
}

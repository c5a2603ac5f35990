package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRateLookups(t *testing.T) {
	before := testutil.ToFloat64(RateLookups.WithLabelValues("fallback"))
	RateLookups.WithLabelValues("fallback").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RateLookups.WithLabelValues("fallback")))
}

func TestRenewalNotices(t *testing.T) {
	before := testutil.ToFloat64(RenewalNotices.WithLabelValues("ok"))
	RenewalNotices.WithLabelValues("ok").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(RenewalNotices.WithLabelValues("ok")))
}

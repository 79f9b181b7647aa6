package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordShareResolution(t *testing.T) {
	hits := testutil.ToFloat64(ShareResolutionsTotal.WithLabelValues("hit"))
	fallbacks := testutil.ToFloat64(ShareResolutionsTotal.WithLabelValues("fallback"))

	RecordShareResolution(true)
	RecordShareResolution(false)
	RecordShareResolution(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(ShareResolutionsTotal.WithLabelValues("hit")))
	assert.Equal(t, fallbacks+2, testutil.ToFloat64(ShareResolutionsTotal.WithLabelValues("fallback")))
}

func TestRecordLineExchange(t *testing.T) {
	outcomes := []string{ExchangeSuccess, ExchangeBadRequest, ExchangeNotConfigured, ExchangeUpstreamError}
	for _, outcome := range outcomes {
		before := testutil.ToFloat64(LineExchangesTotal.WithLabelValues(outcome))
		RecordLineExchange(outcome)
		assert.Equal(t, before+1, testutil.ToFloat64(LineExchangesTotal.WithLabelValues(outcome)), outcome)
	}
}

func TestRecordRequest(t *testing.T) {
	RecordRequest("/healthz", "GET", "200", 0.01)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(RequestDuration), 1)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Shared global collectors: assertions are relative to the value before the call.

func TestRecordValidation(t *testing.T) {
	accepted := QueryValidationsTotal.WithLabelValues("accepted", "")
	rejected := QueryValidationsTotal.WithLabelValues("rejected", "not_select")
	beforeAccepted := testutil.ToFloat64(accepted)
	beforeRejected := testutil.ToFloat64(rejected)

	RecordValidation(true, "")
	RecordValidation(false, "not_select")
	RecordValidation(false, "not_select")

	assert.Equal(t, beforeAccepted+1, testutil.ToFloat64(accepted))
	assert.Equal(t, beforeRejected+2, testutil.ToFloat64(rejected))
}

func TestRecordInsight(t *testing.T) {
	counter := AIInsightsTotal.WithLabelValues("disabled")
	before := testutil.ToFloat64(counter)

	RecordInsight("disabled")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCollectorsLint(t *testing.T) {
	problems, err := testutil.CollectAndLint(RateLimitedTotal)
	assert.NoError(t, err)
	assert.Empty(t, problems)
}

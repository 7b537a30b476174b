package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUploadsTotalByOutcome(t *testing.T) {
	before := testutil.ToFloat64(UploadsTotal.WithLabelValues(OutcomeRejected))
	UploadsTotal.WithLabelValues(OutcomeRejected).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(UploadsTotal.WithLabelValues(OutcomeRejected)))
}

func TestSkillScoreObserved(t *testing.T) {
	SkillScore.WithLabelValues("Python").Observe(60)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(SkillScore), 1)
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest_Status(t *testing.T) {
	before := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("vision", "analyze", "success"))
	ObserveRequest("vision", "analyze", time.Now(), nil)
	after := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("vision", "analyze", "success"))
	if after-before != 1 {
		t.Errorf("expected success counter +1, got %f", after-before)
	}

	beforeErr := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("vision", "analyze", "error"))
	ObserveRequest("vision", "analyze", time.Now(), errors.New("boom"))
	afterErr := testutil.ToFloat64(AIRequestsTotal.WithLabelValues("vision", "analyze", "error"))
	if afterErr-beforeErr != 1 {
		t.Errorf("expected error counter +1, got %f", afterErr-beforeErr)
	}

	if testutil.CollectAndCount(AIRequestDuration) == 0 {
		t.Error("expected ai_request_duration_seconds to have observations")
	}
}

func TestObserveTokens_SkipsZero(t *testing.T) {
	ObserveTokens("openai", "gpt-test", 12, 0)

	if got := testutil.ToFloat64(AITokensTotal.WithLabelValues("openai", "gpt-test", "prompt")); got != 12 {
		t.Errorf("expected 12 prompt tokens, got %f", got)
	}
	if got := testutil.ToFloat64(AITokensTotal.WithLabelValues("openai", "gpt-test", "completion")); got != 0 {
		t.Errorf("expected 0 completion tokens, got %f", got)
	}
}

func TestRegisterAIMetrics_Idempotent(t *testing.T) {
	RegisterAIMetrics()
	RegisterAIMetrics()
}

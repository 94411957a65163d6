package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserve(t *testing.T) {
	m := New()

	m.ObserveSettlement(OutcomeSettled)
	m.ObserveSettlement(OutcomeSettled)
	m.ObserveSettlement(OutcomeRejected)
	m.ObserveWalletPostings("credit", 1)
	m.ObserveWalletPostings("debit", 0)
	m.ObservePreview(true)

	body := scrape(t, m)
	assert.Contains(t, body, MetricSettlementsTotal+`{outcome="settled"} 2`)
	assert.Contains(t, body, MetricSettlementsTotal+`{outcome="rejected"} 1`)
	assert.Contains(t, body, MetricWalletPostingTotal+`{type="credit"} 1`)
	assert.NotContains(t, body, `type="debit"`)
	assert.Contains(t, body, MetricPreviewsTotal+`{drifted="true"} 1`)
}

func TestHandlerIncludesRuntimeCollectors(t *testing.T) {
	body := scrape(t, New())
	assert.Contains(t, body, "go_goroutines")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "ok", codeOf(nil))
	assert.Equal(t, "not_found", codeOf(connect.NewError(connect.CodeNotFound, errors.New("x"))))
	assert.Equal(t, "unknown", codeOf(errors.New("plain")))
}

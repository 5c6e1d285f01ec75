package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteComputed_CountsByLabels(t *testing.T) {
	m := New(nil)
	m.QuoteComputed("cftv_install", "ok")
	m.QuoteComputed("cftv_install", "ok")
	m.QuoteComputed("cftv_install", "invalid")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("cftv_install", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("cftv_install", "invalid")))
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := New(nil)
	m.CatalogUpserted("ok")
	m.ObserveHTTP("GET", "/api/catalog", "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), `orcamentos_catalog_upserts_total{outcome="ok"} 1`))
	assert.True(t, strings.Contains(string(body), `orcamentos_http_requests_total{method="GET",route="/api/catalog",status="200"} 1`))
}

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paysplit/internal/modkit/module"
	"paysplit/internal/platform/config"
	"paysplit/internal/platform/metrics"
	phttp "paysplit/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opt Options) (*chi.Mux, *metrics.Metrics) {
	t.Helper()
	t.Cleanup(module.Reset)
	if opt.Metrics == nil {
		opt.Metrics = metrics.New("test")
	}
	opt.Config = config.New()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), opt)
	return mux, opt.Metrics
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestMount_SellerToBuyerRoundTrip(t *testing.T) {
	mux, m := newServer(t, Options{})

	rr := do(mux, http.MethodPost, "/api/v1/seller/generate",
		`{"productName":"Mug","totalPriceUSD":"100","usdtAmountUSD":"40"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var gen struct {
		Data struct {
			Text string `json:"payload"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &gen))
	require.NotEmpty(t, gen.Data.Text)

	body, err := json.Marshal(map[string]any{"payload": gen.Data.Text, "quantity": 2})
	require.NoError(t, err)
	rr = do(mux, http.MethodPost, "/api/v1/buyer/decode", string(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), `"totalPriceUSD":"200"`)

	require.Equal(t, 1.0, testutil.ToFloat64(m.PayloadsEncoded.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.PayloadsDecoded.WithLabelValues("ok")))
}

func TestMount_MetaReportsSiblingConfig(t *testing.T) {
	t.Setenv("PRICING_EXCHANGE_RATE", "0.25")
	t.Setenv("SCAN_FPS", "15")
	mux, _ := newServer(t, Options{})

	rr := do(mux, http.MethodGet, "/api/v1/meta/config", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"exchangeRate":"0.25"`)
	require.Contains(t, rr.Body.String(), `"fps":15`)

	_, ok := module.PortsAs[any]("seller")
	require.True(t, ok)
}

func TestMount_SwaggerToggle(t *testing.T) {
	mux, _ := newServer(t, Options{})
	require.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/docs/doc.json", "").Code)

	mux, _ = newServer(t, Options{EnableSwagger: true})
	rr := do(mux, http.MethodGet, "/api/docs/doc.json", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"/seller/quote"`)
	require.Contains(t, rr.Body.String(), `"/buyer/scan"`)
}

func TestMount_ErrorEnvelope(t *testing.T) {
	mux, _ := newServer(t, Options{})
	rr := do(mux, http.MethodPost, "/api/v1/seller/generate",
		`{"totalPriceUSD":"100","usdtAmountUSD":"60"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), `"field":"usdtAmountUSD"`)
	require.Contains(t, rr.Body.String(), `"request_id":`)
}

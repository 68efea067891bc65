package module

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	modkit "paysplit/internal/modkit"
	"paysplit/internal/modkit/module"
	"paysplit/internal/platform/config"
	phttp "paysplit/internal/platform/net/http"
	"paysplit/internal/services/api/seller/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func TestFromConfig(t *testing.T) {
	o := FromConfig(config.New())
	if o.Rate.String() != "0.5" || o.MaxTotalLength != 2800 || o.MaxImageLength != 1800 {
		t.Fatalf("unexpected defaults %+v", o)
	}
	if o.MaxImageBytes != 512000 || o.QRSize != 200 {
		t.Fatalf("unexpected defaults %+v", o)
	}

	t.Setenv("PRICING_EXCHANGE_RATE", "0.25")
	t.Setenv("PAYLOAD_MAX_TOTAL_LENGTH", "2000")
	t.Setenv("PAYLOAD_QR_SIZE", "320")
	o = FromConfig(config.New())
	if o.Rate.String() != "0.25" || o.MaxTotalLength != 2000 || o.QRSize != 320 {
		t.Fatalf("env not applied %+v", o)
	}
}

func TestModule_PortsAndRoutes(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()}, modkit.WithOptions(Options{Rate: decimal.RequireFromString("0.25")}))
	if m.Name() != "seller" {
		t.Fatalf("unexpected name %q", m.Name())
	}

	cfg := module.MustPortsOf[domain.ConfigPort](m).PricingConfig()
	if cfg.ExchangeRate.String() != "0.25" || cfg.MaxTotalLength != 2800 {
		t.Fatalf("unexpected pricing config %+v", cfg)
	}
	if _, ok := module.PortsOf[domain.ServicePort](m); !ok {
		t.Fatal("expected seller service port")
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	req := httptest.NewRequest(http.MethodPost, "/seller/quote", strings.NewReader(`{"totalPriceUSD":"10","usdtAmountUSD":"5"}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"ivyAmountNative":"20"`) {
		t.Fatalf("expected native amount at the injected rate in %s", rr.Body.String())
	}
}

package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"paysplit/internal/modkit/httpkit"
	phttp "paysplit/internal/platform/net/http"
	"paysplit/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type quoteModule struct {
	Base
}

func (m *quoteModule) Ports() any { return m.Injected() }

func newQuoteModule(opts ...Option) *quoteModule {
	m := &quoteModule{Base: Build("quotes", "/quotes/", opts...)}
	m.Handle(func(r httpkit.Router) {
		r.Get("/preview", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("preview")) })
	})
	return m
}

func serve(t *testing.T, m Module, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestBuild_DefaultsAndOverrides(t *testing.T) {
	m := newQuoteModule()
	if m.Name() != "quotes" || m.Prefix() != "/quotes" {
		t.Fatalf("defaults: name=%q prefix=%q", m.Name(), m.Prefix())
	}
	if m.Injected() != nil || m.Options() != nil || len(m.Middlewares()) != 0 {
		t.Fatalf("expected empty injection and middleware")
	}

	type rate struct{ USD string }
	m = newQuoteModule(WithName("pricing"), WithPrefix("pricing"), WithOptions(rate{"0.5"}), WithPorts("port"))
	if m.Name() != "pricing" || m.Prefix() != "/pricing" {
		t.Fatalf("overrides: name=%q prefix=%q", m.Name(), m.Prefix())
	}
	if got, ok := m.Options().(rate); !ok || got.USD != "0.5" {
		t.Fatalf("options not carried: %#v", m.Options())
	}
	if m.Ports() != "port" {
		t.Fatalf("ports not carried: %#v", m.Ports())
	}
}

func TestBase_MountRoutesAppliesMiddlewareToAllRoutes(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "quotes")
			next.ServeHTTP(w, r)
		})
	}
	extra := func(r phttp.Router) {
		r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	}
	m := newQuoteModule(WithMiddlewares(tag), WithRoutes(extra), WithRoutes(nil))

	rr := serve(t, m, "/quotes/preview")
	if rr.Code != http.StatusOK || rr.Body.String() != "preview" || rr.Header().Get("X-Module") != "quotes" {
		t.Fatalf("own route: %d %q %q", rr.Code, rr.Body.String(), rr.Header().Get("X-Module"))
	}

	rr = serve(t, m, "/quotes/extra")
	if rr.Code != http.StatusAccepted || rr.Header().Get("X-Module") != "quotes" {
		t.Fatalf("extra route: %d", rr.Code)
	}

	if rr := serve(t, m, "/preview"); rr.Code != http.StatusNotFound {
		t.Fatalf("route leaked outside prefix: %d", rr.Code)
	}
}

func TestBuild_CopiesMiddlewareSlice(t *testing.T) {
	noop := func(next http.Handler) http.Handler { return next }
	mw := []func(http.Handler) http.Handler{noop}
	m := newQuoteModule(WithMiddlewares(mw...))
	mw[0] = nil
	if m.Middlewares()[0] == nil {
		t.Fatalf("middleware slice aliased caller storage")
	}
}

func TestBase_RequiresNameAndPrefix(t *testing.T) {
	m := &quoteModule{Base: Build("", "")}
	testkit.MustPanic(t, func() { _ = m.Name() })
	testkit.MustPanic(t, func() { _ = m.Prefix() })
}

package http_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "paysplit/internal/platform/net/http"
	"paysplit/internal/platform/testkit"
	sellerhttp "paysplit/internal/services/api/seller/http"
	sellersvc "paysplit/internal/services/api/seller/service"

	"github.com/go-chi/chi/v5"
)

func newRouter() stdhttp.Handler {
	mux := chi.NewRouter()
	sellerhttp.Register(phttp.AdaptChi(mux), sellersvc.New(sellersvc.Options{}))
	return mux
}

func post(t *testing.T, h stdhttp.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func decodeEnv(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, rr.Body.String())
	}
	return env
}

func TestQuote(t *testing.T) {
	rr := post(t, newRouter(), "/quote", `{"totalPriceUSD":"100","usdtAmountUSD":"70"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	testkit.MustContain(t, body, `"adjusted":true`)
	testkit.MustContain(t, body, `"usdtAmountUSD":"50"`)
	testkit.MustContain(t, body, `"ivyAmountNative":"100"`)
}

func TestGenerate(t *testing.T) {
	rr := post(t, newRouter(), "/generate", `{"totalPriceUSD":"100","usdtAmountUSD":"40","productName":"Mug"}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	var out struct {
		Payload string `json:"payload"`
		Length  int    `json:"length"`
		Omitted bool   `json:"imageOmittedForSizeBudget"`
		Display struct {
			Name string `json:"productName"`
		} `json:"display"`
	}
	if err := json.Unmarshal(decodeEnv(t, rr).Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	want := `{"productImageBase64":null,"productName":"Mug","totalPriceUSD":100,"usdtAmountUSD":40,"ivyAmountUSD":60}`
	if out.Payload != want {
		t.Fatalf("unexpected payload %s", out.Payload)
	}
	if out.Length != len(want) || out.Omitted || out.Display.Name != "Mug" {
		t.Fatalf("unexpected generate output %+v", out)
	}
}

func TestGenerate_Errors(t *testing.T) {
	h := newRouter()

	rr := post(t, h, "/generate", `{"totalPriceUSD":"100","usdtAmountUSD":"60"}`)
	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", rr.Code, rr.Body.String())
	}
	if env := decodeEnv(t, rr); env.Field != "usdtAmountUSD" {
		t.Fatalf("expected field usdtAmountUSD got %q", env.Field)
	}

	// missing required field fails validation before the service runs
	rr = post(t, h, "/generate", `{"usdtAmountUSD":"1"}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = post(t, h, "/generate", `{"totalPriceUSD":"1","usdtAmountUSD":"0","bogus":1}`)
	if rr.Code != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field got %d", rr.Code)
	}
}

func TestQR_ReturnsPNG(t *testing.T) {
	rr := post(t, newRouter(), "/qr", `{"payload":"{\"totalPriceUSD\":1,\"usdtAmountUSD\":0,\"ivyAmountUSD\":1}","size":128}`)
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png got %q", ct)
	}
	cfg, err := png.DecodeConfig(rr.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width != 128 {
		t.Fatalf("expected 128px got %d", cfg.Width)
	}
}

func upload(t *testing.T, h stdhttp.Handler, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "product.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(stdhttp.MethodPost, "/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestImage_Upload(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	h := newRouter()

	rr := upload(t, h, "image", img.Bytes())
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", rr.Code, rr.Body.String())
	}
	testkit.MustContain(t, rr.Body.String(), `"productImageBase64":"data:image/png;base64,`)

	rr = upload(t, h, "image", make([]byte, 600*1024))
	if rr.Code != stdhttp.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = upload(t, h, "file", img.Bytes())
	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing image field got %d", rr.Code)
	}
}

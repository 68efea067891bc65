package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"paysplit/internal/core/version"
	"paysplit/internal/platform/config"
	perr "paysplit/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// APIBase is the mount point documented routes live under
const APIBase = "/api/v1"

// SpecMutator lets modules tweak the generated document before it is served
type SpecMutator func(spec map[string]any)

var (
	mutMu    sync.RWMutex
	mutators []SpecMutator
)

// Register adds a spec mutator; nil is ignored
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

type obj = map[string]any

// serveDocJSON walks the mounted router on every request, so late mounts show up
func serveDocJSON(routes http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		spec, err := buildSpec(routes)
		if err != nil {
			http.Error(w, "spec build error", http.StatusInternalServerError)
			return
		}

		mutMu.RLock()
		for _, m := range mutators {
			m(spec)
		}
		mutMu.RUnlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// buildSpec renders an OAS 3.0 document with one operation per route under APIBase
// every operation documents the envelope errors the api stack can produce
func buildSpec(routes http.Handler) (obj, error) {
	paths := obj{}
	tags := map[string]bool{}

	if cr, ok := routes.(chi.Routes); ok {
		err := chi.Walk(cr, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			rel, ok := strings.CutPrefix(route, APIBase)
			if !ok || rel == "" {
				return nil
			}
			rel = strings.TrimSuffix(strings.ReplaceAll(rel, "/*/", "/"), "/")
			tag := tagOf(rel)
			tags[tag] = true

			node, _ := paths[rel].(obj)
			if node == nil {
				node = obj{}
				paths[rel] = node
			}
			node[strings.ToLower(method)] = obj{
				"summary": method + " " + rel,
				"tags":    []any{tag},
				"responses": obj{
					"200": obj{"description": "OK"},
					"400": errorResponse(http.StatusBadRequest, perr.ErrorCodeValidation, "totalPriceUSD is a required field"),
					"500": errorResponse(http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"),
				},
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	title := "paysplit API"
	if suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
		title += " " + suffix
	}

	return obj{
		"openapi": "3.0.3",
		"info":    obj{"title": title, "version": version.Info().Version},
		"servers": []any{obj{"url": APIBase}},
		"tags":    tagList(tags),
		"paths":   paths,
		"components": obj{"schemas": obj{
			"ErrorResponse": errorSchema(),
		}},
	}, nil
}

// tagOf is the capitalised first path segment, /seller/quote -> Seller
func tagOf(rel string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(rel, "/"), "/")
	if seg == "" {
		return "default"
	}
	return strings.ToUpper(seg[:1]) + seg[1:]
}

func tagList(tags map[string]bool) []any {
	names := make([]string, 0, len(tags))
	for n := range tags {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = obj{"name": n}
	}
	return out
}

// errorSchema mirrors phttp.Envelope on the failure path
func errorSchema() obj {
	str := obj{"type": "string"}
	i32 := obj{"type": "integer", "format": "int32"}
	return obj{
		"type":        "object",
		"description": "Standard error response",
		"properties": obj{
			"status_code": i32,
			"status":      str,
			"code":        i32,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(status int, code perr.ErrorCode, msg string) obj {
	return obj{
		"description": http.StatusText(status),
		"content": obj{"application/json": obj{
			"schema": obj{"$ref": "#/components/schemas/ErrorResponse"},
			"example": obj{
				"status_code": status,
				"status":      http.StatusText(status),
				"code":        int(code),
				"error":       msg,
				"request_id":  "579f33bf50b1/abc-000001",
			},
		}},
	}
}

// Package httpkit is the handler and routing surface modules use
// it re-exports the platform http seam so modules never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "paysplit/internal/platform/net/http"
	"paysplit/internal/platform/net/http/bind"
)

type (
	// Response is a status plus envelope (or raw body) to write
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Error maps err to its status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Blob returns a 200 response with a raw body of the given content type
func Blob(contentType string, b []byte) Response { return phttp.Blob(contentType, b) }

// JSON binds and validates the request body into T before calling fn
// a Response returned by fn is written as is; any other value is wrapped in a 200 envelope
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that reads no JSON body, such as a GET or a multipart POST
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return respond(fn(r)) })
}

func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

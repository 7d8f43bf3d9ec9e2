// Package httpkit is the http surface modules mount routes with
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "observafloresta/internal/platform/net/http"
	"observafloresta/internal/platform/net/http/bind"
)

type (
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// JSON decodes and validates a strict JSON body before calling fn
// fn may return a Response to pick its own status
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(fn(r, in))
	})
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

func reply(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

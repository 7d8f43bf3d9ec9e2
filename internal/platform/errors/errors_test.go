package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeConflict:        http.StatusConflict,
		ErrorCodeDuplicateKey:    http.StatusConflict,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeForbidden:       http.StatusForbidden,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeDB:              http.StatusInternalServerError,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnknown:         http.StatusInternalServerError,
		9999:                     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("HTTPStatusCode(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestError_TextAndCause(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("dial tcp: refused")
	err := Wrapf(cause, ErrorCodeUnavailable, "deforestation: load %s", "areas")
	if err.Error() != "deforestation: load areas: dial tcp: refused" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", HTTPStatus(err))
	}

	// the cause stays off the wire
	if w := WireFrom(err); w.Message != "deforestation: load areas" || w.Code != ErrorCodeUnavailable {
		t.Fatalf("wire = %+v", w)
	}
}

func TestCodeOf_FindsOutermost(t *testing.T) {
	inner := NotFoundf("Estado não encontrado: %s", "XX")
	outer := fmt.Errorf("handler: %w", Wrap(inner, ErrorCodeDB, "lookup"))
	if CodeOf(outer) != ErrorCodeDB {
		t.Fatalf("CodeOf = %v, want DB", CodeOf(outer))
	}
	if CodeOf(fmt.Errorf("x: %w", inner)) != ErrorCodeNotFound {
		t.Fatal("wrapped by fmt should still find the code")
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown || CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("foreign and nil errors are Unknown")
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	base := InvalidArgf("year must be an integer")
	named := WithField(base, "year")

	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	if e, ok := As(named); !ok || e.Field() != "year" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("named = %+v", e)
	}
	if w := WireFrom(named); w.Field != "year" {
		t.Fatalf("wire field = %q", w.Field)
	}

	foreign := stderrs.New("boom")
	if WithField(foreign, "x") != foreign {
		t.Fatal("foreign error should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil should be the zero wire")
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{TooManyRequestsf("x"), ErrorCodeTooManyRequests},
		{New(ErrorCodeForbidden, "x"), ErrorCodeForbidden},
	}
	for _, tc := range cases {
		if CodeOf(tc.err) != tc.code {
			t.Errorf("%v: code = %v, want %v", tc.err, CodeOf(tc.err), tc.code)
		}
	}
}

package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeInvalidPid, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeFormat, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestWrappingAndCodeExtraction(t *testing.T) {
	src := stderrs.New("root")
	e := Wrap(src, ErrorCodeUnavailable, "roi file closed")
	if CodeOf(e) != ErrorCodeUnavailable {
		t.Fatalf("CodeOf = %v, want Unavailable", CodeOf(e))
	}
	if !IsUnavailable(e) {
		t.Fatalf("IsUnavailable = false")
	}
	if u := stderrs.Unwrap(e); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if Root(e).Error() != "root" {
		t.Fatalf("Root = %v", Root(e))
	}
}

func TestInvalidPidSugar(t *testing.T) {
	e := InvalidPidf("invalid pid: %s", "NOTAPID")
	if !IsInvalidPid(e) {
		t.Fatalf("IsInvalidPid = false")
	}
	if got := e.Error(); got != "invalid pid: NOTAPID" {
		t.Fatalf("Error = %q", got)
	}
	// foreign errors never classify as invalid pid
	if IsInvalidPid(stderrs.New("nope")) {
		t.Fatalf("foreign error classified as invalid pid")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	w := WireFrom(WithField(New(ErrorCodeValidation, "bad"), "target"))
	if w.Code != ErrorCodeValidation || w.Field != "target" {
		t.Fatalf("WireFrom = %+v", w)
	}
	w2 := WireFrom(stderrs.New("plain"))
	if w2.Code != ErrorCodeUnknown || w2.Message != "plain" {
		t.Fatalf("WireFrom foreign = %+v", w2)
	}
}

func TestNilErrorRenders(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", e.Error())
	}
}

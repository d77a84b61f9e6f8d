package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStatusError_PlainTextTruncation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"short", "Servicio no disponible", "Servicio no disponible"},
		{"html ignored", "<html>502</html>", ""},
		{"multi-byte cut", strings.Repeat("ñ", 250), strings.Repeat("ñ", 197) + "..."},
		{"exactly at limit", strings.Repeat("é", 200), strings.Repeat("é", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := statusError("GET /historial", http.StatusBadGateway, []byte(tt.body))

			if !utf8.ValidString(e.Message) {
				t.Fatalf("Message is not valid UTF-8: %q", e.Message)
			}
			if e.Message != tt.expected {
				t.Errorf("Message = %q, expected %q", e.Message, tt.expected)
			}
		})
	}
}

func TestStatusError_JSONBody(t *testing.T) {
	e := statusError("POST /analizar", http.StatusBadRequest,
		[]byte(`{"error": "Tipo de comida inválido", "details": "use desayuno"}`))

	if e.Message != "Tipo de comida inválido" || e.Details != "use desayuno" {
		t.Errorf("unexpected message/details: %q / %q", e.Message, e.Details)
	}
	if !errors.Is(e, ErrStatus) || errors.Is(e, ErrNotFound) {
		t.Errorf("unexpected sentinel matching for %v", e)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		empty bool
		want  string
	}{
		{"transport", &Error{Kind: KindTransport, Op: "GET /historial", Err: errors.New("connection refused")}, false, "backend is running"},
		{"cancelled", &Error{Kind: KindTransport, Op: "GET /historial", Err: context.Canceled}, true, ""},
		{"not found", &Error{Kind: KindStatus, StatusCode: http.StatusNotFound}, false, "already have been deleted"},
		{"server error", &Error{Kind: KindStatus, StatusCode: http.StatusInternalServerError}, false, "check its logs"},
		{"decode", &Error{Kind: KindDecode}, false, "unexpected format"},
		{"request", &Error{Kind: KindRequest, Message: "entry ID is required"}, true, ""},
		{"plain error", errors.New("boom"), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.empty {
				if got != "" {
					t.Errorf("expected no hint, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, expected it to contain %q", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindTransport, "transport"},
		{KindStatus, "status"},
		{KindDecode, "decode"},
		{KindRequest, "request"},
		{Kind(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
)

type loginBody struct {
	Username string `json:"username" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"admin"}`))
	var body loginBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Username != "admin" {
		t.Fatalf("unexpected username %q", body.Username)
	}
}

func TestDecodeJSONBodyRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": `{"username":"admin","role":"x"}`,
		"malformed":     `{"username":`,
		"missing field": `{}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
			var body loginBody
			err := DecodeJSONBody(req, &body)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=10&bad=x&big=500", nil)
	if v, err := ParseQueryInt(req, "limit", 25, 1, 100); err != nil || v != 10 {
		t.Fatalf("expected 10, got %d (%v)", v, err)
	}
	if v, err := ParseQueryInt(req, "missing", 25, 1, 100); err != nil || v != 25 {
		t.Fatalf("expected default 25, got %d (%v)", v, err)
	}
	if _, err := ParseQueryInt(req, "bad", 25, 1, 100); err == nil {
		t.Fatal("expected non-numeric error")
	}
	if _, err := ParseQueryInt(req, "big", 25, 1, 100); err == nil {
		t.Fatal("expected range error")
	}
}

func TestParseQueryDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?from=2026-03-01&to=2026-03-01&at=2026-03-01T10:00:00Z&bad=03/01/2026", nil)

	from, err := ParseQueryDate(req, "from", false)
	if err != nil {
		t.Fatalf("from: %v", err)
	}
	if !from.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", from)
	}

	to, err := ParseQueryDate(req, "to", true)
	if err != nil {
		t.Fatalf("to: %v", err)
	}
	if to.Day() != 1 || to.Hour() != 23 {
		t.Fatalf("expected end of day, got %v", to)
	}

	at, err := ParseQueryDate(req, "at", true)
	if err != nil || at.Hour() != 10 {
		t.Fatalf("expected timestamp kept as-is, got %v (%v)", at, err)
	}

	if v, err := ParseQueryDate(req, "missing", false); err != nil || v != nil {
		t.Fatalf("expected nil for missing, got %v (%v)", v, err)
	}
	if _, err := ParseQueryDate(req, "bad", false); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("itemId", id.String())
	routeCtx.URLParams.Add("bad", "nope")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	got, err := ParseUUIDParam(req, "itemId")
	if err != nil || got != id {
		t.Fatalf("expected %s, got %s (%v)", id, got, err)
	}
	if _, err := ParseUUIDParam(req, "bad"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  Ana   Maria \t", 0, "Ana Maria"},
		{"bad\x00name\x07", 0, "badname"},
		{"Zoë Zoë", 3, "Zoë"},
		{"ab cd", 3, "ab"},
		{"", 10, ""},
	}
	for _, tc := range cases {
		if got := SanitizeString(tc.in, tc.max); got != tc.want {
			t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

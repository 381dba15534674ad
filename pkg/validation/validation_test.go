package validation

import (
	"testing"

	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=2"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Note     string `validate:"max=3"`
}

func TestStructReportsFieldDetails(t *testing.T) {
	err := Struct(sample{Name: "a", Quantity: 0, Note: "long"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	if details["name"] != "must be at least 2 characters" {
		t.Fatalf("unexpected name detail %q", details["name"])
	}
	if details["quantity"] != "must be at least 1" {
		t.Fatalf("unexpected quantity detail %q", details["quantity"])
	}
	if details["Note"] != "must be at most 3 characters" {
		t.Fatalf("expected untagged field to use struct name, got %v", details)
	}
}

func TestStructPasses(t *testing.T) {
	if err := Struct(sample{Name: "ok", Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

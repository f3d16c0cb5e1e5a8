package services_test

import (
	"errors"
	"strings"
	"testing"

	"tvkeep/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalService, "tvdb", "series", "fetch failed", base)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped base error to remain unwrappable")
	}
	for _, part := range []string{"tvdb", "series", "fetch failed", "boom"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("expected %q in message %q", part, err.Error())
		}
	}
}

func TestWrapNilMarkerFallsBackToTransient(t *testing.T) {
	err := services.Wrap(nil, "catalog", "lookup", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	err := services.Wrap(services.ErrNotFound, "catalog", "series", "id 42", nil)
	if !services.IsNotFound(err) {
		t.Fatal("expected IsNotFound to match wrapped marker")
	}
	if services.IsNotFound(errors.New("other")) {
		t.Fatal("expected IsNotFound to reject unrelated errors")
	}
}

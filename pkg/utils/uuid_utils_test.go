package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUIDv7_IsVersion7(t *testing.T) {
	id := GenerateUUIDv7()
	if id == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if id.Version() != 7 {
		t.Fatalf("expected version 7, got %d", id.Version())
	}
}

func TestGenerateUUIDv7_TimeOrdered(t *testing.T) {
	first := GenerateUUIDv7()
	second := GenerateUUIDv7()
	if first.String() >= second.String() {
		t.Fatalf("expected lexicographic ordering: %s then %s", first, second)
	}
}

func TestGenerateUUIDv7_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := GenerateUUIDv7()
	if id == uuid.Nil {
		t.Fatal("expected v4 fallback id when v7 fails")
	}
}

package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("zero limit should normalize to default, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("negative limit should normalize to default, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("oversized limit should cap at max, got %d", got)
	}
	if got := NormalizeLimit(7); got != 7 {
		t.Fatalf("valid limit should pass through, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC),
		ID:        uuid.New(),
	}

	decoded, err := ParseCursor(EncodeCursor(cursor))
	if err != nil {
		t.Fatalf("ParseCursor error: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected decoded cursor")
	}
	if !decoded.CreatedAt.Equal(cursor.CreatedAt) || decoded.ID != cursor.ID {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, cursor)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	if c, err := ParseCursor("  "); err != nil || c != nil {
		t.Fatalf("blank cursor should parse to nil, got %v %v", c, err)
	}
	if _, err := ParseCursor("!!!not-base64!!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := ParseCursor("bm8tcGlwZQ=="); err == nil {
		t.Fatal("expected error for missing separator")
	}
}

package idgen

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator_Generate(t *testing.T) {
	g := NewULIDGenerator()

	first := g.Generate()
	second := g.Generate()

	if _, err := ulid.ParseStrict(first); err != nil {
		t.Fatalf("expected valid ULID, got %q: %v", first, err)
	}
	if first == second {
		t.Fatalf("expected unique IDs, got %q twice", first)
	}
}

func TestULIDGenerator_SameMillisecondStaysOrdered(t *testing.T) {
	g := NewULIDGenerator()
	stamp := time.Date(2012, time.January, 10, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return stamp }

	prev := g.Generate()
	for i := 0; i < 1000; i++ {
		next := g.Generate()
		if next <= prev {
			t.Fatalf("expected increasing IDs, got %q then %q", prev, next)
		}
		id := ulid.MustParse(next)
		if id.Time() != ulid.Timestamp(stamp) {
			t.Fatalf("expected timestamp %d, got %d", ulid.Timestamp(stamp), id.Time())
		}
		prev = next
	}
}

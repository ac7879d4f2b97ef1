package bookings

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/config"
)

type stubChecker struct {
	taken  map[string]bool
	err    error
	checks []string
}

func (s *stubChecker) ExistsByReference(ctx context.Context, tenantID uuid.UUID, reference string) (bool, error) {
	s.checks = append(s.checks, reference)
	if s.err != nil {
		return false, s.err
	}
	return s.taken[reference], nil
}

func newTestGenerator(checker *stubChecker, attempts int) *ReferenceGenerator {
	gen := NewReferenceGenerator(checker, config.BookingConfig{
		ReferenceMaxAttempts: attempts,
		ReferenceRetryDelay:  time.Millisecond,
	}, nil)
	gen.now = func() time.Time {
		return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	gen.sleep = func(time.Duration) {}
	return gen
}

func TestReferencePrefix(t *testing.T) {
	tenantID := uuid.MustParse("ab000000-0000-0000-0000-000000000000")

	tests := []struct {
		name       string
		tenantName string
		want       string
	}{
		{name: "initials from words", tenantName: "Blue Lagoon Tours", want: "BLT"},
		{name: "caps at four letters", tenantName: "A Big Company Of Five Words", want: "ABCO"},
		{name: "skips non-letter words", tenantName: "123 Tours & Travel", want: "TT"},
		{name: "falls back to tenant id", tenantName: "123 456", want: "AB00"},
		{name: "empty name falls back to tenant id", tenantName: "", want: "AB00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := referencePrefix(tc.tenantName, tenantID); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if got := referencePrefix("", uuid.Nil); got != fallbackReferencePrefix {
		t.Fatalf("expected constant fallback, got %q", got)
	}
}

func TestGenerateFormat(t *testing.T) {
	checker := &stubChecker{}
	gen := newTestGenerator(checker, 3)

	ref := gen.Generate(context.Background(), uuid.New(), "Blue Lagoon Tours")
	pattern := regexp.MustCompile(`^BLT-\d{6}-[0-9A-Z]{4}$`)
	if !pattern.MatchString(ref) {
		t.Fatalf("unexpected reference format %q", ref)
	}
	if len(checker.checks) != 1 {
		t.Fatalf("expected a single existence check, got %d", len(checker.checks))
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	gen := newTestGenerator(&stubChecker{}, 3)

	// First candidate collides; the generator retries with a fresh random
	// segment after the delay.
	delays := 0
	gen.sleep = func(time.Duration) { delays++ }
	dynamic := &dynamicChecker{exists: func(string) bool {
		return false
	}}
	first := true
	dynamic.exists = func(string) bool {
		if first {
			first = false
			return true
		}
		return false
	}
	gen.checker = dynamic

	ref := gen.Generate(context.Background(), uuid.New(), "Blue Lagoon Tours")
	if ref == "" {
		t.Fatal("expected a reference")
	}
	if dynamic.calls != 2 {
		t.Fatalf("expected 2 existence checks, got %d", dynamic.calls)
	}
	if delays != 1 {
		t.Fatalf("expected one retry delay, got %d", delays)
	}
}

type dynamicChecker struct {
	exists func(reference string) bool
	calls  int
}

func (d *dynamicChecker) ExistsByReference(ctx context.Context, tenantID uuid.UUID, reference string) (bool, error) {
	d.calls++
	return d.exists(reference), nil
}

func TestGenerateFallbackAfterExhaustion(t *testing.T) {
	dynamic := &dynamicChecker{exists: func(string) bool { return true }}
	gen := newTestGenerator(&stubChecker{}, 3)
	gen.checker = dynamic

	ref := gen.Generate(context.Background(), uuid.New(), "Blue Lagoon Tours")
	pattern := regexp.MustCompile(`^BLT-\d{13}-[0-9A-Z]{10}$`)
	if !pattern.MatchString(ref) {
		t.Fatalf("expected entropic fallback format, got %q", ref)
	}
	if dynamic.calls != 3 {
		t.Fatalf("expected 3 attempts before fallback, got %d", dynamic.calls)
	}
}

func TestGenerateNeverFailsOnStoreError(t *testing.T) {
	checker := &stubChecker{err: errors.New("connection refused")}
	gen := newTestGenerator(checker, 5)

	ref := gen.Generate(context.Background(), uuid.New(), "Blue Lagoon Tours")
	if ref == "" {
		t.Fatal("generator must always return a reference")
	}
	if len(checker.checks) != 1 {
		t.Fatalf("expected to stop checking after the first error, got %d", len(checker.checks))
	}
}

package bookings

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/voyacore/tourbook-backend/pkg/config"
	"github.com/voyacore/tourbook-backend/pkg/metrics"
)

const (
	fallbackReferencePrefix = "TBK"
	base36Alphabet          = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxPrefixLetters        = 4
	shortRandomLen          = 4
	fallbackRandomLen       = 10
)

type referenceChecker interface {
	ExistsByReference(ctx context.Context, tenantID uuid.UUID, reference string) (bool, error)
}

// ReferenceGenerator produces per-tenant booking references. The existence
// check is an optimistic pre-check only; the unique index on
// (tenant_id, reference) is what actually guarantees uniqueness.
type ReferenceGenerator struct {
	checker     referenceChecker
	metrics     *metrics.PricingMetrics
	maxAttempts int
	retryDelay  time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// NewReferenceGenerator wires the generator against the booking store.
func NewReferenceGenerator(checker referenceChecker, cfg config.BookingConfig, m *metrics.PricingMetrics) *ReferenceGenerator {
	attempts := cfg.ReferenceMaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &ReferenceGenerator{
		checker:     checker,
		metrics:     m,
		maxAttempts: attempts,
		retryDelay:  cfg.ReferenceRetryDelay,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

// Generate returns a reference unique among the tenant's bookings at the time
// of check. It never fails the caller: after exhausting retries (or when the
// store errors) it falls back to a maximally-entropic candidate instead.
func (g *ReferenceGenerator) Generate(ctx context.Context, tenantID uuid.UUID, tenantName string) string {
	prefix := referencePrefix(tenantName, tenantID)

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%s-%s", prefix, g.millisSuffix(), randomBase36(shortRandomLen))

		exists, err := g.checker.ExistsByReference(ctx, tenantID, candidate)
		if err != nil {
			break
		}
		if !exists {
			return candidate
		}

		g.metrics.IncReferenceRetry()
		if g.retryDelay > 0 {
			g.sleep(g.retryDelay)
		}
	}

	return fmt.Sprintf("%s-%d-%s", prefix, g.now().UnixMilli(), randomBase36(fallbackRandomLen))
}

func (g *ReferenceGenerator) millisSuffix() string {
	return fmt.Sprintf("%06d", g.now().UnixMilli()%1_000_000)
}

// referencePrefix derives a short human-readable prefix from the tenant name
// initials, falling back to the tenant id and then to a constant.
func referencePrefix(tenantName string, tenantID uuid.UUID) string {
	var initials []rune
	for _, word := range strings.Fields(tenantName) {
		first := []rune(word)[0]
		if unicode.IsLetter(first) {
			initials = append(initials, unicode.ToUpper(first))
		}
		if len(initials) == maxPrefixLetters {
			break
		}
	}
	if len(initials) > 0 {
		return string(initials)
	}

	if tenantID != uuid.Nil {
		hex := strings.ReplaceAll(tenantID.String(), "-", "")
		return strings.ToUpper(hex[:maxPrefixLetters])
	}

	return fallbackReferencePrefix
}

func randomBase36(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(base36Alphabet[rand.Intn(len(base36Alphabet))])
	}
	return b.String()
}

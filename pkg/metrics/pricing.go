package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records pricing-engine and booking outcomes.
type PricingMetrics struct {
	quotes           *prometheus.CounterVec
	offersApplied    *prometheus.CounterVec
	referenceRetries prometheus.Counter
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_quotes_total",
		Help: "Priced quotes by outcome (discounted, undiscounted, rejected).",
	}, []string{"outcome"})
	offersApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_offers_applied_total",
		Help: "Offers selected as best offer, by offer type.",
	}, []string{"offer_type"})
	referenceRetries := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_reference_retries_total",
		Help: "Booking reference candidates discarded due to collisions.",
	})
	reg.MustRegister(quotes, offersApplied, referenceRetries)
	return &PricingMetrics{
		quotes:           quotes,
		offersApplied:    offersApplied,
		referenceRetries: referenceRetries,
	}
}

// IncQuote increments the quote counter for the given outcome.
func (m *PricingMetrics) IncQuote(outcome string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncOfferApplied increments the applied-offer counter for the given type.
func (m *PricingMetrics) IncOfferApplied(offerType string) {
	if m == nil || m.offersApplied == nil {
		return
	}
	m.offersApplied.WithLabelValues(normalizeLabel(offerType)).Inc()
}

// IncReferenceRetry counts a discarded reference candidate.
func (m *PricingMetrics) IncReferenceRetry() {
	if m == nil || m.referenceRetries == nil {
		return
	}
	m.referenceRetries.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

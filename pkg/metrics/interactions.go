package metrics

import "github.com/prometheus/client_golang/prometheus"

// InteractionMetrics counts ledger write outcomes per interaction type.
type InteractionMetrics struct {
	recorded   *prometheus.CounterVec
	duplicates *prometheus.CounterVec
}

// NewInteractionMetrics registers the interaction metrics on the provided registerer.
func NewInteractionMetrics(reg prometheus.Registerer) *InteractionMetrics {
	if reg == nil {
		return &InteractionMetrics{}
	}
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interactions_recorded_total",
		Help: "Accepted interaction writes by type.",
	}, []string{"type"})
	duplicates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interactions_duplicate_total",
		Help: "Interaction writes rejected by the uniqueness constraint.",
	}, []string{"type"})
	reg.MustRegister(recorded, duplicates)
	return &InteractionMetrics{
		recorded:   recorded,
		duplicates: duplicates,
	}
}

// IncRecorded counts one accepted interaction.
func (m *InteractionMetrics) IncRecorded(interactionType string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(interactionType)).Inc()
}

// IncDuplicate counts one rejected duplicate.
func (m *InteractionMetrics) IncDuplicate(interactionType string) {
	if m == nil || m.duplicates == nil {
		return
	}
	m.duplicates.WithLabelValues(normalizeLabel(interactionType)).Inc()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the survey module.
type Metrics struct {
	// Surveys started with a fresh reference
	SurveysStarted prometheus.Counter

	// Answers accepted by question
	AnswersRecorded *prometheus.CounterVec

	// Traversals that reached a terminal question
	Outcomes *prometheus.CounterVec

	// Ledger decisions by recommendation and state
	Decisions *prometheus.CounterVec

	// Recommendation rows created the first time they became eligible
	RecommendationsMaterialised *prometheus.CounterVec

	// Store round trip latency by operation
	StoreLatency *prometheus.HistogramVec
}

// New registers the survey metrics with reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SurveysStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "energy_advice_surveys_started_total",
			Help: "Total number of surveys started",
		}),

		AnswersRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_advice_answers_total",
			Help: "Total answers recorded by question",
		}, []string{"question"}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_advice_survey_outcomes_total",
			Help: "Total traversals reaching a terminal question",
		}, []string{"outcome"}), // outcome: "answer_summary", "service_unsuitable"

		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_advice_decisions_total",
			Help: "Total recommendation decisions by key and state",
		}, []string{"recommendation", "decision"}),

		RecommendationsMaterialised: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_advice_recommendations_materialised_total",
			Help: "Total recommendation rows created for citizens",
		}, []string{"recommendation"}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "energy_advice_store_duration_seconds",
			Help:    "Duration of survey store operations",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"operation"}), // operation: "generate", "load", "save"
	}
}

func (m *Metrics) IncrementSurveysStarted() {
	if m != nil {
		m.SurveysStarted.Inc()
	}
}

// IncrementAnswer records an accepted answer.
func (m *Metrics) IncrementAnswer(question string) {
	if m != nil {
		m.AnswersRecorded.WithLabelValues(question).Inc()
	}
}

// IncrementOutcome records a traversal reaching a terminal question.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// IncrementDecision records a ledger decision.
func (m *Metrics) IncrementDecision(recommendation, decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(recommendation, decision).Inc()
	}
}

func (m *Metrics) IncrementMaterialised(recommendation string) {
	if m != nil {
		m.RecommendationsMaterialised.WithLabelValues(recommendation).Inc()
	}
}

// ObserveStoreLatency records the duration of a store call.
func (m *Metrics) ObserveStoreLatency(operation string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

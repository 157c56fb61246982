package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the voting core. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	VotesCast      prometheus.Counter
	VoteRejections *prometheus.CounterVec
	StationToggles *prometheus.CounterVec
	VotersImported *prometheus.CounterVec
	WindowActive   prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "electoral_votes_cast_total",
			Help: "Total number of votes recorded in the ledger",
		}),
		VoteRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "electoral_vote_rejections_total",
			Help: "Vote attempts refused, by reason",
		}, []string{"reason"}),
		StationToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "electoral_station_toggles_total",
			Help: "Polling station open/close transitions, by resulting state",
		}, []string{"state"}),
		VotersImported: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "electoral_voters_imported_total",
			Help: "Voter roll rows processed by bulk upsert, by outcome",
		}, []string{"outcome"}),
		WindowActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "electoral_window_active",
			Help: "1 when the last eligibility evaluation found the voting window active",
		}),
	}
}

func (m *Metrics) IncrementVotesCast() {
	if m == nil {
		return
	}
	m.VotesCast.Inc()
}

func (m *Metrics) IncrementVoteRejections(reason string) {
	if m == nil {
		return
	}
	m.VoteRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementStationToggles(open bool) {
	if m == nil {
		return
	}
	state := "closed"
	if open {
		state = "open"
	}
	m.StationToggles.WithLabelValues(state).Inc()
}

func (m *Metrics) AddVotersImported(inserted, updated, rejected, errored int) {
	if m == nil {
		return
	}
	m.VotersImported.WithLabelValues("inserted").Add(float64(inserted))
	m.VotersImported.WithLabelValues("updated").Add(float64(updated))
	m.VotersImported.WithLabelValues("rejected").Add(float64(rejected))
	m.VotersImported.WithLabelValues("error").Add(float64(errored))
}

func (m *Metrics) SetWindowActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.WindowActive.Set(1)
		return
	}
	m.WindowActive.Set(0)
}

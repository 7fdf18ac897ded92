package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification outcomes, used as the "outcome" label.
const (
	OutcomeCreated      = "created"
	OutcomeDeduplicated = "deduplicated"
	OutcomeSkipped      = "skipped"
	OutcomeFailed       = "failed"
)

type Manager struct {
	CounterNotifications *prometheus.CounterVec
	CounterLogEntries    *prometheus.CounterVec
	CounterDeferredTasks *prometheus.CounterVec
	CounterRequests      *prometheus.CounterVec
}

func NewTestManager() *Manager {
	return NewManager("fittrack", "test", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterNotifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications",
			Help:      "Notification rule evaluations by rule and outcome",
		}, []string{"rule", "outcome"}),
		CounterLogEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "log_entries",
			Help:      "The total number of created log entries by kind",
		}, []string{"kind"}),
		CounterDeferredTasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "deferred_tasks",
			Help:      "Deferred tasks by name and status",
		}, []string{"task", "status"}),
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
	}
}

// NotificationOutcome is nil-safe so components can run without metrics.
func (m *Manager) NotificationOutcome(rule, outcome string) {
	if m == nil {
		return
	}
	m.CounterNotifications.WithLabelValues(rule, outcome).Inc()
}

func (m *Manager) LogEntryCreated(kind string) {
	if m == nil {
		return
	}
	m.CounterLogEntries.WithLabelValues(kind).Inc()
}

func (m *Manager) DeferredTask(task, status string) {
	if m == nil {
		return
	}
	m.CounterDeferredTasks.WithLabelValues(task, status).Inc()
}

func (m *Manager) RequestServed(method string, status int) {
	if m == nil {
		return
	}
	m.CounterRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

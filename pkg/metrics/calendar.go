package metrics

import "time"

// CalendarRecorder пишет метрики операций с календарем от имени сервиса
type CalendarRecorder struct {
	m           *Metrics
	serviceName string
}

// NewCalendarRecorder создает recorder. При m == nil все вызовы ничего не делают.
func NewCalendarRecorder(m *Metrics, serviceName string) *CalendarRecorder {
	return &CalendarRecorder{m: m, serviceName: serviceName}
}

// CommandApplied учитывает одну примененную команду
func (r *CalendarRecorder) CommandApplied(operation, verb string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.PlannedCommands.WithLabelValues(r.serviceName, operation, verb).Inc()
}

// LockWaited учитывает ожидание блокировки (outcome: acquired|timeout|error)
func (r *CalendarRecorder) LockWaited(d time.Duration, outcome string) {
	if r == nil || r.m == nil {
		return
	}
	r.m.LockWaitDuration.WithLabelValues(r.serviceName, outcome).Observe(d.Seconds())
}

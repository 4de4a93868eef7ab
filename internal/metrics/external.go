package metrics

import (
	"strconv"
	"time"
)

// RecordExternalAPICall records one call to an external collaborator
// (notification sink or text generator).
func (m *Metrics) RecordExternalAPICall(service string, statusCode int, duration time.Duration, err error) {
	m.safeExecute("RecordExternalAPICall", func() {
		m.ExternalAPIRequestsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
		m.ExternalAPIRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
		if err != nil || statusCode >= 400 {
			m.ExternalAPIErrors.WithLabelValues(service).Inc()
		}
	})
}

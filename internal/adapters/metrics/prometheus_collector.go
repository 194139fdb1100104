package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "weaponctl"
	subsystem = "fleet"
)

// Registry is the global Prometheus registry for all metrics, created by
// InitRegistry when metrics are enabled (metrics.enabled in config).
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry. Call once at daemon
// startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, or nil if metrics
// were never initialized.
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled reports whether metrics collection is active.
func IsEnabled() bool {
	return Registry != nil
}

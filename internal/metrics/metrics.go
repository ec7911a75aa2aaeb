// Package metrics expone los contadores Prometheus del motor de trazabilidad.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry agrupa los collectors de la aplicación sobre un registro propio
// (sin los collectors globales por defecto).
type Registry struct {
	reg *prometheus.Registry

	ScansTotal       *prometheus.CounterVec
	ScansUnmatched   prometheus.Counter
	ScanDeriveErrors prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	ReconcileRuns    prometheus.Counter
	ReconcileAdded   prometheus.Counter
}

// NewRegistry construye y registra los collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	scansTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "traza_scans_total",
		Help: "Eventos de escaneo registrados, por tipo.",
	}, []string{"event_type"})
	scansUnmatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_scans_unmatched_total",
		Help: "Escaneos cuyo serial no coincide con ningún producto del catálogo.",
	})
	deriveErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_scan_derive_errors_total",
		Help: "Fallos de derivación posteriores al append del evento (registrados y tragados).",
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_cache_hits_total",
		Help: "Lecturas servidas desde la caché de vistas.",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_cache_misses_total",
		Help: "Lecturas que recomputaron la vista.",
	})
	reconcileRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_reconcile_runs_total",
		Help: "Ejecuciones del reconciliador de existencias.",
	})
	reconcileAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traza_reconcile_records_added_total",
		Help: "Registros de existencias creados por el reconciliador.",
	})

	r.MustRegister(scansTotal, scansUnmatched, deriveErrors, cacheHits, cacheMisses, reconcileRuns, reconcileAdded)
	return &Registry{
		reg:              r,
		ScansTotal:       scansTotal,
		ScansUnmatched:   scansUnmatched,
		ScanDeriveErrors: deriveErrors,
		CacheHits:        cacheHits,
		CacheMisses:      cacheMisses,
		ReconcileRuns:    reconcileRuns,
		ReconcileAdded:   reconcileAdded,
	}
}

// Handler devuelve el handler HTTP de /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Package metrics содержит prometheus-счетчики HTTP-запросов и middleware
// для их сбора.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "geomatch_http_requests_total",
	Help: "Количество обработанных HTTP-запросов.",
}, []string{"method", "path", "code"})

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "geomatch_http_request_duration_seconds",
	Help:    "Длительность обработки HTTP-запросов в секундах.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

// Middleware собирает счетчик запросов и гистограмму длительности
// по методу, пути и коду ответа.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotel_booking_operations_total",
		Help: "Total number of booking and hotel operations by result",
	}, []string{"operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hotel_booking_operation_duration_seconds",
		Help:    "Duration of booking and hotel operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

const resultSuccess = "success"

// observe records one finished operation; result is "success" or the error kind
func observe(operation string, start time.Time, err error) {
	result := resultSuccess
	if err != nil {
		result = KindOf(err).String()
	}
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	operationsTotal.WithLabelValues(operation, result).Inc()
}

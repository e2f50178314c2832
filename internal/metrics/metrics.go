// Package metrics provides constructors for the Prometheus collectors
// exposed by the service. Registration happens in the composition root.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewOrdersCreatedTotal returns a Prometheus counter for the number of orders registered
func NewOrdersCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders registered",
	})
}

// NewOrdersCanceledTotal returns a Prometheus counter for the number of orders soft-canceled
func NewOrdersCanceledTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_canceled_total",
		Help: "Total number of orders soft-canceled",
	})
}

// NewNotificationsEnqueuedTotal returns a Prometheus counter for notifications accepted by the dispatcher
func NewNotificationsEnqueuedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_enqueued_total",
		Help: "Total number of order notifications accepted by the dispatcher",
	})
}

// NewNotificationsPublishedTotal returns a Prometheus counter for notifications delivered to the broker
func NewNotificationsPublishedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_published_total",
		Help: "Total number of order notifications delivered to the broker",
	})
}

// NewNotificationsFailedTotal returns a Prometheus counter for notification publish attempts that failed
func NewNotificationsFailedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Total number of order notification publish attempts that failed",
	})
}

// NewNotificationQueueDepth returns a Prometheus gauge for the dispatcher queue depth
func NewNotificationQueueDepth() prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "notification_queue_depth",
		Help: "Current number of notifications waiting in the dispatcher queue",
	})
}

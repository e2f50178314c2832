package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/jobs"
	"shipping/internal/metrics"
	"shipping/internal/notifications"
)

// CompositionRoot wires the application object graph: storage, use case
// handlers, the notification dispatcher, and metrics.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *notifications.Dispatcher
	registry   *prometheus.Registry

	ordersCreated  prometheus.Counter
	ordersCanceled prometheus.Counter
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher notifications.Publisher,
	logger *slog.Logger,
) CompositionRoot {
	registry := prometheus.NewRegistry()

	dispatcherMetrics := notifications.Metrics{
		Enqueued:   metrics.NewNotificationsEnqueuedTotal(),
		Published:  metrics.NewNotificationsPublishedTotal(),
		Failed:     metrics.NewNotificationsFailedTotal(),
		QueueDepth: metrics.NewNotificationQueueDepth(),
	}
	ordersCreated := metrics.NewOrdersCreatedTotal()
	ordersCanceled := metrics.NewOrdersCanceledTotal()

	registry.MustRegister(
		dispatcherMetrics.Enqueued,
		dispatcherMetrics.Published,
		dispatcherMetrics.Failed,
		dispatcherMetrics.QueueDepth,
		ordersCreated,
		ordersCanceled,
	)

	dispatcher := notifications.NewDispatcher(
		publisher,
		notifications.NewLogMailer(logger),
		configs.NotificationQueueSize,
		dispatcherMetrics,
		logger,
	)

	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher:     dispatcher,
		registry:       registry,
		ordersCreated:  ordersCreated,
		ordersCanceled: ordersCanceled,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.createOrderViewLoader(), c.dispatcher, commands.NewSystemClock())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.createOrderViewLoader(), commands.NewSystemClock())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.createOrderViewLoader(), commands.NewSystemClock())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST adapter, with the create and cancel
// handlers decorated by their outcome counters.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createHandler := c.CreateCreateOrderCommandHandler()
	updateHandler := c.CreateUpdateOrderCommandHandler()
	cancelHandler := c.CreateCancelOrderCommandHandler()
	listHandler := c.CreateListOrdersQueryHandler()
	getHandler := c.CreateGetOrderQueryHandler()

	return httpadapter.NewServer(
		countingCreateOrderHandler{inner: &createHandler, counter: c.ordersCreated},
		&updateHandler,
		countingCancelOrderHandler{inner: &cancelHandler, counter: c.ordersCanceled},
		listHandler,
		getHandler,
	)
}

// CreateJobManager builds the scheduled jobs bound to the dispatcher.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, logger)
}

// MetricsHandler exposes the registry for GET /metrics.
func (c *CompositionRoot) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Close drains the notification dispatcher.
func (c *CompositionRoot) Close() {
	c.dispatcher.Close()
}

func (c *CompositionRoot) createOrderViewLoader() commands.OrderViewLoader {
	handler := queries.NewGetOrderQueryHandler(c.gormDB)
	return FuncOrderViewLoader(func(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error) {
		query, err := queries.NewGetOrderQuery(orderID)
		if err != nil {
			return queries.OrderView{}, err
		}
		return handler.Handle(ctx, query)
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderViewLoader func(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error)

func (f FuncOrderViewLoader) Load(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error) {
	return f(ctx, orderID)
}

type countingCreateOrderHandler struct {
	inner   httpadapter.CreateOrderHandler
	counter prometheus.Counter
}

func (h countingCreateOrderHandler) Handle(
	ctx context.Context,
	cmd commands.CreateOrderCommand,
) (queries.OrderView, error) {
	view, err := h.inner.Handle(ctx, cmd)
	if err == nil {
		h.counter.Inc()
	}
	return view, err
}

type countingCancelOrderHandler struct {
	inner   httpadapter.CancelOrderHandler
	counter prometheus.Counter
}

func (h countingCancelOrderHandler) Handle(
	ctx context.Context,
	cmd commands.CancelOrderCommand,
) (queries.OrderView, error) {
	view, err := h.inner.Handle(ctx, cmd)
	if err == nil {
		h.counter.Inc()
	}
	return view, err
}

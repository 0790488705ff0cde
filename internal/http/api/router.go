package api

import (
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
)

var registerValidationsOnce sync.Once

// NewRouter assembles the HTTP surface: identity extraction, request logging,
// metrics and the booking/item/user routes.
func NewRouter(
	log *slog.Logger,
	bookings BookingService,
	items ItemService,
	users UserService,
	requests *prometheus.CounterVec,
) *gin.Engine {
	registerValidationsOnce.Do(registerValidations)

	router := gin.New()
	router.Use(recovery(log), requestLogger(log), requestMetrics(requests))

	bookingHandler := &bookingHandler{log: log, bookings: bookings}
	itemHandler := &itemHandler{log: log, items: items}
	userHandler := &userHandler{log: log, users: users}

	bookingRoutes := router.Group("/bookings", identity())
	{
		bookingRoutes.POST("", bookingHandler.create)
		bookingRoutes.PATCH("/:bookingId", bookingHandler.setStatus)
		bookingRoutes.GET("/:bookingId", bookingHandler.retrieve)
		bookingRoutes.GET("", bookingHandler.listByBooker)
		bookingRoutes.GET("/owner", bookingHandler.listByOwner)
	}

	itemRoutes := router.Group("/items", identity())
	{
		itemRoutes.POST("", itemHandler.create)
		itemRoutes.PATCH("/:itemId", itemHandler.update)
		itemRoutes.GET("/:itemId", itemHandler.retrieve)
		itemRoutes.GET("", itemHandler.listByOwner)
		itemRoutes.GET("/search", itemHandler.search)
		itemRoutes.POST("/:itemId/comment", itemHandler.postComment)
	}

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", userHandler.create)
		userRoutes.GET("/:userId", userHandler.retrieve)
		userRoutes.GET("", userHandler.list)
		userRoutes.PATCH("/:userId", userHandler.update)
		userRoutes.DELETE("/:userId", userHandler.delete)
	}

	return router
}

// registerValidations adds the struct-level rule that a booking window must
// be a non-empty half-open interval.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(func(sl validator.StructLevel) {
			req := sl.Current().Interface().(newBookingRequest)
			if !req.Start.Before(req.End) {
				sl.ReportError(req.End, "End", "end", "gtfield", "Start")
			}
		}, newBookingRequest{})
	}
}

package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ishop4u/internal/cart"
	"github.com/vasiliy-maslov/ishop4u/internal/catalog"
	"github.com/vasiliy-maslov/ishop4u/internal/checkout"
	"github.com/vasiliy-maslov/ishop4u/internal/handler"
	"github.com/vasiliy-maslov/ishop4u/internal/product"
	"github.com/vasiliy-maslov/ishop4u/internal/report"
)

// NewRouter wires repositories, services and handlers onto one chi mux.
func NewRouter(pool *pgxpool.Pool, gateway catalog.Gateway) *chi.Mux {
	productRepo := product.NewRepository(pool)
	productSvc := product.NewService(gateway, productRepo)
	productHandler := handler.NewProductHandler(productSvc)

	cartRepo := cart.NewRepository(pool)
	cartSvc := cart.NewService(cartRepo)
	cartHandler := handler.NewCartHandler(cartSvc)

	checkoutRepo := checkout.NewRepository(pool)
	checkoutSvc := checkout.NewService(checkoutRepo)
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc)

	reportRepo := report.NewRepository(pool)
	reportSvc := report.NewService(reportRepo, productRepo, report.StaticSeries{})
	reportHandler := handler.NewReportHandler(reportSvc)

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.GetProducts)
		r.Get("/top_products", productHandler.GetTopProducts)

		r.Get("/shipment_summary", reportHandler.GetShipmentSummary)
		r.Get("/category_distribution", reportHandler.GetCategoryDistribution)
		r.Get("/delivery_comparison", reportHandler.GetDeliveryComparison)
		r.Get("/sales_performance", reportHandler.GetSalesPerformance)

		r.Post("/cart", cartHandler.AddToCart)
		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart/clear", cartHandler.ClearCart)
		r.Put("/cart/{item_id}", cartHandler.UpdateCartItem)
		r.Delete("/cart/{item_id}", cartHandler.DeleteCartItem)

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/orders", checkoutHandler.GetOrders)
		r.Get("/orders/{order_id}", checkoutHandler.GetOrderByID)
	})

	return r
}

// requestLogger tags every request with a generated id for log correlation.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ""
		if id, err := uuid.NewV4(); err == nil {
			requestID = id.String()
		}

		log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Incoming request")

		next.ServeHTTP(w, r)
	})
}

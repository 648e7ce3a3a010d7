package http

import (
	"net/http"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront API. Order and cart routes are POST with
// JSON bodies, matching the storefront client.
func NewRouter(
	verifier auth.Verifier,
	orders *OrderHandler,
	cart *CartHandler,
	products *ProductHandler,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/product/list", products.List)

		r.Route("/order", func(r chi.Router) {
			r.Use(AuthMiddleware(verifier))

			r.Post("/place", orders.PlaceOrder)
			r.Post("/userorders", orders.UserOrders)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Post("/list", orders.ListAll)
				r.Post("/status", orders.UpdateStatus)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(AuthMiddleware(verifier))

			r.Post("/get", cart.GetCart)
			r.Post("/add", cart.AddItem)
			r.Post("/update", cart.UpdateQuantity)
			r.Post("/remove", cart.RemoveItem)
			r.Post("/total", cart.Totals)
		})
	})

	return r
}

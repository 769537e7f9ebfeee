package handler

import (
	"net/http"

	custommiddleware "github.com/amstore/amstore-system/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса AM Store.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.GetProducts)
		r.Get("/categories", h.GetCategories)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.StartCheckout)
			r.Get("/{token}", h.GetCheckout)
			r.Post("/{token}/proceed", h.ProceedCheckout)
			r.Post("/{token}/submit", h.SubmitCheckout)
			r.Delete("/{token}", h.CloseCheckout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.AdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(h.adminAuth.Middleware)

				r.Get("/stats", h.GetStats)

				r.Post("/products", h.CreateProduct)
				r.Put("/products/{id}", h.UpdateProduct)
				r.Delete("/products/{id}", h.DeleteProduct)

				r.Get("/orders", h.GetOrders)
				r.Patch("/orders/{id}", h.UpdateOrderStatus)
				r.Delete("/orders/{id}", h.DeleteOrder)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}

func pathToken(r *http.Request) string {
	return chi.URLParam(r, "token")
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

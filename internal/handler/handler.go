// Package handler содержит HTTP-обработчики API сервиса AM Store.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/amstore/amstore-system/internal/checkout"
	"github.com/amstore/amstore-system/internal/middleware"
	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/service"
	"github.com/amstore/amstore-system/internal/store"
	"github.com/amstore/amstore-system/internal/validation"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	ListProducts(filterCategory string, order store.SortOrder) []model.Product
	Categories() []string
	AddProduct(ctx context.Context, p model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	Orders() []model.Order
	SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
	Stats() model.Stats
	CheckAdminPassword(password string) bool
	StartCheckout(productID string) (string, *checkout.Session, error)
	CheckoutSession(token string) (*checkout.Session, error)
	SubmitCheckout(ctx context.Context, token string, form checkout.Form) (model.Order, error)
	CloseCheckout(token string)
}

// Handler реализует HTTP-обработчики API сервиса AM Store.
type Handler struct {
	service   Service
	logger    *zap.Logger
	adminAuth *middleware.AdminAuth
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, adminAuth *middleware.AdminAuth) *Handler {
	return &Handler{
		service:   s,
		logger:    logger,
		adminAuth: adminAuth,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GetProducts возвращает каталог с учётом фильтра категории и сортировки.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = store.CategoryAll
	}

	order := store.SortOrder(r.URL.Query().Get("sort"))
	if order == "" {
		order = store.SortDefault
	}
	if !order.Valid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.service.ListProducts(category, order))
}

// GetCategories возвращает список категорий каталога.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

type startCheckoutRequest struct {
	ProductID string `json:"productId"`
}

type checkoutResponse struct {
	Token    string        `json:"token,omitempty"`
	Step     checkout.Step `json:"step"`
	Product  model.Product `json:"product"`
	Wilaya   string        `json:"wilaya"`
	Shipping int64         `json:"shipping"`
	Total    int64         `json:"total"`
}

func checkoutView(token string, session *checkout.Session, wilaya string) checkoutResponse {
	shipping, total := session.Quote(wilaya)
	return checkoutResponse{
		Token:    token,
		Step:     session.Step(),
		Product:  session.Product(),
		Wilaya:   wilaya,
		Shipping: shipping,
		Total:    total,
	}
}

// StartCheckout начинает оформление заказа для указанного товара.
func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req startCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	token, session, err := h.service.StartCheckout(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("start checkout error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, checkoutView(token, session, r.URL.Query().Get("wilaya")))
}

// GetCheckout возвращает состояние сессии оформления. Параметр wilaya
// позволяет пересчитать доставку и итог для выбранной вилайи.
func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	token := pathToken(r)

	session, err := h.service.CheckoutSession(token)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, checkoutView(token, session, r.URL.Query().Get("wilaya")))
}

// ProceedCheckout переводит сессию с показа товара на форму покупателя.
func (h *Handler) ProceedCheckout(w http.ResponseWriter, r *http.Request) {
	token := pathToken(r)

	session, err := h.service.CheckoutSession(token)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := session.Proceed(); err != nil {
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, checkoutView(token, session, r.URL.Query().Get("wilaya")))
}

// SubmitCheckout принимает форму покупателя и оформляет заказ.
func (h *Handler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	token := pathToken(r)

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if form.CustomerName == "" || form.Phone == "" || form.Baladiya == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	// Телефон — свободный текст: непривычный формат оформлению не мешает,
	// но отмечается в журнале, чтобы администратор перепроверил номер.
	if !validation.IsValidPhone(form.Phone) {
		h.logger.Warn("unrecognized phone format", zap.String("token", token))
	}

	order, err := h.service.SubmitCheckout(r.Context(), token, form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, checkout.ErrSessionClosed):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrSubmitInProgress):
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
		case errors.Is(err, checkout.ErrDispatchFailed):
			// Повторная отправка разрешена, заказ не создан.
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		default:
			h.logger.Error("submit checkout error", zap.Error(err), zap.String("token", token))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// CloseCheckout завершает сессию оформления.
func (h *Handler) CloseCheckout(w http.ResponseWriter, r *http.Request) {
	h.service.CloseCheckout(pathToken(r))
	w.WriteHeader(http.StatusNoContent)
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin проверяет парольную фразу и выдаёт cookie администратора.
// Число попыток не ограничивается.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !h.service.CheckAdminPassword(req.Password) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	h.adminAuth.SetAuthCookie(w)
	w.WriteHeader(http.StatusOK)
}

// GetStats возвращает агрегированные показатели магазина.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

type productRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

func (p productRequest) valid() bool {
	return p.Name != "" && p.Price >= 0 && p.Category != ""
}

// CreateProduct добавляет товар в каталог.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !req.valid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	product, err := h.service.AddProduct(r.Context(), model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Color:       req.Color,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		h.logger.Error("create product error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct полностью заменяет товар с указанным идентификатором.
// Неизвестный идентификатор молча игнорируется.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !req.valid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := h.service.UpdateProduct(r.Context(), model.Product{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Color:       req.Color,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil && !errors.Is(err, store.ErrProductNotFound) {
		h.logger.Error("update product error", zap.Error(err), zap.String("product", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct удаляет товар. Операция идемпотентна.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("delete product error", zap.Error(err), zap.String("product", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOrders возвращает заказы от новых к старым.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.service.Orders()
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateOrderStatus изменяет статус заказа. Неизвестный идентификатор
// молча игнорируется.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if !req.Status.Valid() {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.SetOrderStatus(r.Context(), id, req.Status); err != nil {
		h.logger.Error("update order status error", zap.Error(err), zap.String("order", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder удаляет заказ. Операция идемпотентна.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.logger.Error("delete order error", zap.Error(err), zap.String("order", id))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

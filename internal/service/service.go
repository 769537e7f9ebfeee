// Package service реализует бизнес-логику сервиса AM Store.
package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"

	"github.com/amstore/amstore-system/internal/checkout"
	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/notify"
	"github.com/amstore/amstore-system/internal/store"
)

var (
	// ErrProductNotFound возвращается при оформлении несуществующего товара.
	ErrProductNotFound = errors.New("product not found")
	// ErrSessionNotFound возвращается для неизвестного токена оформления.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// Service содержит бизнес-логику магазина: каталог, заказы, оформление
// и доступ администратора.
type Service struct {
	catalog    *store.Catalog
	orders     *store.Orders
	dispatcher notify.Dispatcher

	adminPassword string

	mu       sync.Mutex
	sessions map[string]*checkout.Session
}

// NewService создаёт новый сервис поверх хранилищ и диспетчера уведомлений.
func NewService(catalog *store.Catalog, orders *store.Orders, dispatcher notify.Dispatcher, adminPassword string) *Service {
	return &Service{
		catalog:       catalog,
		orders:        orders,
		dispatcher:    dispatcher,
		adminPassword: adminPassword,
		sessions:      make(map[string]*checkout.Session),
	}
}

// ListProducts возвращает представление каталога с фильтром и сортировкой.
func (s *Service) ListProducts(filterCategory string, order store.SortOrder) []model.Product {
	return s.catalog.List(filterCategory, order)
}

// Categories возвращает категории каталога с сентинелом «все» в начале.
func (s *Service) Categories() []string {
	return s.catalog.Categories()
}

// AddProduct добавляет товар в каталог.
func (s *Service) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	return s.catalog.Add(ctx, p)
}

// UpdateProduct заменяет товар с совпадающим идентификатором.
func (s *Service) UpdateProduct(ctx context.Context, p model.Product) error {
	return s.catalog.Update(ctx, p)
}

// DeleteProduct удаляет товар из каталога. Удаление отсутствующего
// товара не является ошибкой. Снимки названий в существующих заказах
// при этом не меняются.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.catalog.Remove(ctx, id)
}

// Orders возвращает заказы от новых к старым для панели администратора.
func (s *Service) Orders() []model.Order {
	return s.orders.ListNewestFirst()
}

// SetOrderStatus изменяет статус заказа. Неизвестный идентификатор
// молча игнорируется.
func (s *Service) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.orders.SetStatus(ctx, id, status)
}

// DeleteOrder удаляет заказ. Удаление отсутствующего заказа не является ошибкой.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Remove(ctx, id)
}

// Stats возвращает агрегированные показатели магазина. StockCount —
// число товарных позиций каталога, не единиц на складе.
func (s *Service) Stats() model.Stats {
	totalSales, totalOrders, pendingOrders := s.orders.Stats()
	return model.Stats{
		TotalSales:    totalSales,
		TotalOrders:   totalOrders,
		PendingOrders: pendingOrders,
		StockCount:    s.catalog.Count(),
	}
}

// CheckAdminPassword сравнивает введённую парольную фразу с настроенной.
// Пустая настроенная фраза закрывает доступ администратора полностью.
func (s *Service) CheckAdminPassword(password string) bool {
	if s.adminPassword == "" {
		return false
	}
	return hmac.Equal([]byte(password), []byte(s.adminPassword))
}

// StartCheckout начинает оформление указанного товара и возвращает
// токен сессии.
func (s *Service) StartCheckout(productID string) (string, *checkout.Session, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return "", nil, ErrProductNotFound
	}

	token, err := newToken()
	if err != nil {
		return "", nil, err
	}

	session := checkout.NewSession(product, s.orders, s.dispatcher)

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return token, session, nil
}

// CheckoutSession возвращает сессию оформления по токену.
func (s *Service) CheckoutSession(token string) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SubmitCheckout отправляет форму покупателя в рамках сессии оформления.
func (s *Service) SubmitCheckout(ctx context.Context, token string, form checkout.Form) (model.Order, error) {
	session, err := s.CheckoutSession(token)
	if err != nil {
		return model.Order{}, err
	}
	return session.Submit(ctx, form)
}

// CloseCheckout завершает сессию оформления и забывает её токен.
func (s *Service) CloseCheckout(token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		session.Close()
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

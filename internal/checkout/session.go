// Package checkout реализует пошаговый сценарий оформления заказа.
package checkout

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/notify"
	"github.com/amstore/amstore-system/internal/pricing"
)

// Step описывает шаг сценария оформления заказа.
type Step string

const (
	StepDetails Step = "details"
	StepForm    Step = "form"
	StepSuccess Step = "success"
)

var (
	// ErrDispatchFailed возвращается, когда ни один получатель не
	// подтвердил уведомление; заказ при этом не создаётся.
	ErrDispatchFailed = errors.New("order notification failed")
	// ErrSubmitInProgress возвращается при повторной отправке формы,
	// пока не завершилась предыдущая.
	ErrSubmitInProgress = errors.New("submit already in progress")
	// ErrWrongStep возвращается при действии, недопустимом на текущем шаге.
	ErrWrongStep = errors.New("action not allowed at current step")
	// ErrSessionClosed возвращается после закрытия сессии.
	ErrSessionClosed = errors.New("checkout session closed")
)

// OrderSink принимает готовый заказ после успешной рассылки уведомления.
// Окончательный идентификатор назначает приёмник атомарно с добавлением;
// идентификатор в переданном заказе служит лишь отправной точкой.
type OrderSink interface {
	Append(ctx context.Context, order model.Order) (model.Order, error)
}

// Form содержит данные покупателя, собранные на шаге form.
type Form struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Wilaya       string `json:"wilaya"`
	Baladiya     string `json:"baladiya"`
}

// Session ведёт одно оформление заказа по шагам details → form → success.
// Сессия не переживает процесс и не возобновляется.
type Session struct {
	mu         sync.Mutex
	step       Step
	closed     bool
	submitting bool

	product    model.Product
	orders     OrderSink
	dispatcher notify.Dispatcher
	now        func() time.Time
}

// NewSession начинает оформление указанного товара. Цена и название
// товара фиксируются в момент создания сессии.
func NewSession(product model.Product, orders OrderSink, dispatcher notify.Dispatcher) *Session {
	return &Session{
		step:       StepDetails,
		product:    product,
		orders:     orders,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Step возвращает текущий шаг сценария.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Product возвращает оформляемый товар.
func (s *Session) Product() model.Product {
	return s.product
}

// Quote возвращает стоимость доставки и итоговую сумму для вилайи.
// Пустая вилайя трактуется как вилайя по умолчанию.
func (s *Session) Quote(wilaya string) (shipping, total int64) {
	if wilaya == "" {
		wilaya = pricing.DefaultWilaya
	}
	shipping = pricing.CostFor(wilaya)
	return shipping, s.product.Price + shipping
}

// Proceed переводит сессию с шага details на шаг form.
func (s *Session) Proceed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if s.step != StepDetails {
		return ErrWrongStep
	}

	s.step = StepForm
	return nil
}

// Submit формирует заказ по данным формы, рассылает уведомление и при
// успехе фиксирует заказ. При неудаче рассылки заказ не создаётся,
// сессия остаётся на шаге form и отправку можно повторить. Повторная
// отправка во время незавершённой блокируется.
func (s *Session) Submit(ctx context.Context, form Form) (model.Order, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.Order{}, ErrSessionClosed
	}
	if s.step != StepForm {
		s.mu.Unlock()
		return model.Order{}, ErrWrongStep
	}
	if s.submitting {
		s.mu.Unlock()
		return model.Order{}, ErrSubmitInProgress
	}
	s.submitting = true
	order := s.buildOrder(form)
	s.mu.Unlock()

	ok := s.dispatcher.Dispatch(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	// Пока шла рассылка, сессию могли закрыть: результат отбрасывается
	// и заказ не фиксируется.
	if s.closed {
		return model.Order{}, ErrSessionClosed
	}

	if !ok {
		return model.Order{}, ErrDispatchFailed
	}

	committed, err := s.orders.Append(ctx, order)
	if err != nil {
		return model.Order{}, err
	}

	s.step = StepSuccess
	return committed, nil
}

// buildOrder вызывается с удержанной блокировкой.
func (s *Session) buildOrder(form Form) model.Order {
	wilaya := form.Wilaya
	if wilaya == "" {
		wilaya = pricing.DefaultWilaya
	}

	return model.Order{
		ID:           strconv.FormatInt(s.now().UnixMilli(), 10),
		CustomerName: form.CustomerName,
		Phone:        form.Phone,
		Wilaya:       wilaya,
		Baladiya:     form.Baladiya,
		ProductName:  s.product.Name,
		TotalPrice:   s.product.Price + pricing.CostFor(wilaya),
		Date:         s.now().Format("02/01/2006"),
		Status:       model.OrderStatusPending,
	}
}

// Close завершает сессию. Частично заполненные данные отбрасываются,
// заказ не создаётся. Закрытие на шаге success побочных эффектов не имеет.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/storage"
)

// Orders владеет коллекцией заказов магазина в порядке их оформления.
type Orders struct {
	mu     sync.RWMutex
	kv     storage.KV
	orders []model.Order
}

// NewOrders создаёт хранилище заказов и наполняет его из внешнего хранилища.
func NewOrders(ctx context.Context, kv storage.KV) (*Orders, error) {
	o := &Orders{kv: kv}

	data, err := kv.Get(ctx, storage.KeyOrders)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load orders: %w", err)
		}
		return o, nil
	}

	if err := json.Unmarshal(data, &o.orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	return o, nil
}

// persist вызывается с удержанной блокировкой записи.
func (o *Orders) persist(ctx context.Context) error {
	data, err := json.Marshal(o.orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := o.kv.Set(ctx, storage.KeyOrders, data); err != nil {
		return fmt.Errorf("persist orders: %w", err)
	}
	return nil
}

// Append добавляет заказ в конец коллекции и возвращает его в
// зафиксированном виде. Окончательный идентификатор назначается здесь,
// под блокировкой записи: предложенный вызывающим идентификатор
// сохраняется, если свободен, иначе увеличивается до ближайшего
// свободного. Этим исключается выдача одного идентификатора двум
// параллельным оформлениям.
func (o *Orders) Append(ctx context.Context, order model.Order) (model.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order.ID = o.uniqueID(order.ID)
	o.orders = append(o.orders, order)
	if err := o.persist(ctx); err != nil {
		o.orders = o.orders[:len(o.orders)-1]
		return model.Order{}, err
	}

	return order, nil
}

// uniqueID подбирает свободный идентификатор, начиная с предложенного.
// Вызывается с удержанной блокировкой записи.
func (o *Orders) uniqueID(proposed string) string {
	if proposed != "" && !o.hasID(proposed) {
		return proposed
	}

	n, err := strconv.ParseInt(proposed, 10, 64)
	if err != nil {
		n = time.Now().UnixMilli()
	}
	for o.hasID(strconv.FormatInt(n, 10)) {
		n++
	}
	return strconv.FormatInt(n, 10)
}

func (o *Orders) hasID(id string) bool {
	for _, ord := range o.orders {
		if ord.ID == id {
			return true
		}
	}
	return false
}

// HasID сообщает, занят ли идентификатор существующим заказом.
func (o *Orders) HasID(id string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.hasID(id)
}

// SetStatus изменяет статус заказа с указанным идентификатором.
// Для неизвестного идентификатора ничего не происходит.
func (o *Orders) SetStatus(ctx context.Context, id string, status model.OrderStatus) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.orders {
		if o.orders[i].ID == id {
			prev := o.orders[i].Status
			o.orders[i].Status = status
			if err := o.persist(ctx); err != nil {
				o.orders[i].Status = prev
				return err
			}
			return nil
		}
	}

	return nil
}

// Remove удаляет заказ с указанным идентификатором. Повторное удаление
// отсутствующего заказа не является ошибкой.
func (o *Orders) Remove(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.orders {
		if o.orders[i].ID == id {
			prev := o.orders
			o.orders = append(o.orders[:i:i], o.orders[i+1:]...)
			if err := o.persist(ctx); err != nil {
				o.orders = prev
				return err
			}
			return nil
		}
	}

	return nil
}

// List возвращает все заказы в порядке их добавления.
func (o *Orders) List() []model.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	res := make([]model.Order, len(o.orders))
	copy(res, o.orders)
	return res
}

// ListNewestFirst возвращает заказы от новых к старым. Порядок хранения
// при этом не меняется, обратный порядок — свойство представления.
func (o *Orders) ListNewestFirst() []model.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	res := make([]model.Order, 0, len(o.orders))
	for i := len(o.orders) - 1; i >= 0; i-- {
		res = append(res, o.orders[i])
	}
	return res
}

// Stats возвращает агрегированные показатели по заказам. Сумма продаж
// учитывает только подтверждённые и отправленные заказы.
func (o *Orders) Stats() (totalSales int64, totalOrders, pendingOrders int) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, ord := range o.orders {
		if ord.Status == model.OrderStatusConfirmed || ord.Status == model.OrderStatusShipped {
			totalSales += ord.TotalPrice
		}
		if ord.Status == model.OrderStatusPending {
			pendingOrders++
		}
	}

	return totalSales, len(o.orders), pendingOrders
}

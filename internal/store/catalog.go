// Package store содержит хранилища каталога и заказов магазина.
//
// Каждое хранилище владеет своей коллекцией в памяти и при каждой
// мутации синхронно записывает её целиком во внешнее key-value
// хранилище (сквозная запись).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/amstore/amstore-system/internal/model"
	"github.com/amstore/amstore-system/internal/storage"
)

// ErrProductNotFound возвращается при обновлении несуществующего товара.
var ErrProductNotFound = errors.New("product not found")

// CategoryAll — сентинел фильтра, означающий «все категории».
const CategoryAll = "all"

// SortOrder задаёт порядок выдачи каталога.
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Valid сообщает, поддерживается ли порядок сортировки.
func (s SortOrder) Valid() bool {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// Catalog владеет коллекцией товаров магазина.
type Catalog struct {
	mu       sync.RWMutex
	kv       storage.KV
	products []model.Product
}

// NewCatalog создаёт каталог и наполняет его из внешнего хранилища.
// Если в хранилище ещё ничего нет, каталог начинается с переданного
// начального набора товаров.
func NewCatalog(ctx context.Context, kv storage.KV, initial []model.Product) (*Catalog, error) {
	c := &Catalog{kv: kv}

	data, err := kv.Get(ctx, storage.KeyProducts)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load products: %w", err)
		}
		c.products = append(c.products, initial...)
		if err := c.persist(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := json.Unmarshal(data, &c.products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return c, nil
}

// persist вызывается с удержанной блокировкой записи.
func (c *Catalog) persist(ctx context.Context) error {
	data, err := json.Marshal(c.products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := c.kv.Set(ctx, storage.KeyProducts, data); err != nil {
		return fmt.Errorf("persist products: %w", err)
	}
	return nil
}

// nextID выдаёт свежий идентификатор на основе текущего времени в
// миллисекундах. При совпадении с уже занятым значение увеличивается,
// поэтому уникальность гарантирована, а не только вероятна.
func (c *Catalog) nextID() string {
	id := time.Now().UnixMilli()
	for c.hasID(strconv.FormatInt(id, 10)) {
		id++
	}
	return strconv.FormatInt(id, 10)
}

func (c *Catalog) hasID(id string) bool {
	for _, p := range c.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Add добавляет товар, присваивая ему свежий идентификатор.
// Если изображение не задано, подставляется заглушка.
func (c *Catalog) Add(ctx context.Context, p model.Product) (model.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.ID = c.nextID()
	if p.Image == "" {
		p.Image = "https://picsum.photos/600/600?watch=" + p.ID
	}

	c.products = append(c.products, p)
	if err := c.persist(ctx); err != nil {
		c.products = c.products[:len(c.products)-1]
		return model.Product{}, err
	}

	return p, nil
}

// Update полностью заменяет товар с совпадающим идентификатором.
// Для неизвестного идентификатора возвращается ErrProductNotFound.
func (c *Catalog) Update(ctx context.Context, p model.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == p.ID {
			prev := c.products[i]
			c.products[i] = p
			if err := c.persist(ctx); err != nil {
				c.products[i] = prev
				return err
			}
			return nil
		}
	}

	return ErrProductNotFound
}

// Remove удаляет товар с указанным идентификатором. Повторное удаление
// отсутствующего товара не является ошибкой.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.products {
		if c.products[i].ID == id {
			prev := c.products
			c.products = append(c.products[:i:i], c.products[i+1:]...)
			if err := c.persist(ctx); err != nil {
				c.products = prev
				return err
			}
			return nil
		}
	}

	return nil
}

// Get возвращает товар по идентификатору.
func (c *Catalog) Get(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// List возвращает производное представление каталога: фильтр по точному
// совпадению категории (сентинел CategoryAll возвращает всё) и
// устойчивую сортировку по цене. Исходная коллекция не изменяется.
func (c *Catalog) List(filterCategory string, order SortOrder) []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if filterCategory == CategoryAll || filterCategory == "" || p.Category == filterCategory {
			res = append(res, p)
		}
	}

	switch order {
	case SortPriceAsc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].Price < res[j].Price })
	case SortPriceDesc:
		sort.SliceStable(res, func(i, j int) bool { return res[i].Price > res[j].Price })
	}

	return res
}

// Categories возвращает различимые категории каталога в порядке первого
// появления, с сентинелом CategoryAll в начале.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := []string{CategoryAll}
	seen := make(map[string]struct{}, len(c.products))
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		res = append(res, p.Category)
	}

	return res
}

// Count возвращает число товаров в каталоге.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.products)
}

package cart

import (
	"sync"

	"github.com/sumafit/medstore/internal/ident"
)

// Item is one line in the cart: a display snapshot of the product taken at
// add time plus a quantity. Catalog changes after adding never alter a line.
type Item struct {
	ID       ident.ID `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Image    string   `json:"image"`
	Quantity uint     `json:"quantity"`
}

// Product is the subset of catalog fields the cart snapshots.
type Product struct {
	ID    any
	Name  string
	Price int64
	Image string
}

// Store persists cart state across restarts.
type Store interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

// Cart holds the client-side shopping cart. It never talks to the server;
// the whole cart is submitted once at checkout and cleared afterwards.
type Cart struct {
	mu    sync.Mutex
	items []Item
	store Store
}

// New builds a cart, restoring persisted state when a store is given.
func New(store Store) (*Cart, error) {
	c := &Cart{store: store}
	if store != nil {
		items, err := store.Load()
		if err != nil {
			return nil, err
		}
		c.items = items
	}
	return c, nil
}

func (c *Cart) persist() {
	if c.store != nil {
		_ = c.store.Save(c.items)
	}
}

func (c *Cart) find(id ident.ID) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// AddItem merges into an existing line when the product is already in the
// cart, otherwise appends a new line with quantity 1. Ids compare as
// strings, so a numeric id and its string form hit the same line.
func (c *Cart) AddItem(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ident.Normalize(p.ID)
	if i := c.find(id); i >= 0 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, Item{
			ID:       id,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Quantity: 1,
		})
	}
	c.persist()
}

// RemoveItem drops the matching line. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := ident.Normalize(productID)
	if i := c.find(id); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		c.persist()
	}
}

// UpdateQuantity sets the line's quantity. Quantities below 1 are rejected
// and leave the cart unchanged; lowering to zero is not a remove.
func (c *Cart) UpdateQuantity(productID any, quantity uint) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(ident.Normalize(productID)); i >= 0 {
		c.items[i].Quantity = quantity
		c.persist()
	}
}

// Total is recomputed from the lines on every call; there is no cached
// total to go stale.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, item := range c.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the cart. Called after a successful checkout submission; a
// failed checkout leaves the cart intact for retry.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

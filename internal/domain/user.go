package domain

import "time"

// Role distinguishes regular shoppers from the back-office administrator.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CartData maps product ID to size label to quantity. Quantities are always
// positive: a size whose quantity reaches zero is removed, and an item with
// no sizes left is removed with it.
type CartData map[string]map[string]int

// User is a registered shopper. The cart is embedded 1:1 and mutated only
// through the cart service.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Cart         CartData  `json:"cartData"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Increment bumps the quantity at (itemID, size) by one, creating nested
// entries as needed. It returns the map so callers can use it on a nil cart.
func (c CartData) Increment(itemID, size string) CartData {
	if c == nil {
		c = CartData{}
	}
	sizes, ok := c[itemID]
	if !ok {
		sizes = map[string]int{}
		c[itemID] = sizes
	}
	sizes[size]++
	return c
}

// Set overwrites the quantity at (itemID, size), creating the entry when
// absent. A quantity of zero removes the entry and prunes the item when no
// sizes remain.
func (c CartData) Set(itemID, size string, quantity int) CartData {
	if c == nil {
		c = CartData{}
	}
	if quantity == 0 {
		if sizes, ok := c[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(c, itemID)
			}
		}
		return c
	}
	sizes, ok := c[itemID]
	if !ok {
		sizes = map[string]int{}
		c[itemID] = sizes
	}
	sizes[size] = quantity
	return c
}

// Quantity reports the stored quantity at (itemID, size), zero when absent.
func (c CartData) Quantity(itemID, size string) int {
	if sizes, ok := c[itemID]; ok {
		return sizes[size]
	}
	return 0
}

package domain

import "github.com/shopspring/decimal"

// SizePrice pairs a pizza size name with its base price.
type SizePrice struct {
	Name string
	Base decimal.Decimal
}

// Menu holds the size price table, the topping whitelist and the per-topping
// surcharge. It is passed into the engine explicitly rather than read from a
// package variable, so tests and alternate shops can run different menus.
type Menu struct {
	Sizes        []SizePrice // menu display order
	Toppings     []string    // allowed topping names, menu display order
	ToppingPrice decimal.Decimal
}

// DefaultMenu returns the stock menu: three sizes, eight toppings, 1.50 per
// topping.
func DefaultMenu() Menu {
	return Menu{
		Sizes: []SizePrice{
			{Name: "small", Base: decimal.NewFromFloat(10.99)},
			{Name: "medium", Base: decimal.NewFromFloat(14.99)},
			{Name: "large", Base: decimal.NewFromFloat(18.99)},
		},
		Toppings: []string{
			"cheese", "pepperoni", "mushrooms", "onions",
			"sausage", "bacon", "green_peppers", "olives",
		},
		ToppingPrice: decimal.NewFromFloat(1.50),
	}
}

// BasePrice returns the base price for a size name. The second result is
// false when the size is not on the menu.
func (m Menu) BasePrice(size string) (decimal.Decimal, bool) {
	for _, s := range m.Sizes {
		if s.Name == size {
			return s.Base, true
		}
	}
	return decimal.Decimal{}, false
}

// SizeNames returns the size names in menu order.
func (m Menu) SizeNames() []string {
	names := make([]string, len(m.Sizes))
	for i, s := range m.Sizes {
		names[i] = s.Name
	}
	return names
}

// HasTopping reports whether name is on the topping whitelist.
func (m Menu) HasTopping(name string) bool {
	for _, t := range m.Toppings {
		if t == name {
			return true
		}
	}
	return false
}

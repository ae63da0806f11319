package domain

import "fmt"

// CartLine is a cart item joined with its catalog entry.
type CartLine struct {
	ProductID int64
	Kind      ProductKind
	Name      string
	UnitPrice int64
	Quantity  int
	Stock     int
	Active    bool
}

func (l CartLine) Total() int64 { return l.UnitPrice * int64(l.Quantity) }

type Cart struct {
	UserID int64
	Lines  []CartLine
}

func (c Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Total()
	}
	return total
}

// MaxCartLines bounds the number of distinct products in one cart.
const MaxCartLines = 100

// CanAddToCart checks that adding qty of productID keeps the line within
// MaxQuantity and the cart within MaxCartLines.
func CanAddToCart(lines []CartLine, productID int64, qty int) error {
	for _, l := range lines {
		if l.ProductID == productID {
			if qty > MaxQuantity-l.Quantity {
				return fmt.Errorf("%w: %s would exceed %d", ErrInvalidQuantity, l.Name, MaxQuantity)
			}
			return nil
		}
	}
	if len(lines) >= MaxCartLines {
		return fmt.Errorf("%w: cart holds at most %d products", ErrInvalidQuantity, MaxCartLines)
	}
	return nil
}

// ValidateCheckout checks that every line can be sold at the requested quantity.
func ValidateCheckout(lines []CartLine) error {
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	for _, l := range lines {
		if !l.Active {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, l.Name)
		}
		if l.Kind == KindProduct && l.Stock < l.Quantity {
			return fmt.Errorf("%w: %s (have %d, want %d)", ErrInsufficientStock, l.Name, l.Stock, l.Quantity)
		}
	}
	return CheckItems(OrderItems(lines))
}

// OrderItems converts cart lines into order items at their current price.
func OrderItems(lines []CartLine) []OrderItem {
	items := make([]OrderItem, len(lines))
	for i, l := range lines {
		items[i] = OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return items
}

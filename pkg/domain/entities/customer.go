package entities

import "fmt"

// OrderLine is one requested medicine and its quantity
type OrderLine struct {
	Medicine Medicine
	Quantity Quantity
}

// Customer represents a pharmacy customer. A customer with a non-empty
// RegularItems template is a regular customer who orders every Regularity days.
type Customer struct {
	Name         string
	Phone        string
	Address      string
	DiscountCard bool
	RegularItems []OrderLine
	Regularity   int
}

// NewCustomer creates a validated Customer
func NewCustomer(name, phone, address string, discountCard bool, regularItems []OrderLine, regularity int) (*Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: customer name cannot be empty", ErrConfiguration)
	}
	if len(regularItems) > 0 && regularity <= 0 {
		return nil, fmt.Errorf("%w: regularity must be positive, got %d", ErrConfiguration, regularity)
	}
	for _, line := range regularItems {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: regular quantity of %s must be positive, got %d",
				ErrConfiguration, line.Medicine.Name, line.Quantity)
		}
	}

	items := make([]OrderLine, len(regularItems))
	copy(items, regularItems)

	return &Customer{
		Name:         name,
		Phone:        phone,
		Address:      address,
		DiscountCard: discountCard,
		RegularItems: items,
		Regularity:   regularity,
	}, nil
}

// IsRegular reports whether the customer has a regular order template
func (c *Customer) IsRegular() bool {
	return len(c.RegularItems) > 0
}

// IsDue reports whether a regular order falls on the given day
func (c *Customer) IsDue(day int) (bool, error) {
	if !c.IsRegular() {
		return false, nil
	}
	if c.Regularity <= 0 {
		return false, fmt.Errorf("%w: customer %s has regularity %d", ErrConfiguration, c.Name, c.Regularity)
	}
	return day%c.Regularity == 0, nil
}

package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity represents an integer count of medicine units
type Quantity int64

// MedicineType represents the dosage form of a medicine
type MedicineType int

const (
	Drops MedicineType = iota
	Spray
	Ointment
	Tablets
)

// String method for MedicineType enum
func (t MedicineType) String() string {
	switch t {
	case Drops:
		return "Капли"
	case Spray:
		return "Спрей"
	case Ointment:
		return "Мазь"
	case Tablets:
		return "Таблетки"
	default:
		return "Unknown"
	}
}

// ParseMedicineType accepts both the catalog labels and the English names
func ParseMedicineType(s string) (MedicineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "капли", "drops":
		return Drops, nil
	case "спрей", "spray":
		return Spray, nil
	case "мазь", "ointment":
		return Ointment, nil
	case "таблетки", "tablets":
		return Tablets, nil
	default:
		return 0, fmt.Errorf("unknown medicine type: %q", s)
	}
}

// MedicineGroup represents the therapeutic group of a medicine
type MedicineGroup int

const (
	Antibiotic MedicineGroup = iota
	Painkiller
	Heart
)

// String method for MedicineGroup enum
func (g MedicineGroup) String() string {
	switch g {
	case Antibiotic:
		return "Антибиотики"
	case Painkiller:
		return "Обезболивающие"
	case Heart:
		return "Сердечные"
	default:
		return "Unknown"
	}
}

// ParseMedicineGroup accepts both the catalog labels and the English names
func ParseMedicineGroup(s string) (MedicineGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "антибиотики", "antibiotic":
		return Antibiotic, nil
	case "обезболивающие", "painkiller":
		return Painkiller, nil
	case "сердечные", "heart":
		return Heart, nil
	default:
		return 0, fmt.Errorf("unknown medicine group: %q", s)
	}
}

// Medicine is an immutable catalog entry. All fields are comparable, so the
// value itself is used as a map key.
type Medicine struct {
	Name             string
	Dosage           int
	Type             MedicineType
	Group            MedicineGroup
	Wholesale        float64
	ExpirationDays   int
	PurchaseQuantity Quantity
	MinQuantity      Quantity
}

// NewMedicine creates a validated Medicine
func NewMedicine(
	name string,
	dosage int,
	medicineType MedicineType,
	group MedicineGroup,
	wholesale float64,
	expirationDays int,
	purchaseQuantity, minQuantity Quantity,
) (*Medicine, error) {
	if name == "" {
		return nil, fmt.Errorf("medicine name cannot be empty")
	}
	if dosage < 0 {
		return nil, fmt.Errorf("dosage cannot be negative, got %d", dosage)
	}
	if !IsFiniteNumber(wholesale) || wholesale <= 0 {
		return nil, fmt.Errorf("wholesale price must be positive, got %v", wholesale)
	}
	if expirationDays <= 0 {
		return nil, fmt.Errorf("expiration days must be positive, got %d", expirationDays)
	}
	if purchaseQuantity <= 0 {
		return nil, fmt.Errorf("purchase quantity must be positive, got %d", purchaseQuantity)
	}
	if minQuantity < 0 {
		return nil, fmt.Errorf("min quantity cannot be negative, got %d", minQuantity)
	}

	return &Medicine{
		Name:             name,
		Dosage:           dosage,
		Type:             medicineType,
		Group:            group,
		Wholesale:        wholesale,
		ExpirationDays:   expirationDays,
		PurchaseQuantity: purchaseQuantity,
		MinQuantity:      minQuantity,
	}, nil
}

// IsFiniteNumber reports whether x is neither NaN nor an infinity
func IsFiniteNumber(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// UnitPrice returns the wholesale price of a single unit
func (m Medicine) UnitPrice() decimal.Decimal {
	return decimal.NewFromFloat(m.Wholesale)
}

// MarshalText encodes the type by its catalog label
func (t MedicineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalText encodes the group by its catalog label
func (g MedicineGroup) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

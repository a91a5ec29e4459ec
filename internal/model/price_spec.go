package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceMode selects which pricing shape a Book carries.
const (
	PriceModeCommon   = "common"
	PriceModePerClass = "per_class"
)

var (
	// ErrPriceNotFound means no usable price exists for the requested class.
	ErrPriceNotFound = errors.New("price not found for class")
	// ErrClassRequired means a per-class priced book was queried without a class.
	ErrClassRequired = errors.New("class selection required for per-class pricing")
)

// PriceSpec is the pricing rule behind a Book: either one common price that
// applies to every class, or a table keyed by class name. Exactly one side is
// populated — construct via NewCommonPrice / NewPerClassPrice, never directly.
type PriceSpec struct {
	Mode     string
	Common   decimal.Decimal
	PerClass map[string]decimal.Decimal
}

// NewCommonPrice builds a single-scalar pricing rule.
func NewCommonPrice(amount decimal.Decimal) (PriceSpec, error) {
	if amount.IsNegative() {
		return PriceSpec{}, errors.New("common price must not be negative")
	}
	return PriceSpec{Mode: PriceModeCommon, Common: amount}, nil
}

// NewPerClassPrice builds a class-keyed pricing rule. An empty table is
// rejected at construction — a per-class book with no classes is unsellable.
func NewPerClassPrice(amounts map[string]decimal.Decimal) (PriceSpec, error) {
	if len(amounts) == 0 {
		return PriceSpec{}, errors.New("per-class price table must contain at least one class")
	}
	for class, amount := range amounts {
		if amount.IsNegative() {
			return PriceSpec{}, fmt.Errorf("price for class %q must not be negative", class)
		}
	}
	return PriceSpec{Mode: PriceModePerClass, PerClass: amounts}, nil
}

// Resolve returns the catalog price for the given class.
// Common pricing ignores the class entirely. Per-class pricing requires a
// class and fails with ErrPriceNotFound when the class is absent from the
// table or priced at zero.
func (p PriceSpec) Resolve(className string) (decimal.Decimal, error) {
	switch p.Mode {
	case PriceModeCommon:
		return p.Common, nil
	case PriceModePerClass:
		if className == "" {
			return decimal.Zero, ErrClassRequired
		}
		amount, ok := p.PerClass[className]
		if !ok || amount.IsZero() {
			return decimal.Zero, ErrPriceNotFound
		}
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown price mode %q", p.Mode)
	}
}

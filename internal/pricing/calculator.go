package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
)

// Shipping fees in cents per delivery method.
const (
	ShippingStandardCents int64 = 20000
	ShippingExpressCents  int64 = 35000
	ShippingSameDayCents  int64 = 50000
)

// LineInput is one order line entering the price calculation.
type LineInput struct {
	UnitPriceCents int64
	Qty            int
}

// Quote is the complete price breakdown for an order. All amounts are in
// cents; the breakdown is persisted on the order and never recomputed.
type Quote struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
}

// Calculator computes order totals from immutable line snapshots.
type Calculator struct {
	taxRate decimal.Decimal
}

// NewCalculator builds a calculator with the configured tax rate, expressed
// as a fraction (0.08 means 8%).
func NewCalculator(taxRate decimal.Decimal) (*Calculator, error) {
	if taxRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate cannot be negative")
	}
	return &Calculator{taxRate: taxRate}, nil
}

// Calculate produces the quote for the given lines. Tax applies to the
// subtotal only, rounded half-up to the nearest cent. The discount is
// clamped so the total never goes below zero.
func (c *Calculator) Calculate(lines []LineInput, method enums.DeliveryMethod, discountCents int64) (*Quote, error) {
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line is required")
	}
	if discountCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	var subtotal int64
	for _, line := range lines {
		if line.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
		if line.UnitPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line price cannot be negative")
		}
		subtotal += line.UnitPriceCents * int64(line.Qty)
	}

	shipping, err := ShippingFeeCents(method)
	if err != nil {
		return nil, err
	}

	tax := decimal.NewFromInt(subtotal).
		Mul(c.taxRate).
		Round(0).
		IntPart()

	total := subtotal + shipping + tax - discountCents
	if total < 0 {
		discountCents = subtotal + shipping + tax
		total = 0
	}

	return &Quote{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		TaxCents:      tax,
		DiscountCents: discountCents,
		TotalCents:    total,
	}, nil
}

// ShippingFeeCents returns the flat fee for a delivery method.
func ShippingFeeCents(method enums.DeliveryMethod) (int64, error) {
	switch method {
	case enums.DeliveryMethodStandard:
		return ShippingStandardCents, nil
	case enums.DeliveryMethodExpress:
		return ShippingExpressCents, nil
	case enums.DeliveryMethodSameDay:
		return ShippingSameDayCents, nil
	default:
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery method")
	}
}

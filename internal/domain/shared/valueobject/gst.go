package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// GSTRate represents a GST percentage applied to a product line.
type GSTRate struct {
	percent decimal.Decimal
}

// NewGSTRate creates a GST rate from a percentage (e.g. 18 for 18%)
func NewGSTRate(percent decimal.Decimal) (GSTRate, error) {
	if percent.IsNegative() {
		return GSTRate{}, fmt.Errorf("gst percentage cannot be negative: %s", percent)
	}
	if percent.GreaterThan(hundred) {
		return GSTRate{}, fmt.Errorf("gst percentage cannot exceed 100: %s", percent)
	}
	return GSTRate{percent: percent}, nil
}

// MustGSTRate creates a GST rate, panicking on invalid input. For constants and tests.
func MustGSTRate(percent decimal.Decimal) GSTRate {
	r, err := NewGSTRate(percent)
	if err != nil {
		panic(err)
	}
	return r
}

// Percent returns the percentage value
func (r GSTRate) Percent() decimal.Decimal {
	return r.percent
}

// IsZero returns true when the rate is 0%
func (r GSTRate) IsZero() bool {
	return r.percent.IsZero()
}

// TaxBreakup is the GST decomposition of a tax-inclusive amount.
// TaxableValue + GSTTotal equals the gross amount; CGST and SGST
// each carry half of the GST total.
type TaxBreakup struct {
	TaxableValue decimal.Decimal
	GSTTotal     decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
}

// SplitInclusive decomposes a tax-inclusive gross amount under this rate.
// taxable = gross / (1 + rate); gst = gross - taxable. Amounts are rounded
// to 2 places with the GST total taking the rounding remainder so the parts
// always sum back to the gross amount.
func (r GSTRate) SplitInclusive(gross Money) TaxBreakup {
	divisor := decimal.NewFromInt(1).Add(r.percent.Div(hundred))
	taxable := gross.Amount().Div(divisor).Round(2)
	gst := gross.Amount().Sub(taxable)
	half := gst.Div(decimal.NewFromInt(2)).Round(2)
	return TaxBreakup{
		TaxableValue: taxable,
		GSTTotal:     gst,
		CGST:         half,
		SGST:         gst.Sub(half),
	}
}

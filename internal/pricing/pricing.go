package pricing

import "github.com/shopspring/decimal"

// Line is one priced position: unit price times quantity in a single currency.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Currency  string
}

// Totals is the derived totals block. Invariant after Compute:
// Total = Subtotal - Discount + Tax + Shipping.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
	Currency string
}

// Compute sums the lines. Discount, tax and shipping are fixed at zero until a
// promotion/tax engine exists. The currency of the first line wins; an empty
// line set falls back to the store base currency.
func Compute(lines []Line, baseCurrency string) Totals {
	t := Totals{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Currency: baseCurrency,
	}

	for i, l := range lines {
		if i == 0 && l.Currency != "" {
			t.Currency = l.Currency
		}
		t.Subtotal = t.Subtotal.Add(LineTotal(l.UnitPrice, l.Quantity))
	}

	t.Total = t.Subtotal.Sub(t.Discount).Add(t.Tax).Add(t.Shipping)
	return t
}

func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Format renders a monetary amount the way the API exposes it everywhere:
// a fixed two-decimal string.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

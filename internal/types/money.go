// README: Common money value object used across modules.
package types

// Money is an amount in the smallest currency unit (centavos for PHP).
type Money struct {
	Amount   int64
	Currency string
}

// PHP wraps a centavo amount in the default currency.
func PHP(centavos int64) Money {
	return Money{Amount: centavos, Currency: "PHP"}
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.Currency}
}

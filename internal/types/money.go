// README: Common money value object used across modules.
package types

import (
	"fmt"
	"math"
)

// Money is an amount in cents to keep share arithmetic exact.
type Money struct {
	Amount   int64
	Currency string
}

func BRL(cents int64) Money {
	return Money{Amount: cents, Currency: "BRL"}
}

// Split returns the per-head share of m among n people, rounded to the
// nearest cent. The total stays canonical; the share is derived.
func (m Money) Split(n int) Money {
	if n <= 0 {
		return Money{Amount: 0, Currency: m.Currency}
	}
	share := math.Round(float64(m.Amount) / float64(n))
	return Money{Amount: int64(share), Currency: m.Currency}
}

// String formats the amount the Brazilian way, e.g. "R$ 46,67".
func (m Money) String() string {
	return fmt.Sprintf("R$ %d,%02d", m.Amount/100, m.Amount%100)
}

package model

import "github.com/shopspring/decimal"

// Money is an exact decimal amount serialized as a JSON number, matching
// the store's NUMERIC columns.
type Money struct {
	decimal.Decimal
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

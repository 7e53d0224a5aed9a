package entity

import "ProjectBudget/internal/api/budget"

// Money is a non-negative amount in the smallest currency unit.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, budget.ErrInvalidAmount
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 {
	return m.amount
}

package entity

import (
	"ProjectBudget/internal/api/expense"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	at := now.Add(-time.Hour)
	amount := mustMoney(t, 12000)

	e, err := NewExpense("exp-1", "user-1", 3, "lunch", amount, at, now)
	require.NoError(t, err)
	assert.True(t, e.IsOwnedBy("user-1"))
	assert.False(t, e.IsOwnedBy("user-2"))
	assert.False(t, e.ExcludeFromTotal)
	assert.Equal(t, now, e.CreatedAt)

	tests := []struct {
		name       string
		userID     string
		categoryID int64
		at         time.Time
	}{
		{name: "no owner", categoryID: 3, at: at},
		{name: "no category", userID: "user-1", at: at},
		{name: "no timestamp", userID: "user-1", categoryID: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpense("exp-1", tt.userID, tt.categoryID, "", amount, tt.at, now)
			assert.ErrorIs(t, err, expense.ErrInvalidExpense)
		})
	}
}

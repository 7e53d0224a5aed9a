package entity

import (
	"ProjectBudget/internal/api/budget"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Amount())

	m, err = NewMoney(300000)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), m.Amount())

	_, err = NewMoney(-1)
	assert.ErrorIs(t, err, budget.ErrInvalidAmount)
}

func TestParseBudgetYearMonth(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "2024-03", want: "2024-03"},
		{raw: "1999-12", want: "1999-12"},
		{raw: "", wantErr: true},
		{raw: "2024-13", wantErr: true},
		{raw: "2024-3", wantErr: true},
		{raw: "2024-03-01", wantErr: true},
		{raw: "24-03", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ym, err := ParseBudgetYearMonth(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, budget.ErrInvalidBudget)
				assert.True(t, ym.IsEmpty())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ym.String())
			assert.Equal(t, 1, ym.Time().Day())
		})
	}
}

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYearMonthTag(t *testing.T) {
	type request struct {
		Month string `validate:"required,yearmonth"`
	}

	v := New()

	tests := []struct {
		month string
		valid bool
	}{
		{month: "2024-03", valid: true},
		{month: "1999-12", valid: true},
		{month: "2024-13", valid: false},
		{month: "2024-3", valid: false},
		{month: "24-03", valid: false},
		{month: "2024-03-01", valid: false},
		{month: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			err := v.Struct(request{Month: tt.month})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestDiveIntoSlices(t *testing.T) {
	type item struct {
		CategoryID int64 `validate:"required,gte=1"`
		Money      int64 `validate:"gte=1"`
	}
	type request struct {
		Items []item `validate:"required,min=1,dive"`
	}

	v := New()

	assert.NoError(t, v.Struct(request{Items: []item{{CategoryID: 1, Money: 10}}}))
	assert.Error(t, v.Struct(request{Items: []item{{CategoryID: 1, Money: 0}}}))
	assert.Error(t, v.Struct(request{}))
}

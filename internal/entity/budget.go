package entity

import (
	"ProjectBudget/internal/api/budget"
	"slices"
	"time"
)

// CategoryBudget is one category's monthly allocation inside a Budget.
// BudgetID points back at the owner; the Budget holds the authoritative list.
type CategoryBudget struct {
	ID         string
	BudgetID   string
	CategoryID int64
	Amount     Money
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewCategoryBudget(id string, categoryID int64, amount Money, now time.Time) (CategoryBudget, error) {
	if categoryID <= 0 {
		return CategoryBudget{}, budget.ErrInvalidBudget
	}

	return CategoryBudget{
		ID:         id,
		CategoryID: categoryID,
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Modify replaces the amount. Identity and creation time are kept.
func (c *CategoryBudget) Modify(amount Money, now time.Time) {
	c.Amount = amount
	c.UpdatedAt = now
}

type Budget struct {
	ID              string
	UserID          string
	YearMonth       BudgetYearMonth
	CategoryBudgets []CategoryBudget
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBudget(id string, yearMonth BudgetYearMonth, now time.Time) (Budget, error) {
	if yearMonth.IsEmpty() {
		return Budget{}, budget.ErrInvalidBudget
	}

	return Budget{
		ID:        id,
		YearMonth: yearMonth,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetOwner assigns the owner once.
func (b *Budget) SetOwner(userID string) error {
	if userID == "" || b.UserID != "" {
		return budget.ErrInvalidBudget
	}
	b.UserID = userID
	return nil
}

// SetInitialCategories fills an empty budget. It refuses to replace an
// existing list and refuses a list that repeats a category.
func (b *Budget) SetInitialCategories(list []CategoryBudget) error {
	if len(b.CategoryBudgets) != 0 {
		return budget.ErrInvalidBudget
	}

	seen := make(map[int64]struct{}, len(list))
	for _, cb := range list {
		if _, dup := seen[cb.CategoryID]; dup {
			return budget.ErrInvalidBudget
		}
		seen[cb.CategoryID] = struct{}{}
	}

	categories := make([]CategoryBudget, 0, len(list))
	for _, cb := range list {
		cb.BudgetID = b.ID
		categories = append(categories, cb)
	}
	b.CategoryBudgets = categories
	return nil
}

func (b Budget) IsOwnedBy(userID string) bool {
	return b.UserID != "" && b.UserID == userID
}

func (b Budget) indexOf(categoryID int64) int {
	return slices.IndexFunc(b.CategoryBudgets, func(cb CategoryBudget) bool {
		return cb.CategoryID == categoryID
	})
}

func (b Budget) FindCategory(categoryID int64) (CategoryBudget, bool) {
	i := b.indexOf(categoryID)
	if i < 0 {
		return CategoryBudget{}, false
	}
	return b.CategoryBudgets[i], true
}

func (b *Budget) AddCategory(cb CategoryBudget) (CategoryBudget, error) {
	if b.indexOf(cb.CategoryID) >= 0 {
		return CategoryBudget{}, budget.ErrBudgetCategoryDuplicated
	}

	cb.BudgetID = b.ID
	b.CategoryBudgets = append(b.CategoryBudgets, cb)
	return cb, nil
}

func (b *Budget) ModifyCategory(categoryID int64, amount Money, now time.Time) (CategoryBudget, error) {
	i := b.indexOf(categoryID)
	if i < 0 {
		return CategoryBudget{}, budget.ErrBudgetCategoryNotFound
	}

	b.CategoryBudgets[i].Modify(amount, now)
	return b.CategoryBudgets[i], nil
}

func (b *Budget) RemoveCategory(categoryID int64) (CategoryBudget, error) {
	i := b.indexOf(categoryID)
	if i < 0 {
		return CategoryBudget{}, budget.ErrBudgetCategoryNotFound
	}

	removed := b.CategoryBudgets[i]
	b.CategoryBudgets = slices.Delete(b.CategoryBudgets, i, i+1)
	return removed, nil
}

func (b Budget) TotalAmount() int64 {
	var total int64
	for _, cb := range b.CategoryBudgets {
		total += cb.Amount.Amount()
	}
	return total
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

const maxTitleLength = 100

// Category is the closed set of expense categories.
type Category string

const (
	CategoryGroceries   Category = "groceries"
	CategoryLeisure     Category = "leisure"
	CategoryElectronics Category = "electronics"
	CategoryUtilities   Category = "utilities"
	CategoryClothing    Category = "clothing"
	CategoryHealth      Category = "health"
	CategoryOthers      Category = "others"
)

var categories = []Category{
	CategoryGroceries,
	CategoryLeisure,
	CategoryElectronics,
	CategoryUtilities,
	CategoryClothing,
	CategoryHealth,
	CategoryOthers,
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func Categories() []Category {
	return categories
}

// maxAmount reflects NUMERIC(10,2): at most 8 integer digits.
var maxAmount = decimal.New(1, 8)

type Expense struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	Category  Category        `json:"category"`
	Date      Date            `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *Expense) RoundToTwoDecimalPlaces() {
	e.Amount = e.Amount.Round(2)
}

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return expenseErrors.NewValidationError("Title is required")
	}
	if len(e.Title) > maxTitleLength {
		return expenseErrors.NewValidationError("Title must be of length less than 100")
	}
	if e.Amount.Abs().GreaterThanOrEqual(maxAmount) {
		return expenseErrors.NewValidationError("Amount must have no more than 10 digits in total")
	}
	if !e.Category.IsValid() {
		return expenseErrors.NewValidationError("Category must be one of: groceries, leisure, electronics, utilities, clothing, health, others")
	}
	if e.Date.IsZero() {
		return expenseErrors.NewValidationError("Date is required")
	}
	return nil
}

// ExpenseUpdate carries a partial update; nil fields are left unchanged.
type ExpenseUpdate struct {
	Title    *string
	Amount   *decimal.Decimal
	Note     *string
	Category *Category
	Date     *Date
}

func (u ExpenseUpdate) Apply(e *Expense) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Note != nil {
		e.Note = *u.Note
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
}

type ExpenseRepository interface {
	Save(expense Expense) (Expense, error)
	FindByUser(userID string, filter ResolvedFilter) ([]Expense, error)
	FindByID(userID, expenseID string) (*Expense, error)
	Update(expense Expense) (Expense, error)
	Delete(userID, expenseID string) error
}

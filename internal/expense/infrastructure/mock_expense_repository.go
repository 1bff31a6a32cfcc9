package infrastructure

import (
	"sort"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

// MockExpenseRepository is an in-memory ExpenseRepository for service and
// handler tests. It reuses ResolvedFilter.Matches so its behavior stays in
// lockstep with the SQL repository.
type MockExpenseRepository struct {
	Expenses []domain.Expense
	Now      func() time.Time
}

func (m *MockExpenseRepository) clock() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *MockExpenseRepository) Save(expense domain.Expense) (domain.Expense, error) {
	now := m.clock()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	m.Expenses = append(m.Expenses, expense)
	return expense, nil
}

func (m *MockExpenseRepository) FindByUser(userID string, filter domain.ResolvedFilter) ([]domain.Expense, error) {
	var matched []domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID != userID {
			continue
		}
		if !filter.Matches(expense) {
			continue
		}
		matched = append(matched, expense)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date.Time) {
			return matched[i].Date.After(matched[j].Date.Time)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched, nil
}

func (m *MockExpenseRepository) FindByID(userID, expenseID string) (*domain.Expense, error) {
	for _, expense := range m.Expenses {
		if expense.ID == expenseID && expense.UserID == userID {
			found := expense
			return &found, nil
		}
	}
	return nil, expenseErrors.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Update(expense domain.Expense) (domain.Expense, error) {
	for i, existing := range m.Expenses {
		if existing.ID == expense.ID && existing.UserID == expense.UserID {
			expense.CreatedAt = existing.CreatedAt
			expense.UpdatedAt = m.clock()
			m.Expenses[i] = expense
			return expense, nil
		}
	}
	return domain.Expense{}, expenseErrors.ErrExpenseNotFound
}

func (m *MockExpenseRepository) Delete(userID, expenseID string) error {
	for i, expense := range m.Expenses {
		if expense.ID == expenseID && expense.UserID == userID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return nil
		}
	}
	return expenseErrors.ErrExpenseNotFound
}

package interfaces

import (
	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

// MockExpenseService lets handler tests stub each operation with a
// function field; unset operations panic to surface unexpected calls.
type MockExpenseService struct {
	CreateExpenseFunc   func(expense *domain.Expense, userID string) error
	GetUserExpensesFunc func(userID string, filter domain.Filter) ([]domain.Expense, error)
	GetExpenseFunc      func(userID, expenseID string) (*domain.Expense, error)
	UpdateExpenseFunc   func(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error)
	DeleteExpenseFunc   func(userID, expenseID string) error
}

func (m *MockExpenseService) CreateExpense(expense *domain.Expense, userID string) error {
	if m.CreateExpenseFunc == nil {
		panic("unexpected call to CreateExpense")
	}
	return m.CreateExpenseFunc(expense, userID)
}

func (m *MockExpenseService) GetUserExpenses(userID string, filter domain.Filter) ([]domain.Expense, error) {
	if m.GetUserExpensesFunc == nil {
		panic("unexpected call to GetUserExpenses")
	}
	return m.GetUserExpensesFunc(userID, filter)
}

func (m *MockExpenseService) GetExpense(userID, expenseID string) (*domain.Expense, error) {
	if m.GetExpenseFunc == nil {
		panic("unexpected call to GetExpense")
	}
	return m.GetExpenseFunc(userID, expenseID)
}

func (m *MockExpenseService) UpdateExpense(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	if m.UpdateExpenseFunc == nil {
		panic("unexpected call to UpdateExpense")
	}
	return m.UpdateExpenseFunc(userID, expenseID, update)
}

func (m *MockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.DeleteExpenseFunc == nil {
		panic("unexpected call to DeleteExpense")
	}
	return m.DeleteExpenseFunc(userID, expenseID)
}

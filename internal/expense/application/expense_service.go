package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
)

// ExpenseService orchestrates the owner-scoped CRUD operations. The clock
// is injected so that the relative date-range buckets are deterministic in
// tests; main wires it to the server's configured time zone.
type ExpenseService struct {
	repo domain.ExpenseRepository
	now  func() time.Time
}

func NewExpenseService(repo domain.ExpenseRepository, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{repo: repo, now: now}
}

// CreateExpense persists a new expense owned by userID. Whatever owner the
// caller may have supplied on the struct is overwritten.
func (s *ExpenseService) CreateExpense(expense *domain.Expense, userID string) error {
	expense.ID = uuid.NewString()
	expense.UserID = userID
	expense.RoundToTwoDecimalPlaces()
	if err := expense.Validate(); err != nil {
		return err
	}
	saved, err := s.repo.Save(*expense)
	if err != nil {
		return err
	}
	*expense = saved
	return nil
}

// GetUserExpenses lists the caller's expenses narrowed by filter, most
// recent date first. "today" for the date_range buckets is evaluated here,
// once per request.
func (s *ExpenseService) GetUserExpenses(userID string, filter domain.Filter) ([]domain.Expense, error) {
	today := domain.DateOf(s.now())
	expenses, err := s.repo.FindByUser(userID, filter.Resolve(today))
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *ExpenseService) GetExpense(userID, expenseID string) (*domain.Expense, error) {
	return s.repo.FindByID(userID, expenseID)
}

// UpdateExpense applies a partial update to an expense owned by userID and
// returns the stored result with a refreshed updated_at.
func (s *ExpenseService) UpdateExpense(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	existing, err := s.repo.FindByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	update.Apply(existing)
	existing.RoundToTwoDecimalPlaces()
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(*existing)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ExpenseService) DeleteExpense(userID, expenseID string) error {
	return s.repo.Delete(userID, expenseID)
}

package infrastructure

import (
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresExpenseRepository struct {
	db *sql.DB
}

func NewPostgresExpenseRepository(db *sql.DB) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

func (r *PostgresExpenseRepository) Save(expense domain.Expense) (domain.Expense, error) {
	query, args, err := psql.Insert("expenses").
		Columns("id", "user_id", "title", "amount", "note", "category", "date").
		Values(expense.ID, expense.UserID, expense.Title, expense.Amount, expense.Note, expense.Category, expense.Date).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.Expense{}, err
	}

	if err := r.db.QueryRow(query, args...).Scan(&expense.CreatedAt, &expense.UpdatedAt); err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

// FindByUser returns the caller's rows narrowed by filter, ordered by date
// descending with id descending as the tie-break. The ownership predicate
// is part of every query built here and cannot be disabled by a filter.
func (r *PostgresExpenseRepository) FindByUser(userID string, filter domain.ResolvedFilter) ([]domain.Expense, error) {
	builder := psql.Select("id", "user_id", "title", "amount", "note", "category", "date", "created_at", "updated_at").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "id DESC")

	if filter.Window != nil {
		builder = builder.
			Where(sq.GtOrEq{"date": filter.Window.Start}).
			Where(sq.LtOrEq{"date": filter.Window.End})
	}
	if filter.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"date": *filter.EndDate})
	}
	if filter.Category != "" {
		builder = builder.Where("category ILIKE ?", "%"+escapeLikePattern(filter.Category)+"%")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount,
			&expense.Note, &expense.Category, &expense.Date, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

func (r *PostgresExpenseRepository) FindByID(userID, expenseID string) (*domain.Expense, error) {
	query, args, err := psql.Select("id", "user_id", "title", "amount", "note", "category", "date", "created_at", "updated_at").
		From("expenses").
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var expense domain.Expense
	err = r.db.QueryRow(query, args...).Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount,
		&expense.Note, &expense.Category, &expense.Date, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expenseErrors.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresExpenseRepository) Update(expense domain.Expense) (domain.Expense, error) {
	query, args, err := psql.Update("expenses").
		Set("title", expense.Title).
		Set("amount", expense.Amount).
		Set("note", expense.Note).
		Set("category", expense.Category).
		Set("date", expense.Date).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": expense.ID, "user_id": expense.UserID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return domain.Expense{}, err
	}

	if err := r.db.QueryRow(query, args...).Scan(&expense.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Expense{}, expenseErrors.ErrExpenseNotFound
		}
		return domain.Expense{}, err
	}
	return expense, nil
}

func (r *PostgresExpenseRepository) Delete(userID, expenseID string) error {
	query, args, err := psql.Delete("expenses").
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return expenseErrors.ErrExpenseNotFound
	}
	return nil
}

// escapeLikePattern neutralizes LIKE metacharacters so a filter value is
// matched literally inside the %...% pattern.
func escapeLikePattern(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

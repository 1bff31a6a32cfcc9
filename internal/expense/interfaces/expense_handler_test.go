package interfaces

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

func authenticatedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", "user-1"))
}

func decodeResponse(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	return response
}

func TestCreateExpense_Success(t *testing.T) {
	service := &MockExpenseService{
		CreateExpenseFunc: func(expense *domain.Expense, userID string) error {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "Weekly shopping", expense.Title)
			expense.ID = "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741"
			expense.UserID = userID
			return nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, err := json.Marshal(map[string]interface{}{
		"title":    "Weekly shopping",
		"amount":   42.5,
		"category": "groceries",
		"date":     "2024-06-15",
	})
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/expenses", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	response := decodeResponse(t, res)
	assert.Equal(t, "success", response["status"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", data["id"])
	assert.Equal(t, "2024-06-15", data["date"])
}

func TestCreateExpense_Unauthorized(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateExpense_InvalidRequestBody(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/expenses", []byte("invalid body")))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	response := decodeResponse(t, res)
	assert.Equal(t, "error", response["status"])
	assert.Equal(t, "Invalid request body", response["message"])
	assert.Equal(t, float64(http.StatusBadRequest), response["code"])
}

func TestCreateExpense_MissingAmount(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "No amount",
		"category": "groceries",
		"date":     "2024-06-15",
	})

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/expenses", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Amount is required", decodeResponse(t, res)["message"])
}

func TestCreateExpense_ValidationError(t *testing.T) {
	service := &MockExpenseService{
		CreateExpenseFunc: func(expense *domain.Expense, userID string) error {
			return expenseErrors.NewValidationError("Title is required")
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{
		"amount":   10,
		"category": "groceries",
		"date":     "2024-06-15",
	})

	w := httptest.NewRecorder()
	handler.CreateExpense(w, authenticatedRequest(http.MethodPost, "/api/expenses", body))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title is required", decodeResponse(t, res)["message"])
}

func TestGetUserExpenses_PassesFilterParams(t *testing.T) {
	var captured domain.Filter
	service := &MockExpenseService{
		GetUserExpensesFunc: func(userID string, filter domain.Filter) ([]domain.Expense, error) {
			captured = filter
			return []domain.Expense{}, nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	target := "/api/expenses?date_range=past_week&category=gro&start_date=2024-06-01&end_date=2024-06-10"
	w := httptest.NewRecorder()
	handler.GetUserExpenses(w, authenticatedRequest(http.MethodGet, target, nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "past_week", captured.DateRange)
	assert.Equal(t, "gro", captured.Category)
	assert.NotNil(t, captured.StartDate)
	assert.Equal(t, domain.NewDate(2024, time.June, 1), *captured.StartDate)
	assert.NotNil(t, captured.EndDate)
	assert.Equal(t, domain.NewDate(2024, time.June, 10), *captured.EndDate)
}

func TestGetUserExpenses_MalformedDates(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetUserExpenses(w, authenticatedRequest(http.MethodGet, "/api/expenses?start_date=15-06-2024", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid start_date format", decodeResponse(t, res)["message"])

	w = httptest.NewRecorder()
	handler.GetUserExpenses(w, authenticatedRequest(http.MethodGet, "/api/expenses?end_date=junk", nil))

	res = w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid end_date format", decodeResponse(t, res)["message"])
}

func TestGetUserExpenses_EmptyListIsJSONArray(t *testing.T) {
	service := &MockExpenseService{
		GetUserExpensesFunc: func(userID string, filter domain.Filter) ([]domain.Expense, error) {
			return []domain.Expense{}, nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetUserExpenses(w, authenticatedRequest(http.MethodGet, "/api/expenses", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	response := decodeResponse(t, res)
	data, ok := response["data"].([]interface{})
	assert.True(t, ok, "data should decode as an array, got %T", response["data"])
	assert.Empty(t, data)
}

func TestGetExpense_NotFound(t *testing.T) {
	service := &MockExpenseService{
		GetExpenseFunc: func(userID, expenseID string) (*domain.Expense, error) {
			return nil, expenseErrors.ErrExpenseNotFound
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodGet, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", nil)
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w := httptest.NewRecorder()
	handler.GetExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Expense not found", decodeResponse(t, res)["message"])
}

func TestUpdateExpense_PassesPartialFields(t *testing.T) {
	var captured domain.ExpenseUpdate
	service := &MockExpenseService{
		UpdateExpenseFunc: func(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
			captured = update
			return &domain.Expense{ID: expenseID, Title: *update.Title}, nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]interface{}{"title": "New title"})
	req := authenticatedRequest(http.MethodPatch, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", body)
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w := httptest.NewRecorder()
	handler.UpdateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NotNil(t, captured.Title)
	assert.Equal(t, "New title", *captured.Title)
	assert.Nil(t, captured.Amount)
	assert.Nil(t, captured.Note)
	assert.Nil(t, captured.Category)
	assert.Nil(t, captured.Date)
}

func TestUpdateExpense_AmountPrecisionSurvivesDecoding(t *testing.T) {
	service := &MockExpenseService{
		UpdateExpenseFunc: func(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
			assert.NotNil(t, update.Amount)
			assert.True(t, decimal.RequireFromString("18.51").Equal(*update.Amount))
			return &domain.Expense{ID: expenseID}, nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodPatch, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", []byte(`{"amount": 18.51}`))
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w := httptest.NewRecorder()
	handler.UpdateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDeleteExpense_NoContent(t *testing.T) {
	service := &MockExpenseService{
		DeleteExpenseFunc: func(userID, expenseID string) error {
			assert.Equal(t, "user-1", userID)
			return nil
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", nil)
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w := httptest.NewRecorder()
	handler.DeleteExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, int64(0), res.ContentLength)
}

func TestDeleteExpense_NotFound(t *testing.T) {
	service := &MockExpenseService{
		DeleteExpenseFunc: func(userID, expenseID string) error {
			return expenseErrors.ErrExpenseNotFound
		},
	}
	handler := NewExpenseHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", nil)
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w := httptest.NewRecorder()
	handler.DeleteExpense(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestValidateExpensePathParamsMiddleware(t *testing.T) {
	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})
	wrapped := handler.ValidateExpensePathParamsMiddleware(next, "expenseID")

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/not-a-uuid", nil)
	req.SetPathValue("expenseID", "not-a-uuid")
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Expense not found", decodeResponse(t, res)["message"])
	assert.False(t, nextCalled)

	req = httptest.NewRequest(http.MethodGet, "/api/expenses/8dbf6c46-6f2d-4f34-bd15-168e4a0bd741", nil)
	req.SetPathValue("expenseID", "8dbf6c46-6f2d-4f34-bd15-168e4a0bd741")
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.True(t, nextCalled)
}

package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sebuszqo/ExpenseTracker/internal/expense/domain"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expense/errors"
)

type ExpenseServiceInterface interface {
	CreateExpense(expense *domain.Expense, userID string) error
	GetUserExpenses(userID string, filter domain.Filter) ([]domain.Expense, error)
	GetExpense(userID, expenseID string) (*domain.Expense, error)
	UpdateExpense(userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ExpenseHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil {
		log.Fatal("RespondJSON function must not be nil")
		return nil
	}
	if respondError == nil {
		log.Fatal("RespondError function must not be nil")
		return nil
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type expenseRequest struct {
	Title    string           `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Note     string           `json:"note"`
	Category domain.Category  `json:"category"`
	Date     *domain.Date     `json:"date"`
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == nil {
		h.respondError(w, http.StatusBadRequest, "Amount is required")
		return
	}

	expense := domain.Expense{
		Title:    req.Title,
		Amount:   *req.Amount,
		Note:     req.Note,
		Category: req.Category,
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := h.service.CreateExpense(&expense, userID); err != nil {
		if expenseErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during expense creation: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully created.",
		"data":    expense,
	})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := domain.Filter{
		DateRange: r.URL.Query().Get("date_range"),
		Category:  r.URL.Query().Get("category"),
	}

	if startDateStr := r.URL.Query().Get("start_date"); startDateStr != "" {
		startDate, err := domain.ParseDate(startDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
		filter.StartDate = &startDate
	}
	if endDateStr := r.URL.Query().Get("end_date"); endDateStr != "" {
		endDate, err := domain.ParseDate(endDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
		filter.EndDate = &endDate
	}

	expenses, err := h.service.GetUserExpenses(userID, filter)
	if err != nil {
		log.Printf("Error during expense listing: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expenses retrieved successfully.",
		"data":    expenses,
	})
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expense, err := h.service.GetExpense(userID, r.PathValue("expenseID"))
	if err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			h.respondError(w, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("Error during expense retrieval: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense retrieved successfully.",
		"data":    expense,
	})
}

type expenseUpdateRequest struct {
	Title    *string          `json:"title"`
	Amount   *decimal.Decimal `json:"amount"`
	Note     *string          `json:"note"`
	Category *domain.Category `json:"category"`
	Date     *domain.Date     `json:"date"`
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req expenseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := domain.ExpenseUpdate{
		Title:    req.Title,
		Amount:   req.Amount,
		Note:     req.Note,
		Category: req.Category,
		Date:     req.Date,
	}

	expense, err := h.service.UpdateExpense(userID, r.PathValue("expenseID"), update)
	if err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			h.respondError(w, http.StatusNotFound, "Expense not found")
			return
		}
		if expenseErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error during expense update: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully updated.",
		"data":    expense,
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteExpense(userID, r.PathValue("expenseID")); err != nil {
		if errors.Is(err, expenseErrors.ErrExpenseNotFound) {
			h.respondError(w, http.StatusNotFound, "Expense not found")
			return
		}
		log.Printf("Error during expense deletion: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package interfaces

import (
	"net/http"

	"github.com/google/uuid"
)

// ValidateExpensePathParamsMiddleware rejects requests whose path
// parameters are not well-formed UUIDs. A malformed id is answered exactly
// like a missing record, so callers cannot probe id formats.
func (h *ExpenseHandler) ValidateExpensePathParamsMiddleware(next http.Handler, params ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range params {
			paramValue := r.PathValue(param)
			if paramValue == "" {
				h.respondError(w, http.StatusNotFound, "Expense not found")
				return
			}
			if _, err := uuid.Parse(paramValue); err != nil {
				h.respondError(w, http.StatusNotFound, "Expense not found")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

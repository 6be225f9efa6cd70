package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletkit/walletkit/internal/model"
)

// ErrValidation matches every validation failure via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one rejected field.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Message)
}

// ValidationErrors is returned when caller-supplied data fails a
// precondition. Nothing is written when it is returned.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (v ValidationErrors) Unwrap() error { return ErrValidation }

type validator struct {
	entity string
	errs   ValidationErrors
}

func (v *validator) add(field, msg string, args ...any) {
	v.errs = append(v.errs, ValidationError{Entity: v.entity, Field: field, Message: fmt.Sprintf(msg, args...)})
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

func (v *validator) positive(field string, d decimal.Decimal) {
	if !d.IsPositive() {
		v.add(field, "must be greater than zero, got %s", d.String())
	}
}

func (v *validator) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(field, "must not be negative, got %s", d.String())
	}
}

func (v *validator) currency(field string, c model.Currency) {
	if !c.Valid() {
		v.add(field, "unsupported currency %q", c)
	}
}

func (v *validator) window(start time.Time, end *time.Time) {
	if end != nil && end.Before(start) {
		v.add("endDate", "must not be before startDate")
	}
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

func validateAccount(a model.Account) error {
	v := validator{entity: "account"}
	v.required("name", a.Name)
	if !a.Type.Valid() {
		v.add("type", "unknown account type %q", a.Type)
	}
	v.currency("currency", a.Currency)
	return v.err()
}

func validateTransaction(t model.Transaction) error {
	v := validator{entity: "transaction"}
	v.positive("amount", t.Amount)
	if !t.Type.Valid() {
		v.add("type", "unknown transaction type %q", t.Type)
	}
	v.required("description", t.Description)
	v.required("accountId", t.AccountID)
	v.required("categoryId", t.CategoryID)
	if !t.RecurringFrequency.Valid() {
		v.add("recurringFrequency", "unknown frequency %q", t.RecurringFrequency)
	}
	if t.RecurringFrequency != "" && !t.IsRecurring {
		v.add("recurringFrequency", "set on a non-recurring transaction")
	}
	return v.err()
}

func validateCategory(c model.Category) error {
	v := validator{entity: "category"}
	v.required("name", c.Name)
	if !c.Type.Valid() {
		v.add("type", "unknown category type %q", c.Type)
	}
	return v.err()
}

func validateBudget(b model.Budget) error {
	v := validator{entity: "budget"}
	v.required("title", b.Title)
	v.required("categoryId", b.CategoryID)
	v.positive("amount", b.Amount)
	if !b.Period.Valid() {
		v.add("period", "unknown budget period %q", b.Period)
	}
	v.window(b.StartDate, b.EndDate)
	return v.err()
}

func validateSavingsGoal(g model.SavingsGoal) error {
	v := validator{entity: "savings goal"}
	v.required("name", g.Name)
	v.positive("targetAmount", g.TargetAmount)
	v.nonNegative("currentAmount", g.CurrentAmount)
	v.currency("currency", g.Currency)
	return v.err()
}

package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if input.Email != "" {
		if _, err := mail.ParseAddress(input.Email); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	// Lead de balcão pode chegar só com nome; mas sem nenhum contato não há
	// como atender.
	if input.Email == "" && input.Phone == "" {
		errors = append(errors, ValidationError{"contact", "email or phone is required"})
	}

	if input.InterestType != "" && !entity.PropertyPurpose(input.InterestType).Valid() {
		errors = append(errors, ValidationError{"interest_type", "must be venda, locacao or ambos"})
	}

	if input.BudgetMin != nil && *input.BudgetMin < 0 {
		errors = append(errors, ValidationError{"budget_min", "must not be negative"})
	}
	if input.BudgetMax != nil && *input.BudgetMax < 0 {
		errors = append(errors, ValidationError{"budget_max", "must not be negative"})
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		errors = append(errors, ValidationError{"budget_min", "must not exceed budget_max"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 11
}

package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type SaveLeadInput struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Company           string `json:"company"`
	InstagramHandle   string `json:"instagram_handle"`
	WhatsApp          string `json:"whatsapp"`
	Niche             string `json:"niche"`
	InterestedService string `json:"interested_service"`
	Status            string `json:"status"`
	ScriptID          string `json:"script_id"`
	ListID            string `json:"list_id"`
	Temperature       string `json:"temperature"`
	QuickNote         string `json:"quick_note"`
}

func ValidateSaveLeadInput(input SaveLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if input.InstagramHandle != "" && !isValidInstagramHandle(input.InstagramHandle) {
		errors = append(errors, ValidationError{"instagram_handle", "must start with @ followed by letters, numbers, dots or underscores"})
	}

	if input.WhatsApp != "" && !isValidPhoneNumber(input.WhatsApp) {
		errors = append(errors, ValidationError{"whatsapp", "must be a valid phone number"})
	}

	if input.Status != "" && !entity.LeadStatus(input.Status).Valid() {
		errors = append(errors, ValidationError{"status", "is not a known lead status"})
	}

	if input.Temperature != "" && !entity.Temperature(input.Temperature).Valid() {
		errors = append(errors, ValidationError{"temperature", "must be HOT, WARM or COLD"})
	}

	return errors
}

type SaveScriptInput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	IsDefault bool   `json:"is_default"`
}

func ValidateSaveScriptInput(input SaveScriptInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{"title", "is required"})
	}
	if strings.TrimSpace(input.Content) == "" {
		errors = append(errors, ValidationError{"content", "is required"})
	}
	if input.Type == "" {
		errors = append(errors, ValidationError{"type", "is required"})
	} else if !entity.ScriptType(input.Type).Valid() {
		errors = append(errors, ValidationError{"type", "is not a known script type"})
	}

	return errors
}

type SaveTransactionInput struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func ValidateSaveTransactionInput(input SaveTransactionInput) []ValidationError {
	var errors []ValidationError

	if input.Type != string(entity.TransactionIncome) && input.Type != string(entity.TransactionExpense) {
		errors = append(errors, ValidationError{"type", "must be INCOME or EXPENSE"})
	}
	if strings.TrimSpace(input.Description) == "" {
		errors = append(errors, ValidationError{"description", "is required"})
	}
	if input.Amount <= 0 {
		errors = append(errors, ValidationError{"amount", "must be greater than zero"})
	}
	if strings.TrimSpace(input.Date) == "" {
		errors = append(errors, ValidationError{"date", "is required"})
	} else if !isValidDate(input.Date) {
		errors = append(errors, ValidationError{"date", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

var (
	instagramHandleRegex = regexp.MustCompile(`^@[A-Za-z0-9._]{1,30}$`)
	phoneRegex           = regexp.MustCompile(`^\+?[\d\s\-()]{8,20}$`)
	dateRegex            = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func isValidInstagramHandle(handle string) bool {
	return instagramHandleRegex.MatchString(handle)
}

func isValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func isValidDate(date string) bool {
	return dateRegex.MatchString(date)
}

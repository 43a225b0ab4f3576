package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lucasferraz/prospecta/internal/usecase"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Code   string `json:"code"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs []usecase.ValidationError) {
	resp := ValidationErrorResponse{Code: "VALIDATION_ERROR"}
	for _, e := range errs {
		resp.Errors = append(resp.Errors, struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}{e.Field, e.Message})
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeUseCaseError traduz erros das usecases em status HTTP. Erros de
// domínio são culpa da requisição; erros técnicos, da infraestrutura.
func writeUseCaseError(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case usecase.CodeInvalidTransition, usecase.CodeWriteInFlight:
		status = http.StatusConflict
	case usecase.CodeInvalidOutcome, usecase.CodeScriptNotEligible, usecase.CodeValidationError:
		status = http.StatusBadRequest
	case usecase.CodeListNotFound:
		status = http.StatusNotFound
	case usecase.CodePersistenceFailure:
		status = http.StatusServiceUnavailable
	}

	if code == "" {
		code = "INTERNAL_ERROR"
	}
	writeErrorResponse(w, status, code, err.Error())
}

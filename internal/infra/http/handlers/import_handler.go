package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lucasferraz/prospecta/internal/infra/http/middleware"
	"github.com/lucasferraz/prospecta/internal/usecase"
)

type ImportHandler struct {
	importUseCase *usecase.ImportLeadsUseCase
}

func NewImportHandler(importUseCase *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{importUseCase: importUseCase}
}

func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var input usecase.ImportLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.importUseCase.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadsImported(output.Imported)
	writeJSON(w, http.StatusCreated, output)
}

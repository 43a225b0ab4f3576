package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/usecase"
)

type ScriptHandler struct {
	scriptRepo entity.ScriptRepositoryInterface
}

func NewScriptHandler(scriptRepo entity.ScriptRepositoryInterface) *ScriptHandler {
	return &ScriptHandler{scriptRepo: scriptRepo}
}

func (h *ScriptHandler) List(w http.ResponseWriter, r *http.Request) {
	scripts, err := h.scriptRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar scripts")
		return
	}
	if scripts == nil {
		scripts = []*entity.Script{}
	}
	writeJSON(w, http.StatusOK, scripts)
}

func (h *ScriptHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input usecase.SaveScriptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if errs := usecase.ValidateSaveScriptInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	script := &entity.Script{
		ID:        input.ID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      entity.ScriptType(input.Type),
		IsDefault: input.IsDefault,
	}

	created := false
	if script.ID == "" {
		script.ID = uuid.New().String()
		script.CreatedAt = time.Now()
		created = true
	} else {
		existing, err := h.scriptRepo.FindByID(r.Context(), script.ID)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, "SCRIPT_NOT_FOUND", "Script não encontrado")
			return
		}
		script.CreatedAt = existing.CreatedAt
	}

	if err := h.scriptRepo.Save(r.Context(), script); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar script")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, script)
}

func (h *ScriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scriptRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover script")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ListHandler struct {
	listRepo entity.ListRepositoryInterface
}

func NewListHandler(listRepo entity.ListRepositoryInterface) *ListHandler {
	return &ListHandler{listRepo: listRepo}
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.listRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar listas")
		return
	}
	if lists == nil {
		lists = []*entity.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}

type SaveListRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DefaultScriptID string `json:"default_script_id"`
}

func (h *ListHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	created := false
	var list *entity.List

	if req.ID == "" {
		newList, err := entity.NewList(req.Name, req.Description)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		list = newList
		created = true
	} else {
		existing, err := h.listRepo.FindByID(r.Context(), req.ID)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, "LIST_NOT_FOUND", "Lista não encontrada")
			return
		}
		if req.Name == "" {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required")
			return
		}
		existing.Name = req.Name
		existing.Description = req.Description
		list = existing
	}
	list.DefaultScriptID = req.DefaultScriptID

	if err := h.listRepo.Save(r.Context(), list); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar lista")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.listRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover lista")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

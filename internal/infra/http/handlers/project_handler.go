package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type ProjectHandler struct {
	projectRepo entity.ProjectRepositoryInterface
}

func NewProjectHandler(projectRepo entity.ProjectRepositoryInterface) *ProjectHandler {
	return &ProjectHandler{projectRepo: projectRepo}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar projetos")
		return
	}
	if projects == nil {
		projects = []*entity.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

type CreateProjectRequest struct {
	LeadID      string     `json:"lead_id"`
	Title       string     `json:"title"`
	ServiceType string     `json:"service_type"`
	AgreedValue float64    `json:"agreed_value"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	project, err := entity.NewProject(req.LeadID, req.Title, req.ServiceType, req.AgreedValue)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	project.Deadline = req.Deadline

	if err := h.projectRepo.Save(r.Context(), project); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao criar projeto")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

type MoveProjectRequest struct {
	Status string `json:"status"`
}

// Move muda o projeto de coluna na esteira de entrega.
func (h *ProjectHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MoveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	status := entity.ProjectStatus(req.Status)
	if !status.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "status de projeto desconhecido")
		return
	}

	project, err := h.projectRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "Projeto não encontrado")
		return
	}

	project.Status = status
	if err := h.projectRepo.Save(r.Context(), project); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao mover projeto")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

type ChecklistRequest struct {
	Checklist entity.ProjectChecklist `json:"checklist"`
}

func (h *ProjectHandler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	project, err := h.projectRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "Projeto não encontrado")
		return
	}

	project.Checklist = req.Checklist
	if err := h.projectRepo.Save(r.Context(), project); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao atualizar checklist")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.projectRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover projeto")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

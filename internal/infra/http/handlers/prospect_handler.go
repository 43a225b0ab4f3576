package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/infra/http/middleware"
	"github.com/lucasferraz/prospecta/internal/usecase"
)

// ProspectHandler expõe a sessão de prospecção por HTTP. Sistema de operador
// único: existe no máximo uma sessão viva por vez, guardada aqui.
type ProspectHandler struct {
	mu      sync.Mutex
	engine  *usecase.SessionEngine
	session *usecase.Session
}

func NewProspectHandler(engine *usecase.SessionEngine) *ProspectHandler {
	return &ProspectHandler{engine: engine}
}

func (h *ProspectHandler) current() *usecase.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

// CreateSession monta uma fila nova e descarta a sessão anterior, se houver.
func (h *ProspectHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.engine.BuildSession(r.Context())
	if err != nil {
		log.Printf("❌ Erro ao montar sessão: %v", err)
		writeUseCaseError(w, err)
		return
	}

	h.mu.Lock()
	h.session = session
	h.mu.Unlock()

	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// GetSession devolve a fotografia atual (404 se nenhuma sessão foi criada).
func (h *ProspectHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *ProspectHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	if err := session.Start(); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordSessionStart()
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (h *ProspectHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	if err := session.End(r.Context()); err != nil {
		writeUseCaseError(w, err)
		return
	}

	summary, err := session.Summary()
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *ProspectHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	summary, err := session.Summary()
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type OutcomeRequest struct {
	Status string `json:"status"`
}

func (h *ProspectHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	var req OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if err := session.RecordOutcome(r.Context(), entity.LeadStatus(req.Status)); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOutcome(req.Status)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type TouchRequest struct {
	Channel string `json:"channel"`
}

func (h *ProspectHandler) RecordTouch(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	var req TouchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if err := session.RecordTouch(r.Context(), req.Channel); err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordTouch(req.Channel)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type DraftRequest struct {
	Temperature *string `json:"temperature,omitempty"`
	QuickNote   *string `json:"quick_note,omitempty"`
	ScriptID    *string `json:"script_id,omitempty"`
}

// UpdateDraft aplica edições parciais no rascunho do lead atual. Campos
// omitidos ficam como estão.
func (h *ProspectHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	session := h.current()
	if session == nil {
		writeErrorResponse(w, http.StatusNotFound, "NO_SESSION", "Nenhuma sessão criada")
		return
	}

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if req.Temperature != nil {
		if err := session.SetTemperature(entity.Temperature(*req.Temperature)); err != nil {
			writeUseCaseError(w, err)
			return
		}
	}
	if req.QuickNote != nil {
		if err := session.SetNote(*req.QuickNote); err != nil {
			writeUseCaseError(w, err)
			return
		}
	}
	if req.ScriptID != nil {
		if err := session.SetScript(*req.ScriptID); err != nil {
			writeUseCaseError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, session.Snapshot())
}

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucasferraz/prospecta/internal/entity"
	"github.com/lucasferraz/prospecta/internal/usecase"
)

type LeadHandler struct {
	leadRepo    entity.LeadRepositoryInterface
	rateLimiter *RateLimiter
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		rateLimiter: NewRateLimiter(60, time.Minute), // 60 req/min por IP
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar leads")
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.leadRepo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.")
		return
	}

	var input usecase.SaveLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if errs := usecase.ValidateSaveLeadInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	lead := &entity.Lead{
		ID:                input.ID,
		Name:              input.Name,
		Company:           input.Company,
		InstagramHandle:   entity.NormalizeHandle(input.InstagramHandle),
		WhatsApp:          input.WhatsApp,
		Niche:             input.Niche,
		InterestedService: input.InterestedService,
		Status:            entity.LeadStatus(input.Status),
		ScriptID:          input.ScriptID,
		ListID:            input.ListID,
		Temperature:       entity.Temperature(input.Temperature),
		QuickNote:         input.QuickNote,
	}

	created := false
	if lead.ID == "" {
		lead.ID = uuid.New().String()
		lead.CreatedAt = time.Now()
		created = true
	} else {
		existing, err := h.leadRepo.FindByID(r.Context(), lead.ID)
		if err != nil {
			writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead não encontrado")
			return
		}
		lead.CreatedAt = existing.CreatedAt
		lead.LastAction = existing.LastAction
		lead.LastContactedAt = existing.LastContactedAt
	}
	if lead.Status == "" {
		lead.Status = entity.StatusNew
	}

	if err := h.leadRepo.Save(r.Context(), lead); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar lead")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, lead)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.leadRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover lead")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

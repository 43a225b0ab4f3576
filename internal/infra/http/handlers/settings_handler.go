package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type SettingsHandler struct {
	settingsRepo entity.SettingsRepositoryInterface
}

func NewSettingsHandler(settingsRepo entity.SettingsRepositoryInterface) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.Get(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao carregar configurações")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var settings entity.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	settings.ID = "default"

	if settings.DailyLimit < 0 {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "daily_limit must not be negative")
		return
	}
	if settings.AvgTicket < 0 {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "avg_ticket must not be negative")
		return
	}

	if err := h.settingsRepo.Save(r.Context(), &settings); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar configurações")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

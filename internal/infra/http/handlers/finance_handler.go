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

type FinanceHandler struct {
	txRepo entity.TransactionRepositoryInterface
}

func NewFinanceHandler(txRepo entity.TransactionRepositoryInterface) *FinanceHandler {
	return &FinanceHandler{txRepo: txRepo}
}

func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.txRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao listar transações")
		return
	}
	if transactions == nil {
		transactions = []*entity.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *FinanceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var input usecase.SaveTransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if errs := usecase.ValidateSaveTransactionInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "data inválida")
		return
	}

	tx := &entity.Transaction{
		ID:          input.ID,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        entity.TransactionType(input.Type),
		Category:    input.Category,
		Date:        date,
	}

	created := false
	if tx.ID == "" {
		tx.ID = uuid.New().String()
		tx.CreatedAt = time.Now()
		created = true
	}

	if err := h.txRepo.Save(r.Context(), tx); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao salvar transação")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, tx)
}

func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.txRepo.Delete(r.Context(), id); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao remover transação")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type FinanceSummary struct {
	TotalIncome  float64  `json:"total_income"`
	TotalExpense float64  `json:"total_expense"`
	NetProfit    float64  `json:"net_profit"`
	ROI          *float64 `json:"roi,omitempty"`
}

// Summary fecha o caixa: entradas, saídas, lucro e ROI. Sem despesa o ROI é
// indefinido (nil), não zero.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.txRepo.List(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao calcular resumo")
		return
	}

	var summary FinanceSummary
	for _, tx := range transactions {
		switch tx.Type {
		case entity.TransactionIncome:
			summary.TotalIncome += tx.Amount
		case entity.TransactionExpense:
			summary.TotalExpense += tx.Amount
		}
	}
	summary.NetProfit = summary.TotalIncome - summary.TotalExpense

	if summary.TotalExpense > 0 {
		roi := (summary.TotalIncome - summary.TotalExpense) / summary.TotalExpense * 100
		summary.ROI = &roi
	}

	writeJSON(w, http.StatusOK, summary)
}

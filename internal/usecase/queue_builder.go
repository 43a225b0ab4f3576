package usecase

import (
	"time"

	"github.com/lucasferraz/prospecta/internal/entity"
)

// FollowUpAfter é a janela a partir da qual um lead em negociação vira
// follow-up atrasado. 1 dia e 23 horas ainda não conta; 2 dias cheios sim.
const FollowUpAfter = 48 * time.Hour

// CoolingDownAfter marca leads esquecidos há tempo demais (dashboard).
const CoolingDownAfter = 5 * 24 * time.Hour

// IsOverdueFollowUp aplica a regra de prioridade de follow-up: status de
// negociação ativa, já contatado alguma vez, e sem contato há 48h ou mais.
func IsOverdueFollowUp(lead *entity.Lead, now time.Time) bool {
	switch lead.Status {
	case entity.StatusPending, entity.StatusInNegotiation, entity.StatusBudgetSent:
	default:
		return false
	}
	if lead.LastContactedAt == nil {
		return false
	}
	return now.Sub(*lead.LastContactedAt) >= FollowUpAfter
}

// BuildQueue monta a fila de trabalho de uma sessão:
//
//  1. follow-ups atrasados (relação esfriando, prioridade máxima);
//  2. leads novos (primeiro contato converte mais);
//  3. demais pendentes já fora da janela de descanso.
//
// Nenhum lead aparece duas vezes e qualquer outro status fica de fora. Um
// pendente contatado há menos de 48h está descansando: remontar a fila logo
// depois de uma sessão não o traz de volta.
func BuildQueue(allLeads, overdue []*entity.Lead, now time.Time) []*entity.Lead {
	seen := make(map[string]bool, len(allLeads))
	queue := make([]*entity.Lead, 0, len(allLeads))

	for _, lead := range overdue {
		if seen[lead.ID] {
			continue
		}
		seen[lead.ID] = true
		queue = append(queue, lead)
	}

	for _, lead := range allLeads {
		if lead.Status == entity.StatusNew && !seen[lead.ID] {
			seen[lead.ID] = true
			queue = append(queue, lead)
		}
	}

	for _, lead := range allLeads {
		if lead.Status != entity.StatusPending || seen[lead.ID] {
			continue
		}
		if lead.LastContactedAt != nil && now.Sub(*lead.LastContactedAt) < FollowUpAfter {
			continue
		}
		seen[lead.ID] = true
		queue = append(queue, lead)
	}

	return queue
}

// FilterOverdue é a versão em memória de ListOverdueFollowUps, para quando o
// chamador já tem todos os leads carregados.
func FilterOverdue(leads []*entity.Lead, now time.Time) []*entity.Lead {
	var overdue []*entity.Lead
	for _, lead := range leads {
		if IsOverdueFollowUp(lead, now) {
			overdue = append(overdue, lead)
		}
	}
	return overdue
}

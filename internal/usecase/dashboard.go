package usecase

import (
	"context"
	"math"
	"time"

	"github.com/lucasferraz/prospecta/internal/entity"
)

type FunnelStage struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Fill  string `json:"fill"`
}

type ServiceRevenue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DashboardStats struct {
	TotalLeads       int              `json:"total_leads"`
	NewLeads         int              `json:"new_leads"`
	ContactedLeads   int              `json:"contacted_leads"`
	PendingLeads     int              `json:"pending_leads"`
	RespondedLeads   int              `json:"responded_leads"`
	ClosedLeads      int              `json:"closed_leads"`
	ResponseRate     int              `json:"response_rate"`
	FunnelData       []FunnelStage    `json:"funnel_data"`
	FollowUpQueue    int              `json:"follow_up_queue"`
	CoolingDown      int              `json:"cooling_down"`
	RevenueByService []ServiceRevenue `json:"revenue_by_service"`
	ActiveProjects   int              `json:"active_projects"`
}

type DashboardUseCase struct {
	leadRepo    entity.LeadRepositoryInterface
	projectRepo entity.ProjectRepositoryInterface
	now         func() time.Time
}

func NewDashboardUseCase(
	leadRepo entity.LeadRepositoryInterface,
	projectRepo entity.ProjectRepositoryInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		leadRepo:    leadRepo,
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// Execute recalcula o painel inteiro a partir do banco. Sem cache: o volume
// de um operador solo não justifica.
func (uc *DashboardUseCase) Execute(ctx context.Context) (*DashboardStats, error) {
	leads, err := uc.leadRepo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao carregar leads: " + err.Error(),
			Err:     err,
		}
	}

	projects, err := uc.projectRepo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistenceFailure,
			Message: "falha ao carregar projetos: " + err.Error(),
			Err:     err,
		}
	}

	now := uc.now()
	stats := &DashboardStats{TotalLeads: len(leads)}

	for _, lead := range leads {
		switch lead.Status {
		case entity.StatusNew:
			stats.NewLeads++
		case entity.StatusContacted:
			stats.ContactedLeads++
		case entity.StatusPending, entity.StatusInNegotiation,
			entity.StatusBudgetSent, entity.StatusWaitingApproval:
			stats.PendingLeads++
		case entity.StatusResponded:
			stats.RespondedLeads++
		case entity.StatusClosed:
			stats.ClosedLeads++
		}

		// Fila inteligente: quem está em negociação e sumiu do radar.
		switch lead.Status {
		case entity.StatusPending, entity.StatusInNegotiation, entity.StatusBudgetSent:
			if lead.LastContactedAt != nil {
				elapsed := now.Sub(*lead.LastContactedAt)
				if elapsed >= FollowUpAfter && elapsed < CoolingDownAfter {
					stats.FollowUpQueue++
				}
				if elapsed >= CoolingDownAfter {
					stats.CoolingDown++
				}
			}
		}
	}

	approached := stats.ContactedLeads + stats.RespondedLeads + stats.PendingLeads + stats.ClosedLeads
	inNegotiation := stats.PendingLeads + stats.RespondedLeads

	stats.FunnelData = []FunnelStage{
		{Name: "Total", Value: stats.TotalLeads, Fill: "#64748b"},
		{Name: "Abordados", Value: approached, Fill: "#3b82f6"},
		{Name: "Negociação", Value: inNegotiation, Fill: "#8b5cf6"},
		{Name: "Fechados", Value: stats.ClosedLeads, Fill: "#f59e0b"},
	}

	if approached > 0 {
		responded := stats.RespondedLeads + stats.PendingLeads + stats.ClosedLeads
		stats.ResponseRate = int(math.Round(float64(responded) / float64(approached) * 100))
	}

	revenue := make(map[string]float64)
	order := []string{}
	for _, p := range projects {
		if _, ok := revenue[p.ServiceType]; !ok {
			order = append(order, p.ServiceType)
		}
		revenue[p.ServiceType] += p.AgreedValue
		if p.Status != entity.ProjectDelivered {
			stats.ActiveProjects++
		}
	}
	for _, name := range order {
		stats.RevenueByService = append(stats.RevenueByService, ServiceRevenue{Name: name, Value: revenue[name]})
	}

	return stats, nil
}

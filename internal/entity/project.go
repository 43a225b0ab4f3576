package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus é a esteira fixa de entrega.
type ProjectStatus string

const (
	ProjectBriefing   ProjectStatus = "BRIEFING"
	ProjectProduction ProjectStatus = "PRODUCTION"
	ProjectReview     ProjectStatus = "REVIEW"
	ProjectDelivered  ProjectStatus = "DELIVERED"
)

var projectStatusLabels = map[ProjectStatus]string{
	ProjectBriefing:   "Briefing",
	ProjectProduction: "Produção",
	ProjectReview:     "Aprovação/Ajustes",
	ProjectDelivered:  "Entregue",
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectStatusLabels[s]
	return ok
}

func (s ProjectStatus) Label() string {
	if label, ok := projectStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ProjectChecklist são os 5 marcos de entrega de um projeto criativo.
type ProjectChecklist struct {
	Briefing       bool `json:"briefing"`
	Deposit        bool `json:"deposit"`
	LayoutApproval bool `json:"layout_approval"`
	FinalPayment   bool `json:"final_payment"`
	Delivery       bool `json:"delivery"`
}

type Project struct {
	ID          string           `json:"id"`
	LeadID      string           `json:"lead_id"`
	LeadName    string           `json:"lead_name,omitempty"`
	Title       string           `json:"title"`
	ServiceType string           `json:"service_type"`
	AgreedValue float64          `json:"agreed_value"`
	StartDate   time.Time        `json:"start_date"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	Status      ProjectStatus    `json:"status"`
	Checklist   ProjectChecklist `json:"checklist"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewProject(leadID, title, serviceType string, agreedValue float64) (*Project, error) {
	project := &Project{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		Title:       title,
		ServiceType: serviceType,
		AgreedValue: agreedValue,
		StartDate:   time.Now(),
		Status:      ProjectBriefing,
		CreatedAt:   time.Now(),
	}

	if err := project.Validate(); err != nil {
		return nil, err
	}

	return project, nil
}

func (p *Project) Validate() error {
	if p.LeadID == "" {
		return errors.New("lead_id is required")
	}
	if p.Title == "" {
		return errors.New("title is required")
	}
	if !p.Status.Valid() {
		return errors.New("invalid project status")
	}
	return nil
}

type ProjectRepositoryInterface interface {
	List(ctx context.Context) ([]*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	Save(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

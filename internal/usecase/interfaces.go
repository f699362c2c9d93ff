package usecase

import (
	"context"

	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error
}

type EmailService interface {
	SendStaleLeadAlert(to, leadName string, status string, hoursSinceUpdate int64) error
	SendStatusChangeNotice(to, leadName, oldStatus, newStatus string) error
}

// SnapshotInvalidator abstrai o cache de visões: depois de uma mutação o
// usecase invalida os snapshots dependentes, o core continua puro.
type SnapshotInvalidator interface {
	Invalidate(prefix string)
}

type CreateLeadInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	InterestType   string   `json:"interest_type"`
	PropertyTypeID string   `json:"property_type_id"`
	BudgetMin      *float64 `json:"budget_min"`
	BudgetMax      *float64 `json:"budget_max"`
	Source         string   `json:"source"`
	AssignedTo     string   `json:"assigned_to"`
	Notes          string   `json:"notes"`
}

type UpdateLeadInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Status         string   `json:"status"`
	InterestType   string   `json:"interest_type"`
	PropertyTypeID string   `json:"property_type_id"`
	BudgetMin      *float64 `json:"budget_min"`
	BudgetMax      *float64 `json:"budget_max"`
	Source         string   `json:"source"`
	AssignedTo     string   `json:"assigned_to"`
	Notes          string   `json:"notes"`
}

// StaleLeadInfo é a saída do pipeline de staleness, consumida direto pela
// apresentação (lista de alertas e badge).
type StaleLeadInfo struct {
	Lead             *entity.Lead        `json:"lead"`
	HoursSinceUpdate int64               `json:"hours_since_update"`
	ThresholdHours   int64               `json:"threshold_hours"`
	UrgencyLevel     entity.UrgencyLevel `json:"urgency_level"`
}

type DashboardStats struct {
	ActiveProperties int                       `json:"active_properties"`
	TotalLeads       int                       `json:"total_leads"`
	LeadsByStatus    map[entity.LeadStatus]int `json:"leads_by_status"`
	ActiveRentals    int                       `json:"active_rentals"`
	MonthlyRevenue   float64                   `json:"monthly_revenue"`
}

type MonthlyLeadStats struct {
	Month    string `json:"month"` // YYYY-MM
	Label    string `json:"label"` // Jan, Fev, ...
	Novos    int    `json:"novos"`
	Fechados int    `json:"fechados"`
	Perdidos int    `json:"perdidos"`
	Total    int    `json:"total"`
}

type MonthlyRevenueStats struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type MonthlyStats struct {
	Leads   []MonthlyLeadStats    `json:"leads"`
	Revenue []MonthlyRevenueStats `json:"revenue"`
}

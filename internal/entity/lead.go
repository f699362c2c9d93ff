package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// LeadStatus é um enum fechado: qualquer valor fora da tabela é rejeitado
// na borda, nunca aceito silenciosamente.
type LeadStatus string

const (
	StatusNovo          LeadStatus = "novo"
	StatusEmAtendimento LeadStatus = "em_atendimento"
	StatusQualificado   LeadStatus = "qualificado"
	StatusProposta      LeadStatus = "proposta"
	StatusFechado       LeadStatus = "fechado"
	StatusPerdido       LeadStatus = "perdido"
)

// LeadStatusOrder define a ordem das colunas do kanban.
var LeadStatusOrder = []LeadStatus{
	StatusNovo,
	StatusEmAtendimento,
	StatusQualificado,
	StatusProposta,
	StatusFechado,
	StatusPerdido,
}

var ErrInvalidLeadStatus = errors.New("status de lead inválido")

// ParseLeadStatus valida a string contra o enum fechado.
func ParseLeadStatus(s string) (LeadStatus, error) {
	status := LeadStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", ErrInvalidLeadStatus
	}
	return status, nil
}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNovo, StatusEmAtendimento, StatusQualificado,
		StatusProposta, StatusFechado, StatusPerdido:
		return true
	}
	return false
}

// Terminal indica fechado/perdido: leads encerrados saem do pipeline de
// staleness e nunca voltam a gerar alerta.
func (s LeadStatus) Terminal() bool {
	return s == StatusFechado || s == StatusPerdido
}

// Entidade: Lead
type Lead struct {
	ID             string          `json:"id"`
	RealEstateID   string          `json:"real_estate_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Status         LeadStatus      `json:"status"`
	InterestType   PropertyPurpose `json:"interest_type,omitempty"`
	PropertyTypeID string          `json:"property_type_id,omitempty"`
	BudgetMin      *float64        `json:"budget_min,omitempty"`
	BudgetMax      *float64        `json:"budget_max,omitempty"`
	Source         string          `json:"source,omitempty"`
	AssignedTo     string          `json:"assigned_to,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Factory: todo lead nasce "novo", com relógio de staleness zerado.
func NewLead(realEstateID, name string) (*Lead, error) {
	lead := &Lead{
		ID:           uuid.New().String(),
		RealEstateID: realEstateID,
		Name:         name,
		Status:       StatusNovo,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.RealEstateID == "" {
		return errors.New("real_estate_id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if !l.Status.Valid() {
		return ErrInvalidLeadStatus
	}
	if l.BudgetMin != nil && l.BudgetMax != nil && *l.BudgetMin > *l.BudgetMax {
		return errors.New("budget_min must not exceed budget_max")
	}
	return nil
}

// LeadFilters parametriza a listagem (busca textual, status, interesse).
type LeadFilters struct {
	Search       string
	Status       LeadStatus
	InterestType PropertyPurpose
}

type LeadRepositoryInterface interface {
	List(ctx context.Context, realEstateID string, filters LeadFilters) ([]*Lead, error)
	// ListActive exclui fechado/perdido; é o snapshot que alimenta o
	// pipeline de staleness.
	ListActive(ctx context.Context, realEstateID string) ([]*Lead, error)
	ListCreatedSince(ctx context.Context, realEstateID string, since time.Time) ([]*Lead, error)
	FindByID(ctx context.Context, realEstateID, id string) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	// UpsertByEmail atende o formulário público: reenvio do mesmo e-mail
	// atualiza o contato em vez de duplicar o lead.
	UpsertByEmail(ctx context.Context, lead *Lead) error
	Update(ctx context.Context, lead *Lead) error
	// UpdateStatus grava status + updated_at em um único UPDATE ...
	// RETURNING, para nenhum leitor observar par inconsistente.
	UpdateStatus(ctx context.Context, realEstateID, id string, status LeadStatus, now time.Time) (*Lead, error)
	Delete(ctx context.Context, realEstateID, id string) error
}

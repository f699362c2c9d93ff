package usecase

import (
	"context"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

// DashboardStatsUseCase agrega os contadores da tela inicial. Todos os
// números saem de um único fetch por entidade — nunca misture leads de dois
// snapshots numa mesma passada.
type DashboardStatsUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	PropertyRepo    entity.PropertyRepositoryInterface
	RentalRepo      entity.RentalRepositoryInterface
	InstallmentRepo entity.InstallmentRepositoryInterface
	Now             func() time.Time
}

func NewDashboardStatsUseCase(
	leadRepo entity.LeadRepositoryInterface,
	propertyRepo entity.PropertyRepositoryInterface,
	rentalRepo entity.RentalRepositoryInterface,
	installmentRepo entity.InstallmentRepositoryInterface,
) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{
		LeadRepo:        leadRepo,
		PropertyRepo:    propertyRepo,
		RentalRepo:      rentalRepo,
		InstallmentRepo: installmentRepo,
		Now:             time.Now,
	}
}

func (uc *DashboardStatsUseCase) Execute(ctx context.Context, realEstateID string) (*DashboardStats, error) {
	activeProperties, err := uc.PropertyRepo.CountByStatus(ctx, realEstateID, entity.PropertyDisponivel)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao contar imóveis: " + err.Error()}
	}

	leads, err := uc.LeadRepo.List(ctx, realEstateID, entity.LeadFilters{})
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao buscar leads: " + err.Error()}
	}

	activeRentals, err := uc.RentalRepo.CountByStatus(ctx, realEstateID, entity.RentalAtivo)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao contar contratos: " + err.Error()}
	}

	// Faturamento do mês corrente: só parcelas pagas, pelo payment_date.
	now := uc.Now()
	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, 0)

	paid, err := uc.InstallmentRepo.ListPaidBetween(ctx, realEstateID, monthStart, monthEnd)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "falha ao somar faturamento: " + err.Error()}
	}

	revenue := 0.0
	for _, inst := range paid {
		if inst.PaidValue != nil {
			revenue += *inst.PaidValue
		}
	}

	totalLeads := 0
	for _, lead := range leads {
		if !lead.Status.Terminal() {
			totalLeads++
		}
	}

	return &DashboardStats{
		ActiveProperties: activeProperties,
		TotalLeads:       totalLeads,
		LeadsByStatus:    CountByStatus(leads),
		ActiveRentals:    activeRentals,
		MonthlyRevenue:   revenue,
	}, nil
}

// CountByStatus devolve sempre as seis chaves do enum, zeradas quando não há
// lead — a distribuição do dashboard precisa de colunas estáveis.
func CountByStatus(leads []*entity.Lead) map[entity.LeadStatus]int {
	counts := make(map[entity.LeadStatus]int, len(entity.LeadStatusOrder))
	for _, status := range entity.LeadStatusOrder {
		counts[status] = 0
	}
	for _, lead := range leads {
		if lead.Status.Valid() {
			counts[lead.Status]++
		}
	}
	return counts
}

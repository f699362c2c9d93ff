package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vrcosta/imob-backoffice/internal/entity"
)

func TestLeadsByMonthAlwaysReturnsAllBuckets(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	// Nenhum lead: todos os buckets existem, zerados, na ordem certa.
	months := LeadsByMonth(nil, now, 6)

	assert.Len(t, months, 6)
	assert.Equal(t, "2026-01", months[0].Month)
	assert.Equal(t, "Jan", months[0].Label)
	assert.Equal(t, "2026-06", months[5].Month)
	assert.Equal(t, "Jun", months[5].Label)
	for _, m := range months {
		assert.Zero(t, m.Total)
	}
}

func TestLeadsByMonthCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	months := LeadsByMonth(nil, now, 6)

	assert.Len(t, months, 6)
	assert.Equal(t, "2025-09", months[0].Month)
	assert.Equal(t, "Set", months[0].Label)
	assert.Equal(t, "2025-12", months[3].Month)
	assert.Equal(t, "Dez", months[3].Label)
	assert.Equal(t, "2026-01", months[4].Month)
	assert.Equal(t, "2026-02", months[5].Month)
}

func TestLeadsByMonthCountsCurrentStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	leads := []*entity.Lead{
		{ID: "1", Status: entity.StatusNovo, CreatedAt: april},
		// Criado em abril, fechado depois: conta como fechado no bucket de
		// abril (o particionamento é por created_at, o contador pelo status
		// ATUAL).
		{ID: "2", Status: entity.StatusFechado, CreatedAt: april},
		{ID: "3", Status: entity.StatusPerdido, CreatedAt: april},
		{ID: "4", Status: entity.StatusQualificado, CreatedAt: april},
		// Fora da janela.
		{ID: "5", Status: entity.StatusNovo, CreatedAt: now.AddDate(-1, 0, 0)},
	}

	months := LeadsByMonth(leads, now, 6)

	abril := months[3] // Jan..Jun, abril é o 4º
	assert.Equal(t, "2026-04", abril.Month)
	assert.Equal(t, 4, abril.Total)
	assert.Equal(t, 1, abril.Novos)
	assert.Equal(t, 1, abril.Fechados)
	assert.Equal(t, 1, abril.Perdidos)
}

func TestRevenueByMonthBucketsByPaymentDate(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	may := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	june := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	v1, v2, v3 := 1800.0, 2200.0, 950.0

	installments := []*entity.RentalInstallment{
		{ID: "a", PaymentDate: &may, PaidValue: &v1},
		{ID: "b", PaymentDate: &may, PaidValue: &v2},
		{ID: "c", PaymentDate: &june, PaidValue: &v3},
		// Sem payment_date: fica fora de qualquer bucket.
		{ID: "d", PaymentDate: nil, PaidValue: &v1},
	}

	months := RevenueByMonth(installments, now, 6)

	assert.Len(t, months, 6)
	assert.Equal(t, "2026-05", months[4].Month)
	assert.Equal(t, 4000.0, months[4].Revenue)
	assert.Equal(t, "2026-06", months[5].Month)
	assert.Equal(t, 950.0, months[5].Revenue)
	assert.Zero(t, months[0].Revenue)
}

func TestRevenueByMonthBoundaryCountsOnce(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	// Baixa exatamente na virada do mês: pertence a junho, nunca a maio.
	turnOfMonth := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	v := 1000.0

	months := RevenueByMonth([]*entity.RentalInstallment{
		{ID: "a", PaymentDate: &turnOfMonth, PaidValue: &v},
	}, now, 6)

	assert.Equal(t, "2026-05", months[4].Month)
	assert.Zero(t, months[4].Revenue)
	assert.Equal(t, "2026-06", months[5].Month)
	assert.Equal(t, 1000.0, months[5].Revenue)
}

func TestMonthlyStatsExecute(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	mockLeadRepo := new(MockLeadRepository)
	mockInstRepo := new(MockInstallmentRepository)

	windowStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mockLeadRepo.On("ListCreatedSince", mock.Anything, "re-001", windowStart).
		Return([]*entity.Lead{}, nil)
	mockInstRepo.On("ListPaidBetween", mock.Anything, "re-001", windowStart, now).
		Return([]*entity.RentalInstallment{}, nil)

	uc := NewMonthlyStatsUseCase(mockLeadRepo, mockInstRepo)
	uc.Now = func() time.Time { return now }

	stats, err := uc.Execute(context.Background(), "re-001")

	assert.NoError(t, err)
	assert.Len(t, stats.Leads, DefaultMonthsBack)
	assert.Len(t, stats.Revenue, DefaultMonthsBack)
	mockLeadRepo.AssertExpectations(t)
	mockInstRepo.AssertExpectations(t)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

// DefaultMonthsBack é a janela dos gráficos do dashboard.
const DefaultMonthsBack = 6

// Rótulos curtos pt-BR, já capitalizados para o gráfico.
var monthLabels = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

type MonthlyStatsUseCase struct {
	LeadRepo        entity.LeadRepositoryInterface
	InstallmentRepo entity.InstallmentRepositoryInterface
	Now             func() time.Time
}

func NewMonthlyStatsUseCase(
	leadRepo entity.LeadRepositoryInterface,
	installmentRepo entity.InstallmentRepositoryInterface,
) *MonthlyStatsUseCase {
	return &MonthlyStatsUseCase{
		LeadRepo:        leadRepo,
		InstallmentRepo: installmentRepo,
		Now:             time.Now,
	}
}

func (uc *MonthlyStatsUseCase) Execute(ctx context.Context, realEstateID string) (*MonthlyStats, error) {
	now := uc.Now()
	windowStart := startOfMonth(now).AddDate(0, -(DefaultMonthsBack - 1), 0)

	leads, err := uc.LeadRepo.ListCreatedSince(ctx, realEstateID, windowStart)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao buscar leads do período: " + err.Error(),
		}
	}

	paid, err := uc.InstallmentRepo.ListPaidBetween(ctx, realEstateID, windowStart, now)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao buscar pagamentos do período: " + err.Error(),
		}
	}

	return &MonthlyStats{
		Leads:   LeadsByMonth(leads, now, DefaultMonthsBack),
		Revenue: RevenueByMonth(paid, now, DefaultMonthsBack),
	}, nil
}

// LeadsByMonth particiona por mês-calendário de created_at e devolve
// exatamente monthsBack buckets, do mais antigo para o mais novo — mês sem
// lead vira bucket zerado, nunca é omitido. Os contadores novos/fechados/
// perdidos olham o status ATUAL do lead, não o da época da criação.
func LeadsByMonth(leads []*entity.Lead, referenceDate time.Time, monthsBack int) []MonthlyLeadStats {
	months := make([]MonthlyLeadStats, 0, monthsBack)

	for i := monthsBack - 1; i >= 0; i-- {
		bucketStart := startOfMonth(referenceDate).AddDate(0, -i, 0)
		bucketEnd := bucketStart.AddDate(0, 1, 0)

		stats := MonthlyLeadStats{
			Month: monthKey(bucketStart),
			Label: monthLabels[bucketStart.Month()-1],
		}

		for _, lead := range leads {
			if lead.CreatedAt.Before(bucketStart) || !lead.CreatedAt.Before(bucketEnd) {
				continue
			}
			stats.Total++
			switch lead.Status {
			case entity.StatusNovo:
				stats.Novos++
			case entity.StatusFechado:
				stats.Fechados++
			case entity.StatusPerdido:
				stats.Perdidos++
			}
		}

		months = append(months, stats)
	}

	return months
}

// RevenueByMonth particiona por payment_date (não por criação) e soma
// paid_value. Parcela sem payment_date fica fora por completo — não existe
// bucket "desconhecido".
func RevenueByMonth(installments []*entity.RentalInstallment, referenceDate time.Time, monthsBack int) []MonthlyRevenueStats {
	months := make([]MonthlyRevenueStats, 0, monthsBack)

	for i := monthsBack - 1; i >= 0; i-- {
		bucketStart := startOfMonth(referenceDate).AddDate(0, -i, 0)
		bucketEnd := bucketStart.AddDate(0, 1, 0)

		stats := MonthlyRevenueStats{
			Month: monthKey(bucketStart),
			Label: monthLabels[bucketStart.Month()-1],
		}

		for _, inst := range installments {
			if inst.PaymentDate == nil {
				continue
			}
			paidAt := *inst.PaymentDate
			if paidAt.Before(bucketStart) || !paidAt.Before(bucketEnd) {
				continue
			}
			if inst.PaidValue != nil {
				stats.Revenue += *inst.PaidValue
			}
		}

		months = append(months, stats)
	}

	return months
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

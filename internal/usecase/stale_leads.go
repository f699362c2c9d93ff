package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
)

// ListStaleLeadsUseCase monta a lista de leads parados: busca os leads
// abertos da imobiliária, classifica cada um pela tabela de thresholds e
// devolve só quem já passou da metade do prazo, do mais crítico para o
// menos.
type ListStaleLeadsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Now      func() time.Time
}

func NewListStaleLeadsUseCase(leadRepo entity.LeadRepositoryInterface) *ListStaleLeadsUseCase {
	return &ListStaleLeadsUseCase{
		LeadRepo: leadRepo,
		Now:      time.Now,
	}
}

func (uc *ListStaleLeadsUseCase) Execute(ctx context.Context, realEstateID string) ([]StaleLeadInfo, error) {
	leads, err := uc.LeadRepo.ListActive(ctx, realEstateID)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: fmt.Sprintf("falha ao buscar leads: %v", err),
		}
	}

	return BuildStaleList(leads, uc.Now()), nil
}

// BuildStaleList é o núcleo puro do pipeline. Regras:
//  1. fechado/perdido nunca entram (filtrados ANTES de classificar — com
//     threshold infinito a conta 0.5x não teria sentido);
//  2. horas truncadas para baixo;
//  3. updated_at zerado (registro malformado) vira critical por convenção,
//     para nunca sumir da lista de atenção;
//  4. "recent" fica de fora, "attention" fica dentro;
//  5. ordenação estável: critical > urgent > attention, empate decidido pelo
//     updated_at mais antigo.
func BuildStaleList(leads []*entity.Lead, now time.Time) []StaleLeadInfo {
	stale := make([]StaleLeadInfo, 0, len(leads))

	for _, lead := range leads {
		if lead.Status.Terminal() {
			continue
		}

		threshold, ok := entity.ThresholdHoursFor(lead.Status)
		if !ok {
			continue
		}

		if lead.UpdatedAt.IsZero() {
			stale = append(stale, StaleLeadInfo{
				Lead:             lead,
				HoursSinceUpdate: entity.HoursSince(now, lead.CreatedAt),
				ThresholdHours:   threshold,
				UrgencyLevel:     entity.UrgencyCritical,
			})
			continue
		}

		hours := entity.HoursSince(now, lead.UpdatedAt)
		urgency := entity.ClassifyUrgency(hours, threshold)
		if urgency == entity.UrgencyRecent {
			continue
		}

		stale = append(stale, StaleLeadInfo{
			Lead:             lead,
			HoursSinceUpdate: hours,
			ThresholdHours:   threshold,
			UrgencyLevel:     urgency,
		})
	}

	sort.SliceStable(stale, func(i, j int) bool {
		if stale[i].UrgencyLevel != stale[j].UrgencyLevel {
			return stale[i].UrgencyLevel.Rank() < stale[j].UrgencyLevel.Rank()
		}
		return stale[i].Lead.UpdatedAt.Before(stale[j].Lead.UpdatedAt)
	})

	return stale
}

// CountAlertLeads conta só urgent/critical — é o número do badge, attention
// aparece na lista mas não conta.
func CountAlertLeads(stale []StaleLeadInfo) int {
	count := 0
	for _, info := range stale {
		if info.UrgencyLevel.Alerting() {
			count++
		}
	}
	return count
}

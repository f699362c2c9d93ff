package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/middleware"
	"github.com/vrcosta/imob-backoffice/internal/infra/queue"
)

// TransitionLeadStatusUseCase move um card no kanban. Não existe ordem
// obrigatória de workflow: qualquer status do enum pode seguir qualquer
// outro. Repetir o status atual também grava — e zera o relógio de
// staleness, comportamento assumido aqui como snooze deliberado.
type TransitionLeadStatusUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Queue     QueueProducerInterface
	Snapshots SnapshotInvalidator
	Now       func() time.Time
}

func NewTransitionLeadStatusUseCase(
	leadRepo entity.LeadRepositoryInterface,
	producer QueueProducerInterface,
	snapshots SnapshotInvalidator,
) *TransitionLeadStatusUseCase {
	return &TransitionLeadStatusUseCase{
		LeadRepo:  leadRepo,
		Queue:     producer,
		Snapshots: snapshots,
		Now:       time.Now,
	}
}

func (uc *TransitionLeadStatusUseCase) Execute(ctx context.Context, realEstateID, leadID, newStatus string) (*entity.Lead, error) {
	status, err := entity.ParseLeadStatus(newStatus)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeInvalidTransition,
			Message: fmt.Sprintf("status %q não existe no pipeline", newStatus),
		}
	}

	current, err := uc.LeadRepo.FindByID(ctx, realEstateID, leadID)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeNotFound,
			Message: "lead não encontrado: " + err.Error(),
		}
	}
	oldStatus := current.Status

	// Um único UPDATE grava status + updated_at; leitor nenhum enxerga o
	// par pela metade.
	updated, err := uc.LeadRepo.UpdateStatus(ctx, realEstateID, leadID, status, uc.Now())
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao gravar transição: " + err.Error(),
		}
	}

	middleware.RecordLeadTransition(string(oldStatus), string(updated.Status))

	if uc.Snapshots != nil {
		uc.Snapshots.Invalidate("leads")
		uc.Snapshots.Invalidate("dashboard")
	}

	// A notificação é melhor-esforço: a transição já está no banco, falha
	// na fila não desfaz nada.
	if uc.Queue != nil {
		payload := queue.LeadEventPayload{
			Event:        queue.EventStatusChanged,
			LeadID:       updated.ID,
			RealEstateID: updated.RealEstateID,
			Name:         updated.Name,
			Email:        updated.Email,
			AssignedTo:   updated.AssignedTo,
			OldStatus:    string(oldStatus),
			NewStatus:    string(updated.Status),
		}
		if err := uc.Queue.PublishLeadEvent(ctx, payload); err != nil {
			log.Printf("⚠️ Transição gravada, mas falha na fila: %v", err)
		}
	}

	return updated, nil
}

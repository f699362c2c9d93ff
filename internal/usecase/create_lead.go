package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vrcosta/imob-backoffice/internal/entity"
)

type CreateLeadUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Snapshots SnapshotInvalidator
}

func NewCreateLeadUseCase(leadRepo entity.LeadRepositoryInterface, snapshots SnapshotInvalidator) *CreateLeadUseCase {
	return &CreateLeadUseCase{LeadRepo: leadRepo, Snapshots: snapshots}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, realEstateID string, input CreateLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateCreateLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: errMsg,
		}
	}

	lead := &entity.Lead{
		ID:             uuid.New().String(),
		RealEstateID:   realEstateID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Status:         entity.StatusNovo,
		InterestType:   entity.PropertyPurpose(input.InterestType),
		PropertyTypeID: input.PropertyTypeID,
		BudgetMin:      input.BudgetMin,
		BudgetMax:      input.BudgetMax,
		Source:         input.Source,
		AssignedTo:     input.AssignedTo,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao salvar lead: " + err.Error(),
		}
	}

	if uc.Snapshots != nil {
		uc.Snapshots.Invalidate("leads")
		uc.Snapshots.Invalidate("dashboard")
	}

	return lead, nil
}

type UpdateLeadUseCase struct {
	LeadRepo  entity.LeadRepositoryInterface
	Snapshots SnapshotInvalidator
}

func NewUpdateLeadUseCase(leadRepo entity.LeadRepositoryInterface, snapshots SnapshotInvalidator) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{LeadRepo: leadRepo, Snapshots: snapshots}
}

// Execute substitui os campos editáveis do lead inteiro. Mudança de status
// por aqui também carimba updated_at — mesma semântica da transição.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, realEstateID, leadID string, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, realEstateID, leadID)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeNotFound,
			Message: "lead não encontrado: " + err.Error(),
		}
	}

	if input.Status != "" {
		status, err := entity.ParseLeadStatus(input.Status)
		if err != nil {
			return nil, &DomainError{
				Code:    CodeInvalidTransition,
				Message: "status inválido: " + input.Status,
			}
		}
		lead.Status = status
	}

	lead.Name = input.Name
	lead.Email = input.Email
	lead.Phone = input.Phone
	lead.InterestType = entity.PropertyPurpose(input.InterestType)
	lead.PropertyTypeID = input.PropertyTypeID
	lead.BudgetMin = input.BudgetMin
	lead.BudgetMax = input.BudgetMax
	lead.Source = input.Source
	lead.AssignedTo = input.AssignedTo
	lead.Notes = input.Notes
	lead.UpdatedAt = time.Now()

	if err := lead.Validate(); err != nil {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: err.Error(),
		}
	}

	if err := uc.LeadRepo.Update(ctx, lead); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao atualizar lead: " + err.Error(),
		}
	}

	if uc.Snapshots != nil {
		uc.Snapshots.Invalidate("leads")
		uc.Snapshots.Invalidate("dashboard")
	}

	return lead, nil
}

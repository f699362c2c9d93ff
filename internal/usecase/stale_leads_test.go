package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vrcosta/imob-backoffice/internal/entity"
)

func leadWith(id string, status entity.LeadStatus, updatedAt time.Time) *entity.Lead {
	return &entity.Lead{
		ID:           id,
		RealEstateID: "re-001",
		Name:         "Lead " + id,
		Status:       status,
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
}

func TestBuildStaleListClassification(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	leads := []*entity.Lead{
		// novo há 10h (threshold 24h) -> recent, fica fora.
		leadWith("recente", entity.StatusNovo, now.Add(-10*time.Hour)),
		// novo há 20h -> attention, entra na lista.
		leadWith("atencao", entity.StatusNovo, now.Add(-20*time.Hour)),
		// em_atendimento há 100h (threshold 48h) -> critical.
		leadWith("critico", entity.StatusEmAtendimento, now.Add(-100*time.Hour)),
		// fechado há 500h -> terminal, nunca entra.
		leadWith("fechado", entity.StatusFechado, now.Add(-500*time.Hour)),
	}

	stale := BuildStaleList(leads, now)

	assert.Len(t, stale, 2)
	assert.Equal(t, "critico", stale[0].Lead.ID)
	assert.Equal(t, entity.UrgencyCritical, stale[0].UrgencyLevel)
	assert.Equal(t, int64(100), stale[0].HoursSinceUpdate)
	assert.Equal(t, int64(48), stale[0].ThresholdHours)

	assert.Equal(t, "atencao", stale[1].Lead.ID)
	assert.Equal(t, entity.UrgencyAttention, stale[1].UrgencyLevel)
}

func TestBuildStaleListOrdersBySeverityThenAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	leads := []*entity.Lead{
		leadWith("urgente-novo", entity.StatusNovo, now.Add(-25*time.Hour)),
		leadWith("urgente-velho", entity.StatusNovo, now.Add(-30*time.Hour)),
		leadWith("critico", entity.StatusNovo, now.Add(-40*time.Hour)),
	}

	stale := BuildStaleList(leads, now)

	assert.Len(t, stale, 3)
	assert.Equal(t, "critico", stale[0].Lead.ID)
	// Empate em urgency: o updated_at mais antigo vem primeiro.
	assert.Equal(t, "urgente-velho", stale[1].Lead.ID)
	assert.Equal(t, "urgente-novo", stale[2].Lead.ID)
}

func TestBuildStaleListMalformedRecordIsCritical(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	lead := leadWith("quebrado", entity.StatusNovo, time.Time{})
	lead.CreatedAt = now.Add(-3 * time.Hour)

	stale := BuildStaleList([]*entity.Lead{lead}, now)

	assert.Len(t, stale, 1)
	assert.Equal(t, entity.UrgencyCritical, stale[0].UrgencyLevel)
	// Sem updated_at, as horas vêm do created_at.
	assert.Equal(t, int64(3), stale[0].HoursSinceUpdate)
}

func TestBuildStaleListEmpty(t *testing.T) {
	stale := BuildStaleList(nil, time.Now())
	assert.NotNil(t, stale)
	assert.Empty(t, stale)
}

func TestCountAlertLeads(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	leads := []*entity.Lead{
		leadWith("a", entity.StatusNovo, now.Add(-20*time.Hour)),  // attention
		leadWith("b", entity.StatusNovo, now.Add(-25*time.Hour)),  // urgent
		leadWith("c", entity.StatusNovo, now.Add(-100*time.Hour)), // critical
	}

	stale := BuildStaleList(leads, now)

	// attention aparece na lista mas não conta no badge.
	assert.Len(t, stale, 3)
	assert.Equal(t, 2, CountAlertLeads(stale))

	assert.Equal(t, 0, CountAlertLeads(nil))
}

func TestListStaleLeadsExecute(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mockRepo := new(MockLeadRepository)
	mockRepo.On("ListActive", mock.Anything, "re-001").Return([]*entity.Lead{
		leadWith("parado", entity.StatusQualificado, now.Add(-80*time.Hour)),
	}, nil)

	uc := NewListStaleLeadsUseCase(mockRepo)
	uc.Now = func() time.Time { return now }

	stale, err := uc.Execute(context.Background(), "re-001")

	assert.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.Equal(t, entity.UrgencyUrgent, stale[0].UrgencyLevel)
	mockRepo.AssertExpectations(t)
}

func TestListStaleLeadsExecuteRepositoryError(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("ListActive", mock.Anything, "re-001").Return(nil, errors.New("conexão caiu"))

	uc := NewListStaleLeadsUseCase(mockRepo)

	_, err := uc.Execute(context.Background(), "re-001")

	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, "DATABASE_ERROR", techErr.Code)
}

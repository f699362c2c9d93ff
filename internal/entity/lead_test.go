package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLeadStatus(t *testing.T) {
	status, err := ParseLeadStatus("em_atendimento")
	assert.NoError(t, err)
	assert.Equal(t, StatusEmAtendimento, status)

	// Espaços nas bordas são tolerados.
	status, err = ParseLeadStatus("  proposta ")
	assert.NoError(t, err)
	assert.Equal(t, StatusProposta, status)

	_, err = ParseLeadStatus("negociando")
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)

	_, err = ParseLeadStatus("")
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)

	// Case-sensitive: o enum é fechado de verdade.
	_, err = ParseLeadStatus("NOVO")
	assert.ErrorIs(t, err, ErrInvalidLeadStatus)
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusFechado.Terminal())
	assert.True(t, StatusPerdido.Terminal())
	assert.False(t, StatusNovo.Terminal())
	assert.False(t, StatusProposta.Terminal())
}

func TestNewLeadDefaults(t *testing.T) {
	lead, err := NewLead("re-001", "Maria Souza")

	assert.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "re-001", lead.RealEstateID)
	assert.Equal(t, StatusNovo, lead.Status)
	assert.False(t, lead.CreatedAt.IsZero())
	assert.False(t, lead.UpdatedAt.IsZero())
}

func TestNewLeadRequiresNameAndTenant(t *testing.T) {
	_, err := NewLead("re-001", "   ")
	assert.Error(t, err)

	_, err = NewLead("", "Maria Souza")
	assert.Error(t, err)
}

func TestLeadValidateBudgetRange(t *testing.T) {
	min := 500000.0
	max := 300000.0

	lead, err := NewLead("re-001", "Carlos Lima")
	assert.NoError(t, err)

	lead.BudgetMin = &min
	lead.BudgetMax = &max
	assert.Error(t, lead.Validate())

	// Faixa coerente passa.
	lead.BudgetMax = &min
	lead.BudgetMin = &max
	assert.NoError(t, lead.Validate())
}

package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalAtivo      RentalStatus = "ativo"
	RentalEncerrado  RentalStatus = "encerrado"
	RentalRescindido RentalStatus = "rescindido"
	RentalRenovado   RentalStatus = "renovado"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalAtivo, RentalEncerrado, RentalRescindido, RentalRenovado:
		return true
	}
	return false
}

type GuaranteeType string

const (
	GuaranteeCaucao             GuaranteeType = "caucao"
	GuaranteeFiador             GuaranteeType = "fiador"
	GuaranteeSeguroFianca       GuaranteeType = "seguro_fianca"
	GuaranteeTituloCapitalizado GuaranteeType = "titulo_capitalizacao"
)

type InstallmentStatus string

const (
	InstallmentPendente  InstallmentStatus = "pendente"
	InstallmentPago      InstallmentStatus = "pago"
	InstallmentAtrasado  InstallmentStatus = "atrasado"
	InstallmentCancelado InstallmentStatus = "cancelado"
)

func (s InstallmentStatus) Valid() bool {
	switch s {
	case InstallmentPendente, InstallmentPago, InstallmentAtrasado, InstallmentCancelado:
		return true
	}
	return false
}

var ErrInvalidRentalStatus = errors.New("status de contrato inválido")

// Entidade: Rental (contrato de locação)
type Rental struct {
	ID           string       `json:"id"`
	RealEstateID string       `json:"real_estate_id"`
	PropertyID   string       `json:"property_id,omitempty"`
	Code         string       `json:"code,omitempty"`
	Status       RentalStatus `json:"status"`

	RentValue      float64  `json:"rent_value"`
	CondominiumFee *float64 `json:"condominium_fee,omitempty"`
	IPTU           *float64 `json:"iptu,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	GuaranteeType        GuaranteeType `json:"guarantee_type,omitempty"`
	GuaranteeValue       *float64      `json:"guarantee_value,omitempty"`
	GuaranteeDescription string        `json:"guarantee_description,omitempty"`

	AdjustmentIndex string    `json:"adjustment_index,omitempty"`
	AdjustmentMonth int       `json:"adjustment_month,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedBy       string    `json:"created_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Factory: contrato novo entra ativo.
func NewRental(realEstateID, propertyID string, rentValue float64, start, end time.Time) (*Rental, error) {
	rental := &Rental{
		ID:           uuid.New().String(),
		RealEstateID: realEstateID,
		PropertyID:   propertyID,
		Status:       RentalAtivo,
		RentValue:    rentValue,
		StartDate:    start,
		EndDate:      end,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := rental.Validate(); err != nil {
		return nil, err
	}

	return rental, nil
}

func (r *Rental) Validate() error {
	if r.RealEstateID == "" {
		return errors.New("real_estate_id is required")
	}
	if r.RentValue <= 0 {
		return errors.New("rent_value must be positive")
	}
	if !r.EndDate.After(r.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	if !r.Status.Valid() {
		return ErrInvalidRentalStatus
	}
	return nil
}

// RentalInstallment: parcela mensal do contrato. PaymentDate/PaidValue só
// existem depois da baixa; parcela sem payment_date nunca entra no
// faturamento.
type RentalInstallment struct {
	ID             string            `json:"id"`
	RentalID       string            `json:"rental_id"`
	ReferenceMonth string            `json:"reference_month"` // YYYY-MM
	Status         InstallmentStatus `json:"status"`

	RentValue      float64  `json:"rent_value"`
	CondominiumFee *float64 `json:"condominium_fee,omitempty"`
	IPTU           *float64 `json:"iptu,omitempty"`
	LateFee        *float64 `json:"late_fee,omitempty"`
	Discount       *float64 `json:"discount,omitempty"`
	OtherCharges   *float64 `json:"other_charges,omitempty"`
	TotalValue     float64  `json:"total_value"`

	DueDate     time.Time  `json:"due_date"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	PaidValue   *float64   `json:"paid_value,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewInstallment(rentalID, referenceMonth string, rentValue, totalValue float64, dueDate time.Time) *RentalInstallment {
	return &RentalInstallment{
		ID:             uuid.New().String(),
		RentalID:       rentalID,
		ReferenceMonth: referenceMonth,
		Status:         InstallmentPendente,
		RentValue:      rentValue,
		TotalValue:     totalValue,
		DueDate:        dueDate,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

type RentalRepositoryInterface interface {
	List(ctx context.Context, realEstateID string) ([]*Rental, error)
	FindByID(ctx context.Context, realEstateID, id string) (*Rental, error)
	CountByStatus(ctx context.Context, realEstateID string, status RentalStatus) (int, error)
	Create(ctx context.Context, rental *Rental) error
	Update(ctx context.Context, rental *Rental) error
	Delete(ctx context.Context, realEstateID, id string) error
}

type InstallmentRepositoryInterface interface {
	ListByRental(ctx context.Context, rentalID string) ([]*RentalInstallment, error)
	FindByID(ctx context.Context, id string) (*RentalInstallment, error)
	Create(ctx context.Context, inst *RentalInstallment) error
	// Pay faz a baixa: status pago + payment_date + paid_value em um UPDATE.
	// Escopada pelo contrato já conferido contra o tenant: parcela de outro
	// rental nunca é atingida.
	Pay(ctx context.Context, rentalID, id string, paymentDate time.Time, paidValue float64) (*RentalInstallment, error)
	// ListPaidBetween alimenta o faturamento mensal (filtra por payment_date).
	ListPaidBetween(ctx context.Context, realEstateID string, from, to time.Time) ([]*RentalInstallment, error)
	// MarkOverdue vira pendente -> atrasado para parcelas vencidas.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

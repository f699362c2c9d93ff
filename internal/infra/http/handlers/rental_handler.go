package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/middleware"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

type RentalHandler struct {
	RentalRepo      entity.RentalRepositoryInterface
	InstallmentRepo entity.InstallmentRepositoryInterface
	Snapshots       *cache.Store
}

func NewRentalHandler(
	rentalRepo entity.RentalRepositoryInterface,
	installmentRepo entity.InstallmentRepositoryInterface,
	snapshots *cache.Store,
) *RentalHandler {
	return &RentalHandler{
		RentalRepo:      rentalRepo,
		InstallmentRepo: installmentRepo,
		Snapshots:       snapshots,
	}
}

func (h *RentalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	rentals, err := h.RentalRepo.List(r.Context(), tenant)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if rentals == nil {
		rentals = []*entity.Rental{}
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	rental, err := h.RentalRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rental)
}

type RentalInput struct {
	PropertyID           string               `json:"property_id"`
	Code                 string               `json:"code"`
	Status               entity.RentalStatus  `json:"status"`
	RentValue            float64              `json:"rent_value"`
	CondominiumFee       *float64             `json:"condominium_fee"`
	IPTU                 *float64             `json:"iptu"`
	StartDate            time.Time            `json:"start_date"`
	EndDate              time.Time            `json:"end_date"`
	GuaranteeType        entity.GuaranteeType `json:"guarantee_type"`
	GuaranteeValue       *float64             `json:"guarantee_value"`
	GuaranteeDescription string               `json:"guarantee_description"`
	AdjustmentIndex      string               `json:"adjustment_index"`
	AdjustmentMonth      int                  `json:"adjustment_month"`
	Notes                string               `json:"notes"`
}

func (h *RentalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	var input RentalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	rental, err := entity.NewRental(tenant, input.PropertyID, input.RentValue, input.StartDate, input.EndDate)
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}
	applyRentalInput(rental, input)

	if err := h.RentalRepo.Create(r.Context(), rental); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	writeJSON(w, http.StatusCreated, rental)
}

func (h *RentalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	rental, err := h.RentalRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	var input RentalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	rental.RentValue = input.RentValue
	rental.StartDate = input.StartDate
	rental.EndDate = input.EndDate
	applyRentalInput(rental, input)
	if input.Status != "" {
		rental.Status = input.Status
	}
	rental.UpdatedAt = time.Now()

	if err := rental.Validate(); err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}

	if err := h.RentalRepo.Update(r.Context(), rental); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	if err := h.RentalRepo.Delete(r.Context(), tenant, chi.URLParam(r, "id")); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) HandleListInstallments(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	// Confere que o contrato pertence à imobiliária antes de listar.
	rental, err := h.RentalRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	installments, err := h.InstallmentRepo.ListByRental(r.Context(), rental.ID)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if installments == nil {
		installments = []*entity.RentalInstallment{}
	}
	writeJSON(w, http.StatusOK, installments)
}

type InstallmentInput struct {
	ReferenceMonth string    `json:"reference_month"`
	RentValue      float64   `json:"rent_value"`
	TotalValue     float64   `json:"total_value"`
	DueDate        time.Time `json:"due_date"`
}

func (h *RentalHandler) HandleCreateInstallment(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	rental, err := h.RentalRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	var input InstallmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	inst := entity.NewInstallment(rental.ID, input.ReferenceMonth, input.RentValue, input.TotalValue, input.DueDate)
	if err := h.InstallmentRepo.Create(r.Context(), inst); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, inst)
}

type PayInstallmentRequest struct {
	PaymentDate time.Time `json:"payment_date"`
	PaidValue   float64   `json:"paid_value"`
}

// HandlePayInstallment dá baixa na parcela; baixa alimenta o faturamento do
// dashboard, então o snapshot cai junto.
func (h *RentalHandler) HandlePayInstallment(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	rental, err := h.RentalRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	var req PayInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	if req.PaidValue <= 0 {
		writeError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "paid_value deve ser positivo"})
		return
	}

	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	// A baixa leva o rental já resolvido sob o tenant: o repositório só
	// atinge parcelas desse contrato.
	inst, err := h.InstallmentRepo.Pay(r.Context(), rental.ID, chi.URLParam(r, "installmentId"), paymentDate, req.PaidValue)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	middleware.RecordInstallmentPaid()
	h.Snapshots.Invalidate("dashboard")
	writeJSON(w, http.StatusOK, inst)
}

func applyRentalInput(rental *entity.Rental, input RentalInput) {
	rental.PropertyID = input.PropertyID
	rental.Code = input.Code
	rental.CondominiumFee = input.CondominiumFee
	rental.IPTU = input.IPTU
	rental.GuaranteeType = input.GuaranteeType
	rental.GuaranteeValue = input.GuaranteeValue
	rental.GuaranteeDescription = input.GuaranteeDescription
	rental.AdjustmentIndex = input.AdjustmentIndex
	rental.AdjustmentMonth = input.AdjustmentMonth
	rental.Notes = input.Notes
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

type PropertyHandler struct {
	PropertyRepo entity.PropertyRepositoryInterface
	TypeRepo     entity.PropertyTypeRepositoryInterface
	PhotoRepo    entity.PropertyPhotoRepositoryInterface
	Snapshots    *cache.Store
}

func NewPropertyHandler(
	propertyRepo entity.PropertyRepositoryInterface,
	typeRepo entity.PropertyTypeRepositoryInterface,
	photoRepo entity.PropertyPhotoRepositoryInterface,
	snapshots *cache.Store,
) *PropertyHandler {
	return &PropertyHandler{
		PropertyRepo: propertyRepo,
		TypeRepo:     typeRepo,
		PhotoRepo:    photoRepo,
		Snapshots:    snapshots,
	}
}

func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	filters := entity.PropertyFilters{
		Search:         r.URL.Query().Get("search"),
		PropertyTypeID: r.URL.Query().Get("property_type_id"),
		Purpose:        entity.PropertyPurpose(r.URL.Query().Get("purpose")),
		Status:         entity.PropertyStatus(r.URL.Query().Get("status")),
	}

	properties, err := h.PropertyRepo.List(r.Context(), tenant, filters)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if properties == nil {
		properties = []*entity.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	property, err := h.PropertyRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	// Detalhe carrega as fotos junto, na ordem da galeria.
	photos, err := h.PhotoRepo.ListByProperty(r.Context(), property.ID)
	if err == nil {
		property.Photos = photos
	}

	writeJSON(w, http.StatusOK, property)
}

type PropertyInput struct {
	Code           string                 `json:"code"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	PropertyTypeID string                 `json:"property_type_id"`
	Purpose        entity.PropertyPurpose `json:"purpose"`
	Status         entity.PropertyStatus  `json:"status"`
	Address        string                 `json:"address"`
	Number         string                 `json:"number"`
	Complement     string                 `json:"complement"`
	Neighborhood   string                 `json:"neighborhood"`
	City           string                 `json:"city"`
	State          string                 `json:"state"`
	ZipCode        string                 `json:"zip_code"`
	Bedrooms       int                    `json:"bedrooms"`
	Bathrooms      int                    `json:"bathrooms"`
	Suites         int                    `json:"suites"`
	ParkingSpaces  int                    `json:"parking_spaces"`
	AreaTotal      *float64               `json:"area_total"`
	AreaUtil       *float64               `json:"area_util"`
	SalePrice      *float64               `json:"sale_price"`
	RentPrice      *float64               `json:"rent_price"`
	CondominiumFee *float64               `json:"condominium_fee"`
	IPTU           *float64               `json:"iptu"`
	Featured       bool                   `json:"featured"`
	Published      bool                   `json:"published"`
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	var input PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	property, err := entity.NewProperty(tenant, input.Title, input.Purpose)
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}
	applyPropertyInput(property, input)

	if err := h.PropertyRepo.Create(r.Context(), property); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	writeJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	property, err := h.PropertyRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	var input PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	property.Title = input.Title
	applyPropertyInput(property, input)
	if input.Status != "" {
		property.Status = input.Status
	}
	property.UpdatedAt = time.Now()

	if err := property.Validate(); err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: err.Error()})
		return
	}

	if err := h.PropertyRepo.Update(r.Context(), property); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	if err := h.PropertyRepo.Delete(r.Context(), tenant, chi.URLParam(r, "id")); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("dashboard")
	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) HandleListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.TypeRepo.List(r.Context())
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if types == nil {
		types = []*entity.PropertyType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *PropertyHandler) HandleListPhotos(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	// Resolve o imóvel sob o tenant antes de expor as fotos.
	property, err := h.PropertyRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	photos, err := h.PhotoRepo.ListByProperty(r.Context(), property.ID)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if photos == nil {
		photos = []*entity.PropertyPhoto{}
	}
	writeJSON(w, http.StatusOK, photos)
}

type PhotoInput struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	IsCover    bool   `json:"is_cover"`
	OrderIndex int    `json:"order_index"`
}

// HandleAddPhoto registra a URL da foto — o upload do binário acontece
// direto no storage, fora daqui.
func (h *PropertyHandler) HandleAddPhoto(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	property, err := h.PropertyRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	var input PhotoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	if input.URL == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "url é obrigatória"})
		return
	}

	photo := &entity.PropertyPhoto{
		ID:         uuid.New().String(),
		PropertyID: property.ID,
		URL:        input.URL,
		Title:      input.Title,
		IsCover:    input.IsCover,
		OrderIndex: input.OrderIndex,
		CreatedAt:  time.Now(),
	}

	if err := h.PhotoRepo.Create(r.Context(), photo); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, photo)
}

func (h *PropertyHandler) HandleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	property, err := h.PropertyRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	if err := h.PhotoRepo.Delete(r.Context(), property.ID, chi.URLParam(r, "photoId")); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func applyPropertyInput(p *entity.Property, input PropertyInput) {
	p.Code = input.Code
	p.Description = input.Description
	p.PropertyTypeID = input.PropertyTypeID
	if input.Purpose != "" {
		p.Purpose = input.Purpose
	}
	p.Address = input.Address
	p.Number = input.Number
	p.Complement = input.Complement
	p.Neighborhood = input.Neighborhood
	p.City = input.City
	p.State = input.State
	p.ZipCode = input.ZipCode
	p.Bedrooms = input.Bedrooms
	p.Bathrooms = input.Bathrooms
	p.Suites = input.Suites
	p.ParkingSpaces = input.ParkingSpaces
	p.AreaTotal = input.AreaTotal
	p.AreaUtil = input.AreaUtil
	p.SalePrice = input.SalePrice
	p.RentPrice = input.RentPrice
	p.CondominiumFee = input.CondominiumFee
	p.IPTU = input.IPTU
	p.Featured = input.Featured
	p.Published = input.Published
}

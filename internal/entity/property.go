package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyPurpose: finalidade do imóvel (e também o interesse do lead).
type PropertyPurpose string

const (
	PurposeVenda   PropertyPurpose = "venda"
	PurposeLocacao PropertyPurpose = "locacao"
	PurposeAmbos   PropertyPurpose = "ambos"
)

func (p PropertyPurpose) Valid() bool {
	switch p {
	case PurposeVenda, PurposeLocacao, PurposeAmbos:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyDisponivel PropertyStatus = "disponivel"
	PropertyVendido    PropertyStatus = "vendido"
	PropertyLocado     PropertyStatus = "locado"
	PropertyReservado  PropertyStatus = "reservado"
	PropertyInativo    PropertyStatus = "inativo"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyDisponivel, PropertyVendido, PropertyLocado,
		PropertyReservado, PropertyInativo:
		return true
	}
	return false
}

var (
	ErrInvalidPropertyStatus  = errors.New("status de imóvel inválido")
	ErrInvalidPropertyPurpose = errors.New("finalidade de imóvel inválida")
)

// Entidade: Property (imóvel)
type Property struct {
	ID             string          `json:"id"`
	RealEstateID   string          `json:"real_estate_id"`
	Code           string          `json:"code,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	PropertyTypeID string          `json:"property_type_id,omitempty"`
	Purpose        PropertyPurpose `json:"purpose"`
	Status         PropertyStatus  `json:"status"`

	Address      string `json:"address,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`

	Bedrooms      int      `json:"bedrooms,omitempty"`
	Bathrooms     int      `json:"bathrooms,omitempty"`
	Suites        int      `json:"suites,omitempty"`
	ParkingSpaces int      `json:"parking_spaces,omitempty"`
	AreaTotal     *float64 `json:"area_total,omitempty"`
	AreaUtil      *float64 `json:"area_util,omitempty"`

	SalePrice      *float64 `json:"sale_price,omitempty"`
	RentPrice      *float64 `json:"rent_price,omitempty"`
	CondominiumFee *float64 `json:"condominium_fee,omitempty"`
	IPTU           *float64 `json:"iptu,omitempty"`

	Featured  bool      `json:"featured"`
	Published bool      `json:"published"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Photos []*PropertyPhoto `json:"photos,omitempty"`
}

// Factory: imóvel novo entra disponível e não publicado.
func NewProperty(realEstateID, title string, purpose PropertyPurpose) (*Property, error) {
	property := &Property{
		ID:           uuid.New().String(),
		RealEstateID: realEstateID,
		Title:        title,
		Purpose:      purpose,
		Status:       PropertyDisponivel,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := property.Validate(); err != nil {
		return nil, err
	}

	return property, nil
}

func (p *Property) Validate() error {
	if p.RealEstateID == "" {
		return errors.New("real_estate_id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if !p.Purpose.Valid() {
		return ErrInvalidPropertyPurpose
	}
	if !p.Status.Valid() {
		return ErrInvalidPropertyStatus
	}
	return nil
}

// PropertyType: tabela de tipos (apartamento, casa, sala comercial...).
type PropertyType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PropertyPhoto guarda apenas a URL; o binário mora no storage externo.
type PropertyPhoto struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	URL        string    `json:"url"`
	Title      string    `json:"title,omitempty"`
	IsCover    bool      `json:"is_cover"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

type PropertyFilters struct {
	Search         string
	PropertyTypeID string
	Purpose        PropertyPurpose
	Status         PropertyStatus
}

type PropertyRepositoryInterface interface {
	List(ctx context.Context, realEstateID string, filters PropertyFilters) ([]*Property, error)
	FindByID(ctx context.Context, realEstateID, id string) (*Property, error)
	CountByStatus(ctx context.Context, realEstateID string, status PropertyStatus) (int, error)
	Create(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, realEstateID, id string) error
}

type PropertyTypeRepositoryInterface interface {
	List(ctx context.Context) ([]*PropertyType, error)
}

type PropertyPhotoRepositoryInterface interface {
	ListByProperty(ctx context.Context, propertyID string) ([]*PropertyPhoto, error)
	// Create com is_cover=true desmarca a capa anterior na mesma operação.
	Create(ctx context.Context, photo *PropertyPhoto) error
	// Delete exige o imóvel já resolvido sob o tenant: foto de outro imóvel
	// não é atingida.
	Delete(ctx context.Context, propertyID, id string) error
}

package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context, realEstateID string, filters entity.LeadFilters) ([]*entity.Lead, error) {
	args := m.Called(ctx, realEstateID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListActive(ctx context.Context, realEstateID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, realEstateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ListCreatedSince(ctx context.Context, realEstateID string, since time.Time) ([]*entity.Lead, error) {
	args := m.Called(ctx, realEstateID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Lead, error) {
	args := m.Called(ctx, realEstateID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpsertByEmail(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, realEstateID, id string, status entity.LeadStatus, now time.Time) (*entity.Lead, error) {
	args := m.Called(ctx, realEstateID, id, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, realEstateID, id string) error {
	args := m.Called(ctx, realEstateID, id)
	return args.Error(0)
}

// MockPropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) List(ctx context.Context, realEstateID string, filters entity.PropertyFilters) ([]*entity.Property, error) {
	args := m.Called(ctx, realEstateID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Property, error) {
	args := m.Called(ctx, realEstateID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountByStatus(ctx context.Context, realEstateID string, status entity.PropertyStatus) (int, error) {
	args := m.Called(ctx, realEstateID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, realEstateID, id string) error {
	args := m.Called(ctx, realEstateID, id)
	return args.Error(0)
}

// MockRentalRepository
type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) List(ctx context.Context, realEstateID string) ([]*entity.Rental, error) {
	args := m.Called(ctx, realEstateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rental), args.Error(1)
}

func (m *MockRentalRepository) FindByID(ctx context.Context, realEstateID, id string) (*entity.Rental, error) {
	args := m.Called(ctx, realEstateID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rental), args.Error(1)
}

func (m *MockRentalRepository) CountByStatus(ctx context.Context, realEstateID string, status entity.RentalStatus) (int, error) {
	args := m.Called(ctx, realEstateID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *entity.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) Update(ctx context.Context, rental *entity.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) Delete(ctx context.Context, realEstateID, id string) error {
	args := m.Called(ctx, realEstateID, id)
	return args.Error(0)
}

// MockInstallmentRepository
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) ListByRental(ctx context.Context, rentalID string) ([]*entity.RentalInstallment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RentalInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByID(ctx context.Context, id string) (*entity.RentalInstallment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RentalInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) Create(ctx context.Context, inst *entity.RentalInstallment) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Pay(ctx context.Context, rentalID, id string, paymentDate time.Time, paidValue float64) (*entity.RentalInstallment, error) {
	args := m.Called(ctx, rentalID, id, paymentDate, paidValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RentalInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) ListPaidBetween(ctx context.Context, realEstateID string, from, to time.Time) ([]*entity.RentalInstallment, error) {
	args := m.Called(ctx, realEstateID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RentalInstallment), args.Error(1)
}

func (m *MockInstallmentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadEvent(ctx context.Context, payload queue.LeadEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockSnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Invalidate(prefix string) {
	m.Called(prefix)
}

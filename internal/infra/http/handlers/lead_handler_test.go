package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
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

func newTestLeadHandler(repo *MockLeadRepository) *LeadHandler {
	snapshots := cache.NewStore()
	return NewLeadHandler(
		repo,
		usecase.NewCreateLeadUseCase(repo, snapshots),
		usecase.NewUpdateLeadUseCase(repo, snapshots),
		usecase.NewTransitionLeadStatusUseCase(repo, nil, snapshots),
		usecase.NewListStaleLeadsUseCase(repo),
		snapshots,
	)
}

// ============ TESTES DO HANDLER ============

func TestHandleListRequiresTenantHeader(t *testing.T) {
	handler := newTestLeadHandler(new(MockLeadRepository))

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rr := httptest.NewRecorder()

	handler.HandleList(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Contains(t, resp.Error, TenantHeader)
}

func TestHandleBoardReturnsAllColumns(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("List", mock.Anything, "re-001", entity.LeadFilters{}).
		Return([]*entity.Lead{
			{ID: "1", Status: entity.StatusNovo},
			{ID: "2", Status: entity.StatusProposta},
		}, nil)

	handler := newTestLeadHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/leads/board", nil)
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleBoard(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var board []KanbanColumn
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))

	// Seis colunas na ordem do pipeline, presentes mesmo vazias.
	assert.Len(t, board, 6)
	assert.Equal(t, entity.StatusNovo, board[0].Status)
	assert.Len(t, board[0].Leads, 1)
	assert.Equal(t, entity.StatusPerdido, board[5].Status)
	assert.NotNil(t, board[5].Leads)
	assert.Empty(t, board[5].Leads)
}

func newRequestWithChiParam(method, target, paramKey, paramValue string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(paramKey, paramValue)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleTransitionSuccess(t *testing.T) {
	now := time.Now()
	current := &entity.Lead{ID: "lead-1", RealEstateID: "re-001", Name: "Maria", Status: entity.StatusProposta}
	updated := &entity.Lead{ID: "lead-1", RealEstateID: "re-001", Name: "Maria", Status: entity.StatusFechado, UpdatedAt: now}

	mockRepo := new(MockLeadRepository)
	mockRepo.On("FindByID", mock.Anything, "re-001", "lead-1").Return(current, nil)
	mockRepo.On("UpdateStatus", mock.Anything, "re-001", "lead-1", entity.StatusFechado, mock.Anything).
		Return(updated, nil)

	handler := newTestLeadHandler(mockRepo)

	body, _ := json.Marshal(TransitionRequest{Status: "fechado"})
	req := newRequestWithChiParam(http.MethodPatch, "/leads/lead-1/status", "id", "lead-1", body)
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleTransition(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var lead entity.Lead
	json.Unmarshal(rr.Body.Bytes(), &lead)
	assert.Equal(t, entity.StatusFechado, lead.Status)
	mockRepo.AssertExpectations(t)
}

func TestHandleTransitionInvalidStatus(t *testing.T) {
	handler := newTestLeadHandler(new(MockLeadRepository))

	body, _ := json.Marshal(TransitionRequest{Status: "negociando"})
	req := newRequestWithChiParam(http.MethodPatch, "/leads/lead-1/status", "id", "lead-1", body)
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleTransition(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ErrorResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Equal(t, usecase.CodeInvalidTransition, resp.Code)
}

func TestHandleStaleServesCachedSnapshot(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	handler := newTestLeadHandler(mockRepo)

	// Snapshot fresco no cache: o repositório nem é consultado.
	gen := handler.Snapshots.Begin("leads:stale:re-001")
	handler.Snapshots.Complete("leads:stale:re-001", gen, []usecase.StaleLeadInfo{})

	req := httptest.NewRequest(http.MethodGet, "/leads/stale", nil)
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleStale(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockRepo.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)
}

func TestHandleStaleFetchFailureWithoutSnapshot(t *testing.T) {
	// Sem snapshot anterior para servir, a falha do banco vira 500.
	mockRepo := new(MockLeadRepository)
	mockRepo.On("ListActive", mock.Anything, "re-002").Return(nil, errors.New("banco fora"))

	handler := newTestLeadHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/leads/stale", nil)
	req.Header.Set(TenantHeader, "re-002")
	rr := httptest.NewRecorder()

	handler.HandleStale(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleStaleCount(t *testing.T) {
	now := time.Now()
	mockRepo := new(MockLeadRepository)
	mockRepo.On("ListActive", mock.Anything, "re-001").Return([]*entity.Lead{
		{ID: "1", Status: entity.StatusNovo, UpdatedAt: now.Add(-20 * time.Hour), CreatedAt: now.Add(-20 * time.Hour)},  // attention
		{ID: "2", Status: entity.StatusNovo, UpdatedAt: now.Add(-100 * time.Hour), CreatedAt: now.Add(-100 * time.Hour)}, // critical
	}, nil)

	handler := newTestLeadHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/leads/stale/count", nil)
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleStaleCount(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp StaleCountResponse
	json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.Equal(t, 1, resp.Count)
}

func TestHandleCaptureRequiresEmail(t *testing.T) {
	handler := newTestLeadHandler(new(MockLeadRepository))

	body, _ := json.Marshal(CaptureLeadRequest{Name: "Sem Email"})
	req := httptest.NewRequest(http.MethodPost, "/leads/capture", bytes.NewReader(body))
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleCapture(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleCaptureUpserts(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpsertByEmail", mock.Anything, mock.MatchedBy(func(lead *entity.Lead) bool {
		return lead.Email == "visitante@example.com" && lead.Source == "site" &&
			lead.Status == entity.StatusNovo
	})).Return(nil)

	handler := newTestLeadHandler(mockRepo)

	body, _ := json.Marshal(CaptureLeadRequest{Name: "Visitante", Email: "visitante@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/leads/capture", bytes.NewReader(body))
	req.Header.Set(TenantHeader, "re-001")
	rr := httptest.NewRecorder()

	handler.HandleCapture(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockRepo.AssertExpectations(t)
}

func TestHandleCaptureRateLimit(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpsertByEmail", mock.Anything, mock.Anything).Return(nil)

	handler := newTestLeadHandler(mockRepo)

	body, _ := json.Marshal(CaptureLeadRequest{Name: "Robô", Email: "robo@example.com"})

	var lastCode int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/leads/capture", bytes.NewReader(body))
		req.Header.Set(TenantHeader, "re-001")
		req.Header.Set("X-Real-IP", "10.0.0.99")
		rr := httptest.NewRecorder()

		handler.HandleCapture(rr, req)
		lastCode = rr.Code
	}

	// A 11ª requisição do mesmo IP dentro da janela é recusada.
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/middleware"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

// TTLs de snapshot por visão (as telas fazem refresh nesses intervalos).
const (
	staleListTTL = 5 * time.Minute
)

type LeadHandler struct {
	LeadRepo     entity.LeadRepositoryInterface
	CreateUC     *usecase.CreateLeadUseCase
	UpdateUC     *usecase.UpdateLeadUseCase
	TransitionUC *usecase.TransitionLeadStatusUseCase
	StaleUC      *usecase.ListStaleLeadsUseCase
	Snapshots    *cache.Store
	rateLimiter  *RateLimiter
}

func NewLeadHandler(
	leadRepo entity.LeadRepositoryInterface,
	createUC *usecase.CreateLeadUseCase,
	updateUC *usecase.UpdateLeadUseCase,
	transitionUC *usecase.TransitionLeadStatusUseCase,
	staleUC *usecase.ListStaleLeadsUseCase,
	snapshots *cache.Store,
) *LeadHandler {
	return &LeadHandler{
		LeadRepo:     leadRepo,
		CreateUC:     createUC,
		UpdateUC:     updateUC,
		TransitionUC: transitionUC,
		StaleUC:      staleUC,
		Snapshots:    snapshots,
		rateLimiter:  NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	filters := entity.LeadFilters{
		Search:       r.URL.Query().Get("search"),
		Status:       entity.LeadStatus(r.URL.Query().Get("status")),
		InterestType: entity.PropertyPurpose(r.URL.Query().Get("interest_type")),
	}

	leads, err := h.LeadRepo.List(r.Context(), tenant, filters)
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

type KanbanColumn struct {
	Status entity.LeadStatus `json:"status"`
	Leads  []*entity.Lead    `json:"leads"`
}

// HandleBoard devolve as colunas na ordem fixa do pipeline, todas presentes
// mesmo vazias.
func (h *LeadHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	leads, err := h.LeadRepo.List(r.Context(), tenant, entity.LeadFilters{})
	if err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	byStatus := make(map[entity.LeadStatus][]*entity.Lead)
	for _, lead := range leads {
		byStatus[lead.Status] = append(byStatus[lead.Status], lead)
	}

	board := make([]KanbanColumn, 0, len(entity.LeadStatusOrder))
	for _, status := range entity.LeadStatusOrder {
		column := KanbanColumn{Status: status, Leads: byStatus[status]}
		if column.Leads == nil {
			column.Leads = []*entity.Lead{}
		}
		board = append(board, column)
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	lead, err := h.LeadRepo.FindByID(r.Context(), tenant, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, &usecase.DomainError{Code: usecase.CodeNotFound, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	lead, err := h.CreateUC.Execute(r.Context(), tenant, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	lead, err := h.UpdateUC.Execute(r.Context(), tenant, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	if err := h.LeadRepo.Delete(r.Context(), tenant, chi.URLParam(r, "id")); err != nil {
		writeError(w, &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()})
		return
	}

	h.Snapshots.Invalidate("leads")
	h.Snapshots.Invalidate("dashboard")
	w.WriteHeader(http.StatusNoContent)
}

type TransitionRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido"})
		return
	}

	lead, err := h.TransitionUC.Execute(r.Context(), tenant, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// HandleStale devolve a lista de leads parados. Em caso de falha no banco,
// serve o último snapshot bom (stale-but-available) em vez de quebrar a
// tela.
func (h *LeadHandler) HandleStale(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	key := "leads:stale:" + tenant
	if value, fresh, found := h.Snapshots.Get(key, staleListTTL); found && fresh {
		writeJSON(w, http.StatusOK, value)
		return
	}

	generation := h.Snapshots.Begin(key)

	stale, err := h.StaleUC.Execute(r.Context(), tenant)
	if err != nil {
		if value, _, found := h.Snapshots.Get(key, staleListTTL); found {
			writeJSON(w, http.StatusOK, value)
			return
		}
		writeError(w, err)
		return
	}

	h.Snapshots.Complete(key, generation, stale)
	writeJSON(w, http.StatusOK, stale)
}

type StaleCountResponse struct {
	Count int `json:"count"`
}

// HandleStaleCount é o badge: só urgent/critical contam.
func (h *LeadHandler) HandleStaleCount(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	stale, err := h.StaleUC.Execute(r.Context(), tenant)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StaleCountResponse{Count: usecase.CountAlertLeads(stale)})
}

type CaptureLeadRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Source string `json:"source,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleCapture recebe o formulário público do site da imobiliária. Sem
// sessão, por isso o rate limit por IP; reenvio do mesmo e-mail faz upsert.
func (h *LeadHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Email is required",
		})
		return
	}

	lead, err := entity.NewLead(tenant, req.Name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Source = req.Source
	if lead.Source == "" {
		lead.Source = "site"
	}

	if err := h.LeadRepo.UpsertByEmail(r.Context(), lead); err != nil {
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	h.Snapshots.Invalidate("leads")
	h.Snapshots.Invalidate("dashboard")
	middleware.RecordLeadTransition("", string(lead.Status))

	writeJSON(w, http.StatusOK, CaptureLeadResponse{Success: true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

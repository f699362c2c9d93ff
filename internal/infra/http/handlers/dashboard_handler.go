package handlers

import (
	"net/http"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

// TTLs alinhados com o refresh das telas: contadores a cada minuto,
// séries mensais a cada cinco.
const (
	dashboardStatsTTL = 60 * time.Second
	monthlyStatsTTL   = 5 * time.Minute
)

type DashboardHandler struct {
	StatsUC   *usecase.DashboardStatsUseCase
	MonthlyUC *usecase.MonthlyStatsUseCase
	Snapshots *cache.Store
}

func NewDashboardHandler(
	statsUC *usecase.DashboardStatsUseCase,
	monthlyUC *usecase.MonthlyStatsUseCase,
	snapshots *cache.Store,
) *DashboardHandler {
	return &DashboardHandler{
		StatsUC:   statsUC,
		MonthlyUC: monthlyUC,
		Snapshots: snapshots,
	}
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	h.serveSnapshot(w, r, "dashboard:stats:"+tenant, dashboardStatsTTL, func() (interface{}, error) {
		return h.StatsUC.Execute(r.Context(), tenant)
	})
}

func (h *DashboardHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	tenant, ok := realEstateID(w, r)
	if !ok {
		return
	}

	h.serveSnapshot(w, r, "dashboard:monthly:"+tenant, monthlyStatsTTL, func() (interface{}, error) {
		return h.MonthlyUC.Execute(r.Context(), tenant)
	})
}

// serveSnapshot: snapshot fresco responde direto; vencido dispara novo fetch
// com token de geração (resposta superada é descartada); falha no fetch
// serve o último dado bom em vez de erro.
func (h *DashboardHandler) serveSnapshot(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, fetch func() (interface{}, error)) {
	if value, fresh, found := h.Snapshots.Get(key, ttl); found && fresh {
		writeJSON(w, http.StatusOK, value)
		return
	}

	generation := h.Snapshots.Begin(key)

	value, err := fetch()
	if err != nil {
		if stale, _, found := h.Snapshots.Get(key, ttl); found {
			writeJSON(w, http.StatusOK, stale)
			return
		}
		writeError(w, err)
		return
	}

	h.Snapshots.Complete(key, generation, value)
	writeJSON(w, http.StatusOK, value)
}

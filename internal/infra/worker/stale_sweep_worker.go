package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/vrcosta/imob-backoffice/internal/entity"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/middleware"
	"github.com/vrcosta/imob-backoffice/internal/infra/queue"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

// StaleSweepWorker roda em background: classifica os leads de cada
// imobiliária, publica alerta para quem acabou de virar crítico e marca
// parcelas vencidas como atrasadas. O sweep não transiciona lead nenhum —
// staleness só sinaliza, nunca muda estado.
type StaleSweepWorker struct {
	db              *sql.DB
	leadRepo        entity.LeadRepositoryInterface
	installmentRepo entity.InstallmentRepositoryInterface
	producer        usecase.QueueProducerInterface
	tickInterval    time.Duration

	// Leads já alertados nesta execução; crítico repetido não spamma.
	alerted map[string]bool
}

func NewStaleSweepWorker(
	db *sql.DB,
	leadRepo entity.LeadRepositoryInterface,
	installmentRepo entity.InstallmentRepositoryInterface,
	producer usecase.QueueProducerInterface,
) *StaleSweepWorker {
	return &StaleSweepWorker{
		db:              db,
		leadRepo:        leadRepo,
		installmentRepo: installmentRepo,
		producer:        producer,
		tickInterval:    5 * time.Minute,
		alerted:         make(map[string]bool),
	}
}

func (w *StaleSweepWorker) Start(ctx context.Context) {
	log.Println("🕒 Stale Sweep Worker iniciado (tick de 5min)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Stale Sweep Worker encerrado")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *StaleSweepWorker) sweep(ctx context.Context) {
	now := time.Now()

	if n, err := w.installmentRepo.MarkOverdue(ctx, now); err != nil {
		log.Printf("❌ Erro ao marcar parcelas atrasadas: %v", err)
	} else if n > 0 {
		log.Printf("✅ %d parcela(s) marcadas como atrasadas", n)
	}

	tenants, err := w.listTenants(ctx)
	if err != nil {
		log.Printf("❌ Erro ao listar imobiliárias: %v", err)
		return
	}

	totalCritical := 0
	criticalNow := make(map[string]bool)
	for _, tenant := range tenants {
		leads, err := w.leadRepo.ListActive(ctx, tenant)
		if err != nil {
			log.Printf("❌ Erro ao buscar leads de %s: %v", tenant, err)
			continue
		}

		stale := usecase.BuildStaleList(leads, now)
		for _, info := range stale {
			if info.UrgencyLevel != entity.UrgencyCritical {
				continue
			}
			totalCritical++
			criticalNow[info.Lead.ID] = true

			if w.alerted[info.Lead.ID] {
				continue
			}

			payload := queue.LeadEventPayload{
				Event:            queue.EventStaleCritical,
				LeadID:           info.Lead.ID,
				RealEstateID:     info.Lead.RealEstateID,
				Name:             info.Lead.Name,
				Email:            info.Lead.Email,
				AssignedTo:       info.Lead.AssignedTo,
				Status:           string(info.Lead.Status),
				HoursSinceUpdate: info.HoursSinceUpdate,
			}
			if err := w.producer.PublishLeadEvent(ctx, payload); err != nil {
				log.Printf("❌ Erro ao publicar alerta do lead %s: %v", info.Lead.ID, err)
				middleware.RecordLeadEventError("rabbitmq")
				continue
			}
			w.alerted[info.Lead.ID] = true
		}
	}

	// Lead que saiu do estado crítico (foi atendido) volta a poder alertar.
	for id := range w.alerted {
		if !criticalNow[id] {
			delete(w.alerted, id)
		}
	}

	middleware.SetStaleCriticalLeads(totalCritical)
}

func (w *StaleSweepWorker) listTenants(ctx context.Context) ([]string, error) {
	rows, err := w.db.QueryContext(ctx,
		`SELECT DISTINCT real_estate_id FROM leads WHERE status NOT IN ('fechado', 'perdido')`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenants = append(tenants, id)
	}
	return tenants, rows.Err()
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vrcosta/imob-backoffice/internal/infra/cache"
	"github.com/vrcosta/imob-backoffice/internal/infra/database"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/handlers"
	"github.com/vrcosta/imob-backoffice/internal/infra/http/middleware"
	"github.com/vrcosta/imob-backoffice/internal/infra/mail"
	"github.com/vrcosta/imob-backoffice/internal/infra/queue"
	"github.com/vrcosta/imob-backoffice/internal/infra/worker"
	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	propertyRepo := database.NewPropertyRepository(db)
	typeRepo := database.NewPropertyTypeRepository(db)
	photoRepo := database.NewPropertyPhotoRepository(db)
	rentalRepo := database.NewRentalRepository(db)
	installmentRepo := database.NewInstallmentRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)
	snapshots := cache.NewStore()

	// 3. Workers
	notifyWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go notifyWorker.Start(queue.QueueName)

	sweepWorker := worker.NewStaleSweepWorker(db, leadRepo, installmentRepo, producer)
	go sweepWorker.Start(context.Background())

	// 4. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, snapshots)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, snapshots)
	transitionUC := usecase.NewTransitionLeadStatusUseCase(leadRepo, producer, snapshots)
	staleUC := usecase.NewListStaleLeadsUseCase(leadRepo)
	statsUC := usecase.NewDashboardStatsUseCase(leadRepo, propertyRepo, rentalRepo, installmentRepo)
	monthlyUC := usecase.NewMonthlyStatsUseCase(leadRepo, installmentRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, createLeadUC, updateLeadUC, transitionUC, staleUC, snapshots)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo, typeRepo, photoRepo, snapshots)
	rentalHandler := handlers.NewRentalHandler(rentalRepo, installmentRepo, snapshots)
	dashboardHandler := handlers.NewDashboardHandler(statsUC, monthlyUC, snapshots)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.TenantHeader},
	}))

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.HandleList)
		r.Post("/", leadHandler.HandleCreate)
		r.Post("/capture", leadHandler.HandleCapture)
		r.Get("/board", leadHandler.HandleBoard)
		r.Get("/stale", leadHandler.HandleStale)
		r.Get("/stale/count", leadHandler.HandleStaleCount)
		r.Get("/{id}", leadHandler.HandleGet)
		r.Put("/{id}", leadHandler.HandleUpdate)
		r.Patch("/{id}/status", leadHandler.HandleTransition)
		r.Delete("/{id}", leadHandler.HandleDelete)
	})

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", propertyHandler.HandleList)
		r.Post("/", propertyHandler.HandleCreate)
		r.Get("/types", propertyHandler.HandleListTypes)
		r.Get("/{id}", propertyHandler.HandleGet)
		r.Put("/{id}", propertyHandler.HandleUpdate)
		r.Delete("/{id}", propertyHandler.HandleDelete)
		r.Get("/{id}/photos", propertyHandler.HandleListPhotos)
		r.Post("/{id}/photos", propertyHandler.HandleAddPhoto)
		r.Delete("/{id}/photos/{photoId}", propertyHandler.HandleDeletePhoto)
	})

	r.Route("/rentals", func(r chi.Router) {
		r.Get("/", rentalHandler.HandleList)
		r.Post("/", rentalHandler.HandleCreate)
		r.Get("/{id}", rentalHandler.HandleGet)
		r.Put("/{id}", rentalHandler.HandleUpdate)
		r.Delete("/{id}", rentalHandler.HandleDelete)
		r.Get("/{id}/installments", rentalHandler.HandleListInstallments)
		r.Post("/{id}/installments", rentalHandler.HandleCreateInstallment)
		r.Post("/{id}/installments/{installmentId}/pay", rentalHandler.HandlePayInstallment)
	})

	r.Get("/dashboard/stats", dashboardHandler.HandleStats)
	r.Get("/dashboard/monthly", dashboardHandler.HandleMonthly)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 Server imob-backoffice rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}

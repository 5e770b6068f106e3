// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/proposal-backend/internal/campaign"
	"github.com/unclebandit/proposal-backend/internal/config"
	"github.com/unclebandit/proposal-backend/internal/controller"
	"github.com/unclebandit/proposal-backend/internal/db"
	"github.com/unclebandit/proposal-backend/internal/handler"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/queue"
	"github.com/unclebandit/proposal-backend/internal/repository"
	"github.com/unclebandit/proposal-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}
	env := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	campaignRepo, rateRepo := openStores(env)

	zone := campaign.LoadZone(env.DefaultTimezone, nil)
	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		Templates:    campaign.DefaultRegistry(),
		Scheduler:    campaign.NewScheduler(zone, nil),
		Personalizer: campaign.NewPersonalizer(campaign.DefaultMessages(), env.Links),
	}

	// With DISPATCH_IN_PROCESS the server delivers on the in-memory queue.
	// Otherwise cmd/worker owns dispatch over RabbitMQ.
	if env.DispatchInProcess {
		q := queue.NewInMemoryQueue()
		worker := service.NewWorker(campaignService, service.MockSend)
		if err := queue.StartDeliverySubscriber(q, func(job model.DeliveryJob) error {
			return worker.Deliver(ctx, job)
		}); err != nil {
			log.Fatal(err)
		}
		go service.NewDispatcher(campaignService, q).Run(ctx, env.DispatchInterval)
		log.Println("Dispatching touchpoints in process")
	}

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	proposalController := &controller.ProposalController{Rates: rateRepo}
	rateSheetHandler := handler.NewRateSheetHandler(rateRepo)

	r := chi.NewRouter()
	proposalController.Routes(r)
	rateSheetHandler.Routes(r)
	campaignController.Routes(r)

	srv := &http.Server{Addr: env.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	log.Println("Server running on", env.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func openStores(env config.Env) (repository.CampaignRepositoryInterface, repository.RateSheetRepositoryInterface) {
	switch env.CampaignStore {
	case config.StoreMemory:
		defaults := model.DefaultRateSheet()
		return repository.NewMemoryCampaignRepository(), repository.NewMemoryRateSheetRepository(&defaults)
	case config.StoreRedis:
		client, err := db.OpenRedis(env.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		return &repository.RedisCampaignRepository{Client: client}, rateSheets(env)
	}

	conn := mustOpenPostgres(env)
	return &repository.CampaignRepository{DB: conn}, &repository.RateSheetRepository{DB: conn}
}

// rateSheets keeps pricing in Postgres when a database is configured.
func rateSheets(env config.Env) repository.RateSheetRepositoryInterface {
	if env.DB.Name == "" {
		defaults := model.DefaultRateSheet()
		return repository.NewMemoryRateSheetRepository(&defaults)
	}
	return &repository.RateSheetRepository{DB: mustOpenPostgres(env)}
}

func mustOpenPostgres(env config.Env) *sql.DB {
	conn, err := db.Open(env.DB.DSN())
	if err != nil {
		log.Fatal(err)
	}
	return conn
}

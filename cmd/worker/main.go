package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unclebandit/proposal-backend/internal/campaign"
	"github.com/unclebandit/proposal-backend/internal/config"
	"github.com/unclebandit/proposal-backend/internal/db"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/queue"
	"github.com/unclebandit/proposal-backend/internal/repository"
	"github.com/unclebandit/proposal-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}
	env := config.MustLoad()
	if env.DispatchInProcess {
		log.Fatal("DISPATCH_IN_PROCESS is set, cmd/server owns dispatch for this store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var campaignRepo repository.CampaignRepositoryInterface
	switch env.CampaignStore {
	case config.StoreRedis:
		client, err := db.OpenRedis(env.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		campaignRepo = &repository.RedisCampaignRepository{Client: client}
	case config.StoreMemory:
		log.Fatal("worker needs a shared campaign store, CAMPAIGN_STORE=memory only works with cmd/server")
	default:
		conn, err := db.Open(env.DB.DSN())
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		campaignRepo = &repository.CampaignRepository{DB: conn}
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		Templates:    campaign.DefaultRegistry(),
		Scheduler:    campaign.NewScheduler(campaign.LoadZone(env.DefaultTimezone, nil), nil),
		Personalizer: campaign.NewPersonalizer(campaign.DefaultMessages(), env.Links),
	}

	// Connect to RabbitMQ
	q, err := queue.DialAMQP(env.AMQPURL)
	if err != nil {
		log.Fatal(err)
	}
	defer q.Close()

	worker := service.NewWorker(campaignService, service.MockSend)
	if err := queue.StartDeliverySubscriber(q, func(job model.DeliveryJob) error {
		return worker.Deliver(ctx, job)
	}); err != nil {
		log.Fatal(err)
	}

	go service.NewDispatcher(campaignService, q).Run(ctx, env.DispatchInterval)

	log.Println("Worker running, waiting for messages...")
	<-ctx.Done()
	log.Println("Worker shutting down")
}

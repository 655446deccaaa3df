// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"

	"stack-navigator-be/internal/config"
	"stack-navigator-be/internal/controller"
	"stack-navigator-be/internal/pkg/logger"
	"stack-navigator-be/internal/pkg/mailer"
	"stack-navigator-be/internal/repository/memory"
	"stack-navigator-be/internal/repository/unitofwork"
	"stack-navigator-be/internal/service"
	"stack-navigator-be/internal/websocket"
	"stack-navigator-be/pkg/session"

	pktNats "stack-navigator-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	UserController      controller.IUserController
	PlanController      controller.IPlanController
	AdvisorController   controller.IAdvisorController
	StackController     controller.IStackController
	GeneratorController controller.IGeneratorController
	PaymentController   controller.IPaymentController
	AdminController     controller.IAdminController

	// Background services, main.go starts these
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	// SessionStore owns a sweeper goroutine, main.go closes it on shutdown
	SessionStore *session.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS analytics stream, the app degrades to no-op publishing when it
	// is unreachable.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis, used to fan websocket notifications across instances
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-memory advisor session store
	sessionStore := session.NewStore(session.Config{
		TTL:             cfg.Session.TTL,
		Capacity:        cfg.Session.Capacity,
		RateLimitWindow: cfg.Session.RateLimitWindow,
		RateLimitMax:    cfg.Session.RateLimitMax,
		SweepInterval:   cfg.Session.SweepInterval,
	})

	// Plan cache in front of the plans table
	planCache := memory.NewPlanCache()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Keys.GenerationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.GenerationTopic,
		uowFactory,
		wsHub,
		natsPub,
	)

	planService := service.NewPlanService(uowFactory, planCache)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)
	userService := service.NewUserService(uowFactory, planService)

	advisorService := service.NewAdvisorService(sessionStore)
	stackService := service.NewStackService(uowFactory, planService, natsPub)
	generatorService, err := service.NewGeneratorService(uowFactory, planService, publisherService)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize project generator: %v", err)
	}

	paymentService := service.NewPaymentService(uowFactory, emailService, natsPub)
	adminService := service.NewAdminService(uowFactory, advisorService, planService, sysLogger)

	// Analytics worker, drains the NATS stream into the system log
	if natsSub != nil {
		analyticsService := service.NewAnalyticsService(natsSub, sysLogger)
		if err := analyticsService.Start(); err != nil {
			log.Printf("[WARN] Failed to start analytics worker: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		OAuthController:     controller.NewOAuthController(oauthService),
		UserController:      controller.NewUserController(userService, planService),
		PlanController:      controller.NewPlanController(planService),
		AdvisorController:   controller.NewAdvisorController(advisorService),
		StackController:     controller.NewStackController(stackService),
		GeneratorController: controller.NewGeneratorController(generatorService),
		PaymentController:   controller.NewPaymentController(paymentService),
		AdminController:     controller.NewAdminController(adminService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		SessionStore:    sessionStore,
	}
}

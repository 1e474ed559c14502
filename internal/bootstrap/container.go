package bootstrap

import (
	"context"
	"log"
	"time"

	"banking-rag-be/internal/config"
	"banking-rag-be/internal/controller"
	"banking-rag-be/internal/handler"
	"banking-rag-be/internal/pkg/logger"
	"banking-rag-be/internal/pkg/mailer"
	"banking-rag-be/internal/repository/implementation"
	"banking-rag-be/internal/repository/memory"
	"banking-rag-be/internal/repository/unitofwork"
	"banking-rag-be/internal/service"
	"banking-rag-be/internal/websocket"
	"banking-rag-be/pkg/assistant"
	"banking-rag-be/pkg/dashboard"
	"banking-rag-be/pkg/store"

	pktNats "banking-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	OAuthController       controller.IOAuthController
	UserController        controller.IUserController
	ChatController        controller.IChatController
	UpdateController      controller.IUpdateController
	AlertController       controller.IAlertController
	ReportController      controller.IReportController
	GapController         controller.IGapController
	ComparativeController controller.IComparativeController
	DashboardController   controller.IDashboardController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	DashboardService service.IDashboardService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// Client working state: in-process mirror + Redis snapshots
	stateRepo := memory.NewStateRepository()
	persistor := store.NewRedisPersistor(rdb, 7*24*time.Hour)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	responder := assistant.NewCannedResponder(cfg.Assistant.ReplyLatency)

	publisherService := service.NewPublisherService(cfg.App.ReportTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ReportTopic,
		uowFactory,
		natsPub,
		emailService,
	)

	authFeed := store.NewChannelAuthFeed(pubSub, "auth_changes")
	authService := service.NewAuthService(uowFactory, natsPub, authFeed, persistor, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	oauthService := service.NewOAuthService(uowFactory, natsPub, authFeed, cfg.Auth.AccessTokenTTL)
	userService := service.NewUserService(uowFactory, persistor)

	chatService := service.NewChatService(uowFactory, stateRepo, persistor, responder, sysLogger)

	alertService := service.NewAlertService(uowFactory, emailService, natsPub, sysLogger)
	updateService := service.NewUpdateService(uowFactory, alertService, natsPub)
	reportService := service.NewReportService(uowFactory, publisherService)
	gapService := service.NewGapService(uowFactory, natsPub, sysLogger)
	comparativeService := service.NewComparativeService(uowFactory)

	presence := dashboard.NewPresenceTracker()
	aggregator := dashboard.NewAggregator(sysLogger)
	dashboardService := service.NewDashboardService(uowFactory, aggregator, presence, natsSub)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:   notifHandler,
		WebSocketHub:          wsHub,
		AuthController:        controller.NewAuthController(authService),
		OAuthController:       controller.NewOAuthController(oauthService),
		UserController:        controller.NewUserController(userService),
		ChatController:        controller.NewChatController(chatService),
		UpdateController:      controller.NewUpdateController(updateService),
		AlertController:       controller.NewAlertController(alertService),
		ReportController:      controller.NewReportController(reportService),
		GapController:         controller.NewGapController(gapService),
		ComparativeController: controller.NewComparativeController(comparativeService),
		DashboardController:   controller.NewDashboardController(dashboardService),

		ConsumerService:  consumerService,
		DashboardService: dashboardService,
	}
}

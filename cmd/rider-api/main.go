// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"speedyrider/internal/ai"
	"speedyrider/internal/config"
	httptransport "speedyrider/internal/http"
	"speedyrider/internal/infra"
	"speedyrider/internal/maps"
	"speedyrider/internal/modules/analytics"
	"speedyrider/internal/modules/location"
	"speedyrider/internal/modules/notification"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/modules/payment"
	"speedyrider/internal/modules/rider"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	// Missing DB DSN switches to seeded in-memory stores so the service can
	// run without any backing database.
	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Printf("mode=mock reason=no_db_dsn")
	}

	var orderStore order.Store
	var riderStore rider.Store
	var paymentStore payment.EventStore
	var usageStore analytics.UsageStore
	if dbPool != nil {
		orderStore = order.NewPGStore(dbPool)
		riderStore = rider.NewPGStore(dbPool)
		paymentStore = payment.NewPGEventStore(dbPool)
		usageStore = analytics.NewPGUsageStore(dbPool)
	} else {
		memOrders := order.NewMemStore()
		memRiders := rider.NewMemStore()
		if err := rider.SeedDemo(ctx, memRiders); err != nil {
			log.Fatal(err)
		}
		if err := order.SeedDemo(ctx, memOrders, "RIDER-001"); err != nil {
			log.Fatal(err)
		}
		orderStore = memOrders
		riderStore = memRiders
		paymentStore = payment.NewMemEventStore()
		usageStore = analytics.NewMemUsageStore()
	}

	notificationSvc := notification.NewService(notification.NewStore(redisClient))

	var estimator order.Estimator
	if cfg.Maps.APIKey != "" {
		routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		estimator = routeSvc
	} else {
		log.Printf("mode=offline_estimator reason=no_maps_key")
		estimator = maps.OfflineEstimator{}
	}

	orderSvc := order.NewService(orderStore, notificationSvc, estimator,
		order.SimScanConfirmer{Delay: cfg.Gates.QRScanDelay}, cfg.Barcode.Key)

	var publisher payment.EventPublisher = payment.NopPublisher{}
	if cfg.AMQP.URL != "" {
		conn, err := infra.NewAMQP(cfg.AMQP.URL)
		if err != nil {
			log.Fatalf("amqp init: %v", err)
		}
		defer conn.Close()
		publisher = payment.NewAMQPPublisher(conn, "payment_events")
	} else {
		log.Printf("mode=no_publisher reason=no_amqp_url")
	}
	paymentSvc := payment.NewService(orderSvc,
		payment.SimProcessor{Delay: cfg.Gates.PaymentDelay}, paymentStore, publisher)

	riderSvc := rider.NewService(riderStore,
		rider.NewSessions(redisClient, cfg.Session.TTL), rider.NewThrottle(redisClient))

	locationSvc := location.NewService(
		location.NewStore(dbPool, redisClient), cfg.Location.SnapshotInterval)

	var briefings ai.BriefingProvider = ai.TemplateProvider{}
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		briefings = gemini
	} else {
		log.Printf("mode=template_briefing reason=no_gemini_key")
	}
	analyticsSvc := analytics.NewService(orderSvc, riderSvc, briefings, usageStore)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Orders:        orderSvc,
		Payments:      paymentSvc,
		Notifications: notificationSvc,
		Riders:        riderSvc,
		Locations:     locationSvc,
		Analytics:     analyticsSvc,
		HubID:         cfg.Hub.ID,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening addr=%s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

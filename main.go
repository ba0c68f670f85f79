package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-wellness-backend/config"
	"salon-wellness-backend/controllers"
	"salon-wellness-backend/events"
	"salon-wellness-backend/monitoring"
	"salon-wellness-backend/routes"
	"salon-wellness-backend/services"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	if cfg.Sentry.DSN != "" {
		if err := utils.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.Sentry.Release); err != nil {
			log.Printf("Sentry disabled: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}
	monitoring.Init()

	ctx := context.Background()

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		if err := config.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Printf("Journal database connected (%s)", cfg.Database.Driver)
	}

	var cache utils.RedisClient
	if cfg.Redis.Addr != "" {
		cache, err = utils.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Printf("Redis disabled: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	dispatcher := events.NewDispatcher(
		events.WithQueueSize(cfg.Events.QueueSize),
		events.WithPublishTimeout(cfg.Events.PublishTimeout),
		events.WithErrorHandler(func(name string, err error) {
			utils.CaptureError(err, map[string]interface{}{"publisher": name})
		}),
	)
	dispatcher.AddSync("metrics", monitoring.EventRecorder())
	if cache != nil {
		dispatcher.AddSync("cache", events.CacheInvalidator(cache, controllers.CachedViews...))
	}

	broadcaster := events.NewBroadcaster()
	dispatcher.AddAsync("sse", broadcaster)
	var journal *events.Journal
	if db != nil {
		journal = events.NewJournal(db)
		dispatcher.AddAsync("journal", journal)
	}
	if cfg.Kafka.Broker != "" {
		producer, err := events.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic)
		if err != nil {
			log.Printf("Kafka disabled: %v", err)
		} else {
			defer producer.Close()
			dispatcher.AddAsync("kafka", producer)
		}
	}
	if cfg.Elasticsearch.URL != "" {
		es, err := events.NewElasticClient(cfg.Elasticsearch.URL)
		if err != nil {
			log.Printf("Elasticsearch disabled: %v", err)
		} else {
			dispatcher.AddAsync("elasticsearch",
				events.NewElasticIndexer(es, cfg.Elasticsearch.ClientIndex, cfg.Elasticsearch.SessionIndex))
		}
	}

	seed := store.Seed{}
	if cfg.Seed.Demo {
		seed = store.DemoSeed()
	}
	st := store.New(seed, store.WithNotifier(dispatcher.Dispatch))

	scheduler := services.NewScheduler()
	if cfg.Twilio.AccountSID != "" && len(cfg.Twilio.Recipients) > 0 {
		digest := services.NewDigestService(st, db,
			services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken),
			services.DigestConfig{
				SalonName:      cfg.Salon.Name,
				PhoneNumber:    cfg.Twilio.PhoneNumber,
				WhatsAppNumber: cfg.Twilio.WhatsAppNumber,
				Recipients:     cfg.Twilio.Recipients,
			})
		if err := scheduler.Add("daily digest", cfg.Digest.Schedule, digest.SendDailyDigest); err != nil {
			log.Printf("Daily digest disabled: %v", err)
		}
	}
	if cfg.Export.Bucket != "" {
		client, err := services.NewS3Client(ctx, cfg.Export.Region)
		if err != nil {
			log.Printf("Nightly export disabled: %v", err)
		} else {
			export := services.NewExportService(st, client, cfg.Export.Bucket, cfg.Export.Prefix)
			err := scheduler.Add("nightly export", cfg.Digest.ExportSchedule, func() error {
				jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				_, err := export.UploadExport(jobCtx)
				return err
			})
			if err != nil {
				log.Printf("Nightly export disabled: %v", err)
			}
		}
	}
	scheduler.Start()

	r := routes.SetupRouter(routes.Dependencies{
		Config:      cfg,
		Store:       st,
		Cache:       cache,
		Broadcaster: broadcaster,
		Journal:     journal,
	})
	if gin.Mode() == gin.DebugMode {
		printRoutes(r)
	}

	// Request contexts end when shutdown starts so open event streams return.
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelRequests)
	go func() {
		log.Printf("Listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	scheduler.Stop()
	dispatcher.Close()
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

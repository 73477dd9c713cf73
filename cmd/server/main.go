package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkravets/storeline/internal/events"
	"github.com/mkravets/storeline/internal/httpserver"
	"github.com/mkravets/storeline/internal/repo"
	"github.com/mkravets/storeline/internal/search"
	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/pkg/config"
	pkgdb "github.com/mkravets/storeline/pkg/db"
	"github.com/mkravets/storeline/pkg/logging"
	loggingmw "github.com/mkravets/storeline/pkg/middleware/logging"

	"github.com/mkravets/storeline/internal/models"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers,
		events.TopicCartEvents, events.TopicOrderEvents, events.TopicProductEvents)
	if producer == nil {
		logger.Warn("kafka disabled, KAFKA_BROKERS not set")
	}

	var es *elasticsearch.Client
	if cfg.ESURL != "" {
		es, err = search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("search disabled, ES_URL not set")
	}

	store := &repo.GormRepo{DB: db}

	deps := httpserver.Deps{
		DB: db,
		Auth: &service.AuthService{
			Repo:          store,
			JWTSecret:     cfg.JWTAccessSecret,
			RefreshSecret: cfg.JWTRefreshSecret,
		},
		Catalog: &service.CatalogService{
			Repo:         store,
			ES:           es,
			ESIndex:      cfg.ESIndex,
			Producer:     producer,
			BaseCurrency: cfg.BaseCurrency,
		},
		Cart: &service.CartService{
			Repo:         store,
			Producer:     producer,
			BaseCurrency: cfg.BaseCurrency,
		},
		Wishlist: &service.WishlistService{Repo: store},
		Checkout: &service.CheckoutService{
			Repo:         store,
			Producer:     producer,
			BaseCurrency: cfg.BaseCurrency,
		},
		Orders:    &service.OrderService{Repo: store},
		ES:        es,
		ESIndex:   cfg.ESIndex,
		JWTSecret: cfg.JWTAccessSecret,
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if producer != nil {
		_ = producer.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}

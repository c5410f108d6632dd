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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avkuzmin/shop-backend/internal/config"
	"github.com/avkuzmin/shop-backend/internal/es"
	"github.com/avkuzmin/shop-backend/internal/httpserver"
	loggingmw "github.com/avkuzmin/shop-backend/internal/middleware/logging"
	"github.com/avkuzmin/shop-backend/internal/mykafka"
	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/service"
	pkgdb "github.com/avkuzmin/shop-backend/pkg/db"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	var searchHandler *httpserver.SearchHTTP
	var indexer *es.ProductIndexer
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(es.Options{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
		})
		if err != nil {
			log.Fatalf("es connect: %v", err)
		}
		indexer = &es.ProductIndexer{Client: esClient, Index: cfg.ESIndex}
		searchHandler = &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex}
	}

	r := repo.New(db)
	catalogSvc := &service.CatalogService{
		Repo:     r,
		Depth:    service.ParseCascadeDepth(cfg.CascadeDepth),
		Producer: producer,
		Indexer:  indexer,
	}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Producer:      producer,
	}
	customerSvc := &service.CustomerService{Repo: r}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc},
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		CustomerHandler: &httpserver.CustomerHTTP{Svc: customerSvc},
		SearchHandler:   searchHandler,
		JWTSecret:       cfg.JWTAccessSecret,
	})

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

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Printf("%s stopped", cfg.ServiceName)
}

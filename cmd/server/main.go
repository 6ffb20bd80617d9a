package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/alibiomar/ashe-admin-api/internal/config"
	"github.com/alibiomar/ashe-admin-api/internal/repository/mongodb"
	"github.com/alibiomar/ashe-admin-api/internal/repository/sheets"
	"github.com/alibiomar/ashe-admin-api/internal/scheduler"
	"github.com/alibiomar/ashe-admin-api/internal/server/handlers"
	"github.com/alibiomar/ashe-admin-api/internal/server/router"
	authsvc "github.com/alibiomar/ashe-admin-api/internal/service/auth"
	catalogsvc "github.com/alibiomar/ashe-admin-api/internal/service/catalog"
	inventorysvc "github.com/alibiomar/ashe-admin-api/internal/service/inventory"
	notifysvc "github.com/alibiomar/ashe-admin-api/internal/service/notify"
	ordersvc "github.com/alibiomar/ashe-admin-api/internal/service/order"
	spendingsvc "github.com/alibiomar/ashe-admin-api/internal/service/spending"
	statssvc "github.com/alibiomar/ashe-admin-api/internal/service/stats"
	"github.com/alibiomar/ashe-admin-api/pkg/clients/mailer"
	"github.com/alibiomar/ashe-admin-api/pkg/clients/push"
	"github.com/alibiomar/ashe-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb client", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	productRepo := mongodb.NewProductRepository(mongoClient)
	saleRepo := mongodb.NewSaleRepository(mongoClient)
	spendingRepo := mongodb.NewSpendingRepository(mongoClient)
	orderRepo := mongodb.NewOrderRepository(mongoClient)
	userRepo := mongodb.NewUserRepository(mongoClient)
	subscriberRepo := mongodb.NewSubscriberRepository(mongoClient)
	snapshotRepo := mongodb.NewSnapshotRepository(mongoClient)

	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheet export enabled")
	} else {
		baseLogger.Warn("sheet export id missing, snapshot export disabled")
	}

	var pushClient push.Client
	if cfg.Push.ServerKey != "" {
		pushClient = push.NewClient(cfg.Push)
		baseLogger.Info("push notifications enabled")
	} else {
		baseLogger.Warn("push server key missing, push notifications disabled")
	}

	var mailerClient mailer.Client
	if cfg.Mail.APIKey != "" {
		mailerClient = mailer.NewClient(cfg.Mail)
		baseLogger.Info("transactional email enabled")
	} else {
		baseLogger.Warn("mail api key missing, transactional email disabled")
	}

	notifySvc := notifysvc.NewDispatcher(cfg.Push, pushClient, mailerClient, baseLogger.Named("svc.notify"))
	ledger := inventorysvc.NewLedger(productRepo, saleRepo, mongoClient, baseLogger.Named("svc.inventory"))
	aggregator := statssvc.NewAggregator(orderRepo, productRepo, userRepo, subscriberRepo, saleRepo, spendingRepo, baseLogger.Named("svc.stats"))
	spendingSvc := spendingsvc.NewRecorder(spendingRepo, baseLogger.Named("svc.spending"))
	orderSvc := ordersvc.NewManager(orderRepo, notifySvc, baseLogger.Named("svc.order"))
	catalogSvc := catalogsvc.NewManager(productRepo, baseLogger.Named("svc.catalog"))
	authSvc := authsvc.NewAuthenticator(cfg.Auth, baseLogger.Named("svc.auth"))

	engine := router.New(router.Handlers{
		Auth:          handlers.NewAuthHandler(authSvc, baseLogger.Named("handlers.auth")),
		Sales:         handlers.NewSalesHandler(ledger, baseLogger.Named("handlers.sales")),
		Spendings:     handlers.NewSpendingHandler(spendingSvc, baseLogger.Named("handlers.spendings")),
		Stats:         handlers.NewStatsHandler(aggregator, baseLogger.Named("handlers.stats")),
		Catalog:       handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog")),
		Orders:        handlers.NewOrderHandler(orderSvc, baseLogger.Named("handlers.orders")),
		Subscribers:   handlers.NewSubscriberHandler(subscriberRepo, baseLogger.Named("handlers.subscribers")),
		Notifications: handlers.NewNotificationHandler(notifySvc, baseLogger.Named("handlers.notifications")),
	}, authSvc, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, aggregator, notifySvc, snapshotRepo, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

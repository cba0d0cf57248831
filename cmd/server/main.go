package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ems/internal/ems/auth"
	"ems/internal/ems/config"
	"ems/internal/ems/handler"
	"ems/internal/ems/metrics"
	"ems/internal/ems/policy"
	"ems/internal/ems/repository"
	"ems/internal/ems/router"
	"ems/internal/ems/service"
	"ems/internal/ems/storage"
	"ems/internal/ems/util"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type stores struct {
	employees repository.EmployeeRepository
	audit     repository.AuditRepository
	tx        repository.TxRunner
	client    *mongo.Client
}

func main() {
	// 0. Init Logger
	util.InitLogger()
	logger := util.GetLogger()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	util.InitLoggerWithLevel(util.ParseLevel(cfg.LogLevel))
	logger = util.GetLogger()

	// 2. Init storage
	st, err := openStores(cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	if err := st.employees.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to ensure employee indexes", "error", err)
	}
	if err := st.audit.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to ensure audit indexes", "error", err)
	}

	// 3. Init Layers
	loader := policy.NewLoader()
	table, err := loader.LoadCapabilities()
	if err != nil {
		logger.Error("Failed to load capabilities", "error", err)
		os.Exit(1)
	}
	routes, err := loader.LoadRouteAccess()
	if err != nil {
		logger.Error("Failed to load route access rules", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewDiskStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Error("Failed to prepare upload dir", "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.NewService(service.Deps{
		Employees: st.employees,
		Audit:     st.audit,
		Tx:        st.tx,
		Resolver:  policy.NewResolverWithTable(table),
		Tokens:    auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Hasher:    auth.NewPasswordHasher(cfg.BcryptCost),
		Files:     files,
		Metrics:   metrics.New(reg),
		Logger:    logger,
	})
	h := handler.NewEmployeeHandler(svc)

	// 4. Init Echo & Routes
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("12M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))

	router.RegisterRoutes(e, h, svc, routes, reg)

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.Storage, "transactions", cfg.Transactions)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("shutting down the server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}

	if st.client != nil {
		if err := st.client.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect DB", "error", err)
		}
	}

	logger.Info("Server exited properly")
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		return &stores{
			employees: repository.NewInMemoryEmployeeRepository(),
			audit:     repository.NewInMemoryAuditRepository(),
			tx:        repository.NoTx{},
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Change values are stored as plain documents; decode them as maps.
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DBName)
	st := &stores{
		employees: repository.NewMongoEmployeeRepository(db, cfg.EmployeesCollection),
		audit:     repository.NewMongoAuditRepository(db, cfg.ManagerLogsCollection, cfg.SelfLogsCollection),
		tx:        repository.NoTx{},
		client:    client,
	}
	if cfg.Transactions {
		st.tx = repository.NewMongoTxRunner(client)
	}
	return st, nil
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"loan-service/internal/adapter/events"
	"loan-service/internal/adapter/external/userservice"
	httpadp "loan-service/internal/adapter/http"
	idem "loan-service/internal/adapter/middleware"
	"loan-service/internal/adapter/repository/gormrepo"
	"loan-service/internal/config"
	"loan-service/internal/domain/loan"
	"loan-service/internal/domain/user"
	"loan-service/internal/infrastructure/cache"
	"loan-service/internal/infrastructure/db"
	"loan-service/internal/infrastructure/metrics"
	"loan-service/internal/usecase/balance"
	loanUC "loan-service/internal/usecase/loan"
	"loan-service/internal/usecase/loantype"
	"loan-service/internal/usecase/payment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	policy, err := loan.ParseShortfallPolicy(cfg.ShortfallPolicy)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db: migrate: %v", err)
	}

	loans := gormrepo.NewLoanRepository(gdb)
	payments := gormrepo.NewPaymentRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	// Redis is optional: without it there is no idempotency and no user cache.
	var rdb *redis.Client
	if c, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB); err != nil {
		log.Printf("redis unavailable, idempotency and user cache disabled: %v", err)
	} else {
		rdb = c
		defer rdb.Close()
	}

	var users user.Directory = userservice.NewClient(cfg.UserServiceURL, cfg.UserServiceTimeout())
	if rdb != nil {
		users = userservice.NewCached(users, rdb, cfg.UserCacheTTL())
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.KafkaEnabled {
		k, err := events.NewKafka(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer k.Close()
		publisher = k
	}

	m := metrics.New()

	loanSvc := loanUC.NewUsecase(loans, payments, tx, users,
		loanUC.WithPublisher(publisher), loanUC.WithMetrics(m))
	paymentSvc := payment.NewUsecase(loans, payments, tx,
		payment.WithShortfallPolicy(policy), payment.WithPublisher(publisher), payment.WithMetrics(m))
	typeSvc := loantype.NewUsecase(gormrepo.NewLoanTypeRepository(gdb))

	seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if _, err := typeSvc.Seed(seedCtx); err != nil {
		log.Fatalf("seed loan types: %v", err)
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSAllowedOrigins}))
	e.Use(idem.Metrics(m))

	routes := httpadp.Routes{
		Health:    httpadp.NewHandler(),
		Loans:     httpadp.NewLoanHandler(loanSvc),
		Payments:  httpadp.NewPaymentHandler(paymentSvc),
		Balances:  httpadp.NewBalanceHandler(balance.NewUsecase(loans, payments)),
		LoanTypes: httpadp.NewLoanTypeHandler(typeSvc),
		Metrics:   m.Handler(),
	}
	if rdb != nil {
		routes.Mutating = []echo.MiddlewareFunc{idem.Idempotency(rdb, cfg.IdempotencyTTL())}
	}
	httpadp.RegisterRoutes(e, routes)

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

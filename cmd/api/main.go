package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "cfc-deblocages/internal/adapter/http"
	"cfc-deblocages/internal/adapter/middleware"
	"cfc-deblocages/internal/adapter/repository/mysql"
	"cfc-deblocages/internal/config"
	"cfc-deblocages/internal/infrastructure/cache"
	"cfc-deblocages/internal/infrastructure/db"
	"cfc-deblocages/internal/notification"
	"cfc-deblocages/internal/scheduler"
	"cfc-deblocages/internal/sweep"
	alertuc "cfc-deblocages/internal/usecase/alert"
	authuc "cfc-deblocages/internal/usecase/auth"
	clientuc "cfc-deblocages/internal/usecase/client"
	disbuc "cfc-deblocages/internal/usecase/disbursement"
	docuc "cfc-deblocages/internal/usecase/document"
	loanuc "cfc-deblocages/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	loanRepo := mysql.NewLoanRepository(gdb)
	clientRepo := mysql.NewClientRepository(gdb)
	disbRepo := mysql.NewDisbursementRepository(gdb)
	alertRepo := mysql.NewAlertRepository(gdb)
	docRepo := mysql.NewDocumentRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	locale := sweep.ParseLocale(cfg.DefaultLocale)

	// notification pipeline: best-effort senders behind an async dispatcher
	mailer := notification.LogMailer{}
	sink := notification.NewService(alertRepo, loanRepo, clientRepo,
		mailer, notification.LogSMSSender{}, notification.LogPushSender{}, cfg.AdminEmail)
	dispatcher := notification.NewDispatcher(sink, 256)
	dispatcher.Start()

	sweeper := sweep.NewSweeper(loanRepo, disbRepo, alertRepo, dispatcher, locale)

	// usecases
	loanUC := loanuc.NewUsecase(loanRepo, clientRepo, alertRepo, cfg.AgencyCode, locale)
	clientUC := clientuc.NewUsecase(clientRepo)
	disbUC := disbuc.NewUsecase(disbRepo, loanRepo, uow)
	alertUC := alertuc.NewUsecase(alertRepo)
	docUC := docuc.NewUsecase(docRepo)
	authUC := authuc.NewUsecase(userRepo, cfg.SecretKey, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// daily summary mailed to the back office
	report := func(ctx context.Context) error {
		s, err := alertUC.Summary(ctx)
		if err != nil {
			return err
		}
		body := fmt.Sprintf("Alertes actives: %d\nPar gravité: %v\nPar statut: %v",
			s.Total, s.BySeverity, s.ByStatus)
		return mailer.Send(ctx, cfg.AdminEmail, "Rapport quotidien des alertes CFC", body)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("timezone %q unknown, using server local time", cfg.Timezone)
		loc = nil
	}
	sched := scheduler.New(rdb, sweeper, report, loc)
	if err := sched.Start(cfg.SweepSchedule, cfg.ReportSchedule); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	// handlers
	healthH := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	clientH := httpadp.NewClientHandler(clientUC)
	loanH := httpadp.NewLoanHandler(loanUC)
	disbH := httpadp.NewDisbursementHandler(disbUC)
	docH := httpadp.NewDocumentHandler(docUC)
	alertH := httpadp.NewAlertHandler(alertUC)
	sweepH := httpadp.NewSweepHandler(sweeper)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", healthH.Health)
	e.POST("/api/v1/auth/login", authH.Login)

	api := e.Group("/api/v1", middleware.AuthMiddleware(authUC))
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	api.POST("/clients", clientH.CreateClient, idemp)
	api.GET("/clients", clientH.ListClients)
	api.GET("/clients/:client_number", clientH.GetClient)
	api.PATCH("/clients/:client_number", clientH.UpdateClient, idemp)
	api.DELETE("/clients/:client_number", clientH.DeactivateClient, idemp)
	api.GET("/clients-by-id/:client_id/documents", docH.ListByClient)

	api.POST("/loans", loanH.CreateLoan, idemp)
	api.GET("/loans", loanH.ListLoans)
	api.GET("/loans/:loan_number", loanH.GetLoan)
	api.POST("/loans/:loan_number/approve", loanH.ApproveLoan, idemp)
	api.POST("/loans/:loan_number/sign", loanH.SignLoan, idemp)
	api.POST("/loans/:loan_number/start-disbursing", loanH.StartDisbursing, idemp)
	api.POST("/loans/:loan_number/check-validity", loanH.CheckValidity)
	api.GET("/loans/:loan_number/disbursements", disbH.ListByLoan)

	api.POST("/disbursements", disbH.RequestDisbursement, idemp)
	api.POST("/disbursements/:id/bet-report", disbH.RecordBETReport, idemp)
	api.POST("/disbursements/:id/approve", disbH.ApproveDisbursement, idemp)
	api.POST("/disbursements/:id/start", disbH.StartDisbursement, idemp)
	api.PATCH("/disbursements/:id/progress", disbH.UpdateProgress, idemp)

	api.POST("/documents", docH.CreateDocument, idemp)
	api.GET("/documents/:id", docH.GetDocument)
	api.DELETE("/documents/:id", docH.DeleteDocument, idemp)
	api.GET("/loans-by-id/:loan_id/documents", docH.ListByLoan)

	api.GET("/alerts", alertH.ListAlerts)
	api.GET("/alerts/summary", alertH.Summary)
	api.GET("/alerts/:id", alertH.GetAlert)
	api.POST("/alerts/:id/acknowledge", alertH.Acknowledge, idemp)
	api.POST("/alerts/:id/resolve", alertH.Resolve, idemp)
	api.POST("/alerts/:id/escalate", alertH.Escalate, idemp)
	api.POST("/alerts/sweep", sweepH.TriggerSweep)

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	sched.Stop()
	dispatcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

package main

import (
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/secsim/phishing-gateway/internal/config"
	"github.com/secsim/phishing-gateway/internal/handlers"
	"github.com/secsim/phishing-gateway/internal/mailer"
	"github.com/secsim/phishing-gateway/internal/repository"
	"github.com/secsim/phishing-gateway/internal/services"
	xhttp "github.com/secsim/phishing-gateway/pkg/http"
	"github.com/secsim/phishing-gateway/pkg/logger"
	"github.com/secsim/phishing-gateway/pkg/pg"
	"github.com/secsim/phishing-gateway/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 30))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		err = prom.Create(config.Get().AppName, config.Get().AppEnv, config.Get().PromNamespace)
		if err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	m := mailer.New(mailer.Config{
		Host:      config.Get().SmtpHost,
		Port:      config.Get().SmtpPort,
		Username:  config.Get().SmtpUsername,
		Password:  config.Get().SmtpPassword,
		FromName:  config.Get().SmtpFromName,
		FromEmail: config.Get().SmtpFromEmail,
		BaseURL:   config.Get().AppBaseUrl,
	})
	if m.SimulationMode() {
		logger.Warn("no SMTP credentials configured, sends will be simulated")
	}

	campaignRepo := repository.NewCampaignRepository(db)
	targetRepo := repository.NewTargetRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	userRepo := repository.NewUserRepository(db)
	educationRepo := repository.NewEducationRepository(db)

	// services
	campaignService := services.NewCampaignService(campaignRepo, targetRepo, templateRepo, m)
	templateService := services.NewTemplateService(templateRepo)
	trackingService := services.NewTrackingService(targetRepo, campaignRepo, templateRepo, educationRepo)
	statsService := services.NewStatsService(campaignRepo, targetRepo, templateRepo)
	authService := services.NewAuthService(userRepo)
	healthService := services.NewHealthService()

	// handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService, templateService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	statsHandler := handlers.NewStatsHandler(statsService, campaignService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(healthService)

	handlers.RegisterCampaignRoutes(s.Router, campaignHandler)
	handlers.RegisterTemplateRoutes(s.Router, templateHandler)
	handlers.RegisterTrackingRoutes(s.Router, trackingHandler)
	handlers.RegisterStatsRoutes(s.Router, statsHandler)
	handlers.RegisterAuthRoutes(s.Router, authHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}

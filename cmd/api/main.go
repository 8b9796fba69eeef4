package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/ymatsuda/clinic-survey-api/internal/config"
	"github.com/ymatsuda/clinic-survey-api/internal/email"
	"github.com/ymatsuda/clinic-survey-api/internal/handler"
	authHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/auth"
	clinicHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/clinic"
	dashboardHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/dashboard"
	doctorHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/doctor"
	questionHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/question"
	questionOptionHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/questionoption"
	reviewHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/review"
	surveyHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/survey"
	treatmentMenuHandler "github.com/ymatsuda/clinic-survey-api/internal/handler/treatmentmenu"
	"github.com/ymatsuda/clinic-survey-api/internal/middleware"
	"github.com/ymatsuda/clinic-survey-api/internal/repository/postgres"
	"github.com/ymatsuda/clinic-survey-api/internal/router"
	authService "github.com/ymatsuda/clinic-survey-api/internal/service/auth"
	clinicService "github.com/ymatsuda/clinic-survey-api/internal/service/clinic"
	dashboardService "github.com/ymatsuda/clinic-survey-api/internal/service/dashboard"
	doctorService "github.com/ymatsuda/clinic-survey-api/internal/service/doctor"
	questionService "github.com/ymatsuda/clinic-survey-api/internal/service/question"
	questionOptionService "github.com/ymatsuda/clinic-survey-api/internal/service/questionoption"
	reviewService "github.com/ymatsuda/clinic-survey-api/internal/service/review"
	surveyService "github.com/ymatsuda/clinic-survey-api/internal/service/survey"
	treatmentMenuService "github.com/ymatsuda/clinic-survey-api/internal/service/treatmentmenu"
	"github.com/ymatsuda/clinic-survey-api/pkg/auth"
	"github.com/ymatsuda/clinic-survey-api/pkg/genai"
	"github.com/ymatsuda/clinic-survey-api/pkg/logger"
	"github.com/ymatsuda/clinic-survey-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := handler.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validations")
	}

	// Reference data changes rarely, so list endpoints serve from a
	// short-lived in-memory cache.
	cache := gocache.New(5*time.Minute, 10*time.Minute)

	clinicRepo := postgres.NewClinicRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	menuRepo := postgres.NewTreatmentMenuRepository(db)
	optionRepo := postgres.NewQuestionOptionRepository(db)
	questionRepo := postgres.NewQuestionRepository(db)
	surveyRepo := postgres.NewSurveyRepository(db)
	adminUserRepo := postgres.NewAdminUserRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(0)
	notifier := email.NewSMTPNotifier(cfg.SMTP)
	genaiClient := genai.NewClient(cfg.GenAI.APIKey)

	clinicSvc := clinicService.NewService(clinicRepo, doctorRepo, surveyRepo, cache)
	doctorSvc := doctorService.NewService(doctorRepo, clinicRepo, surveyRepo, cache)
	menuSvc := treatmentMenuService.NewService(menuRepo, surveyRepo, cache)
	optionSvc := questionOptionService.NewService(optionRepo, surveyRepo, cache)
	questionSvc := questionService.NewService(questionRepo, cache)
	surveySvc := surveyService.NewService(surveyRepo, clinicRepo, doctorRepo, notifier, appLog)
	dashboardSvc := dashboardService.NewService(surveyRepo, cfg.Dash.PageSize)
	reviewSvc := reviewService.NewService(surveyRepo, clinicRepo, genaiClient,
		cfg.GenAI.PrimaryModel, cfg.GenAI.FallbackModels, appLog)
	authSvc := authService.NewService(adminUserRepo, hasher, jwtSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		clinicHandler.NewHandler(clinicSvc),
		doctorHandler.NewHandler(doctorSvc),
		treatmentMenuHandler.NewHandler(menuSvc),
		questionOptionHandler.NewHandler(optionSvc),
		questionHandler.NewHandler(questionSvc),
		surveyHandler.NewHandler(surveySvc),
		reviewHandler.NewHandler(reviewSvc),
		dashboardHandler.NewHandler(dashboardSvc, surveySvc),
		handler.NewHealthHandler(db),
		router.RouterConfig{
			RateLimit:       rate.Limit(cfg.Server.RateLimitPerSec),
			RateBurst:       cfg.Server.RateLimitBurst,
			ReviewRateLimit: rate.Limit(cfg.Server.ReviewRatePerMin / 60),
			ReviewRateBurst: cfg.Server.ReviewRateBurst,
			CORSConfig:      corsConfig,
			MetricsPrefix:   "clinic_survey",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sanfelipe/obras-api/internal/application/auth"
	"github.com/sanfelipe/obras-api/internal/application/expense"
	"github.com/sanfelipe/obras-api/internal/application/project"
	"github.com/sanfelipe/obras-api/internal/application/usecase"
	infracloudinary "github.com/sanfelipe/obras-api/internal/infrastructure/cloudinary"
	infrapdf "github.com/sanfelipe/obras-api/internal/infrastructure/pdf"
	"github.com/sanfelipe/obras-api/internal/infrastructure/postgres"
	httpRouter "github.com/sanfelipe/obras-api/internal/interfaces/http"
	"github.com/sanfelipe/obras-api/pkg/config"
	"github.com/sanfelipe/obras-api/pkg/jwt"
	"github.com/sanfelipe/obras-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens := jwt.NewManager(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.Issuer,
		cfg.JWT.AccessExpMinutes, cfg.JWT.RefreshExpMinutes,
	)

	uploader := infracloudinary.NewClient(cfg.Cloudinary)
	reportGenerator := infrapdf.NewMarotoReportGenerator()

	authUC := auth.NewAuthUseCase(userRepo, tokens)
	projectUC := project.NewProjectUseCase(projectRepo, assignmentRepo, userRepo, notifRepo)
	expenseUC := expense.NewExpenseUseCase(txRunner, expenseRepo, projectRepo, assignmentRepo, uploader)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	reportUC := usecase.NewReportUseCase(expenseRepo, projectRepo, userRepo, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 << 20, // comprobantes multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Obras API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProjectUC:      projectUC,
		ExpenseUC:      expenseUC,
		NotificationUC: notificationUC,
		UserUC:         userUC,
		ReportUC:       reportUC,
		Tokens:         tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/courier-dashboard/internal/application/orders"
	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/application/session"
	"github.com/jhoicas/courier-dashboard/internal/infrastructure/credstore"
	"github.com/jhoicas/courier-dashboard/internal/infrastructure/delivery"
	infrapdf "github.com/jhoicas/courier-dashboard/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/courier-dashboard/internal/interfaces/http"
	"github.com/jhoicas/courier-dashboard/pkg/config"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
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
		Str("delivery_api", cfg.Delivery.BaseURL).
		Msg("iniciando aplicación")

	// Gateways contra el API REST de delivery (la fuente de verdad)
	client := delivery.NewClient(cfg.Delivery.BaseURL, cfg.Delivery.Timeout(), log)
	authGateway := delivery.NewAuthGateway(client)
	orderGateway := delivery.NewOrderGateway(client)

	// Sesión del repartidor: credencial persistida + controlador
	store := credstore.New(cfg.Session.CredentialsPath)
	sessionCtrl := session.NewController(authGateway, store, log)

	listCtrl := orders.NewListController(orderGateway, sessionCtrl, log)
	detailCtrl := orders.NewDetailController(orderGateway, sessionCtrl, log)

	runSheetUC := runsheet.NewUseCase(orderGateway, sessionCtrl, sessionCtrl,
		infrapdf.NewMarotoRunSheetGenerator())

	// Restaurar la sesión desde la credencial almacenada sin bloquear el
	// arranque; el guard muestra el indicador de carga mientras tanto.
	go sessionCtrl.Bootstrap(context.Background())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        httpRouter.NewViewEngine(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:  sessionCtrl,
		List:     listCtrl,
		Detail:   detailCtrl,
		RunSheet: runSheetUC,
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

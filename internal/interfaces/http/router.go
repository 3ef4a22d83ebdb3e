package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/jhoicas/courier-dashboard/internal/application/orders"
	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session  *session.Controller
	List     *orders.ListController
	Detail   *orders.DetailController
	RunSheet *runsheet.UseCase
}

// Router registra las rutas del dashboard.
func Router(app *fiber.App, deps RouterDeps) {
	// Assets embebidos
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       StaticFS(),
		PathPrefix: "static",
	}))

	authHandler := NewAuthHandler(deps.Session)
	ordersHandler := NewOrdersHandler(deps.Session, deps.List, deps.Detail, deps.RunSheet)

	// Auth (público)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Vistas protegidas (requieren sesión)
	protected := app.Group("/", NavigationGuard(deps.Session))
	protected.Get("/", ordersHandler.Dashboard)
	protected.Get("/orders/runsheet.pdf", ordersHandler.RunSheet)
	protected.Get("/orders/:id", ordersHandler.Detail)
	protected.Post("/orders/:id/status", ordersHandler.UpdateStatus)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/courier-dashboard/internal/application/dto"
	"github.com/jhoicas/courier-dashboard/internal/application/session"
	"github.com/jhoicas/courier-dashboard/internal/domain"
)

// AuthHandler páginas y acciones de login, registro y logout.
type AuthHandler struct {
	sess *session.Controller
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(sess *session.Controller) *AuthHandler {
	return &AuthHandler{sess: sess}
}

// LoginPage muestra el formulario de login; con sesión activa va directo al dashboard.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if h.sess.Authenticated() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("login", fiber.Map{"Title": "Sign In", "Email": ""})
}

// Login procesa el formulario. La autenticación fallida se muestra con el
// mensaje genérico, sin distinguir email de password (ambigüedad a propósito).
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{
			"Title": "Sign In",
			"Error": "Invalid form submission.",
		})
	}

	if err := h.sess.Login(c.UserContext(), form); err != nil {
		msg := "Something went wrong. Please try again."
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, domain.ErrValidation):
			msg = "Email and password are required."
			status = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrInvalidCredentials):
			msg = "Invalid email or password."
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).Render("login", fiber.Map{
			"Title": "Sign In",
			"Error": msg,
			"Email": form.Email,
		})
	}

	return c.Redirect("/", fiber.StatusFound)
}

// RegisterPage muestra el formulario de alta.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if h.sess.Authenticated() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("register", fiber.Map{"Title": "Create Account", "Form": dto.RegisterForm{}})
}

// Register procesa el alta. Los fallos de validación vuelven inline al
// formulario sin tocar la red.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Title": "Create Account",
			"Error": "Invalid form submission.",
			"Form":  dto.RegisterForm{},
		})
	}

	if err := h.sess.Register(c.UserContext(), form); err != nil {
		msg := "Something went wrong. Please try again."
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, domain.ErrValidation):
			// El mensaje del validador ya viene listo para mostrar
			msg = validationMessage(err)
			status = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrInvalidCredentials):
			msg = "Registration was rejected. Check your details and try again."
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).Render("register", fiber.Map{
			"Title": "Create Account",
			"Error": msg,
			"Form":  form,
		})
	}

	return c.Redirect("/", fiber.StatusFound)
}

// Logout cierra la sesión local y vuelve al login. No llama al sistema remoto.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sess.Logout()
	return c.Redirect("/login", fiber.StatusFound)
}

// validationMessage extrae la parte legible del error de validación.
func validationMessage(err error) string {
	msg := err.Error()
	// El error viene como "entrada inválida: <detalle>"; mostrar solo el detalle.
	prefix := domain.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

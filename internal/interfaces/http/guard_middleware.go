package http

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionState lo que el guard necesita saber de la sesión.
type SessionState interface {
	Authenticated() bool
	Loading() bool
}

// NavigationGuard protege las vistas autenticadas. Mientras el bootstrap de
// sesión sigue en vuelo muestra el indicador de carga neutro; resuelto,
// deja pasar solo si hay sesión y si no redirige al login. Un solo rol
// ("delivery partner"), sin niveles adicionales de autorización.
func NavigationGuard(sess SessionState) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess.Loading() {
			return c.Render("loading", fiber.Map{"Title": "Loading"})
		}
		if !sess.Authenticated() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// flashCookie cookie de un solo uso para el mensaje de confirmación tras un
// redirect (el equivalente del toast del dashboard anterior).
const flashCookie = "flash"

func setFlash(c *fiber.Ctx, msg string) {
	// El mensaje lleva espacios y signos: viaja URL-encoded en la cookie.
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(time.Minute),
	})
}

func popFlash(c *fiber.Ctx) string {
	msg, err := url.QueryUnescape(c.Cookies(flashCookie))
	if err != nil {
		msg = ""
	}
	if msg != "" {
		c.Cookie(&fiber.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			Expires:  time.Now().Add(-time.Hour),
		})
	}
	return msg
}

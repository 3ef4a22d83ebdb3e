// Package session es el dueño del estado de autenticación del repartidor:
// arranca la sesión desde la credencial almacenada, expone login/register/
// logout y publica el usuario actual al resto de la aplicación.
package session

import (
	"context"
	"sync"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/jhoicas/courier-dashboard/internal/application/dto"
	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
)

// AuthGateway operaciones remotas de autenticación (internal/infrastructure/delivery).
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, entity.User, error)
	Register(ctx context.Context, fullName, email, password, phone, vehicle string) (string, entity.User, error)
	Verify(ctx context.Context, token string) (entity.User, error)
}

// CredentialStore persistencia local de la credencial bearer (credstore).
type CredentialStore interface {
	Get() (token string, ok bool)
	Set(token string) error
	Clear() error
}

// Controller estado de sesión del único operador del dashboard. Los handlers
// de Fiber corren en paralelo, por eso el mutex; llamadas concurrentes a
// Login no se coalescen: cada una corre sola y la última escritura gana.
type Controller struct {
	gateway AuthGateway
	store   CredentialStore
	log     *logger.Logger
	v       *validatorv10.Validate

	mu      sync.RWMutex
	user    *entity.User
	loading bool
}

// NewController construye el controlador de sesión.
func NewController(gateway AuthGateway, store CredentialStore, log *logger.Logger) *Controller {
	return &Controller{
		gateway: gateway,
		store:   store,
		log:     log,
		v:       dto.NewValidator(),
	}
}

// Bootstrap restaura la sesión desde la credencial almacenada. Se lanza en
// una goroutine al arrancar; el flag de loading queda en true solo mientras
// la verificación remota está en vuelo. Una credencial rechazada se limpia y
// la sesión queda sin autenticar, sin error fatal.
func (c *Controller) Bootstrap(ctx context.Context) {
	token, ok := c.store.Get()
	if !ok {
		return
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	user, err := c.gateway.Verify(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.log.Warn().Err(err).Msg("credencial almacenada rechazada, limpiando sesión")
		if cerr := c.store.Clear(); cerr != nil {
			c.log.Error().Err(cerr).Msg("limpiar credencial almacenada")
		}
		c.user = nil
		return
	}

	c.user = &user
	c.log.Info().Str("user_id", user.ID).Msg("sesión restaurada desde credencial almacenada")
}

// Login valida el formulario, autentica contra el gateway y persiste la
// credencial (TTL 7 días). En fallo la sesión queda exactamente como estaba.
func (c *Controller) Login(ctx context.Context, form dto.LoginForm) error {
	if err := dto.Validate(c.v, form); err != nil {
		return err
	}

	token, user, err := c.gateway.Login(ctx, form.Email, form.Password)
	if err != nil {
		return err
	}

	if err := c.store.Set(token); err != nil {
		c.log.Error().Err(err).Msg("persistir credencial")
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	c.log.Info().Str("user_id", user.ID).Msg("login exitoso")
	return nil
}

// Register valida localmente (campos requeridos, password >= 6) antes de
// tocar la red; mismo contrato de éxito/fallo que Login.
func (c *Controller) Register(ctx context.Context, form dto.RegisterForm) error {
	if err := dto.Validate(c.v, form); err != nil {
		return err
	}

	token, user, err := c.gateway.Register(ctx, form.FullName, form.Email, form.Password, form.Phone, form.Vehicle)
	if err != nil {
		return err
	}

	if err := c.store.Set(token); err != nil {
		c.log.Error().Err(err).Msg("persistir credencial")
	}

	c.mu.Lock()
	c.user = &user
	c.mu.Unlock()

	c.log.Info().Str("user_id", user.ID).Msg("registro exitoso")
	return nil
}

// Logout limpia el usuario en memoria y la credencial local (incluido el
// perfil cacheado legacy). No invalida nada del lado del servidor.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Msg("limpiar credencial en logout")
	}
	c.log.Info().Msg("sesión cerrada")
}

// CurrentUser devuelve una copia del usuario actual.
func (c *Controller) CurrentUser() (entity.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return entity.User{}, false
	}
	return *c.user, true
}

// Authenticated reporta si hay usuario en sesión.
func (c *Controller) Authenticated() bool {
	_, ok := c.CurrentUser()
	return ok
}

// Loading reporta si el bootstrap sigue en vuelo.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Token devuelve la credencial vigente para las llamadas autenticadas.
func (c *Controller) Token() (string, bool) {
	return c.store.Get()
}

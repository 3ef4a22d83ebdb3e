package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/courier-dashboard/internal/application/orders"
	"github.com/jhoicas/courier-dashboard/internal/application/runsheet"
	"github.com/jhoicas/courier-dashboard/internal/application/session"
	"github.com/jhoicas/courier-dashboard/internal/infrastructure/credstore"
	"github.com/jhoicas/courier-dashboard/internal/infrastructure/delivery"
	infrapdf "github.com/jhoicas/courier-dashboard/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/courier-dashboard/internal/interfaces/http"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Upstream de prueba: implementa los endpoints del API de delivery que usan
// los gateways, registrando lo que recibe para las aserciones.
// ──────────────────────────────────────────────────────────────────────────────

type upstreamStub struct {
	mu          sync.Mutex
	lastAuth    string
	lastQuery   url.Values
	orderStatus string
}

func orderJSON(status string) map[string]any {
	return map[string]any{
		"_id":         "o1",
		"orderNumber": "ORD-1042",
		"customer": map[string]any{
			"_id": "c1", "name": "Carlos Pérez", "email": "carlos@example.com",
			"phone": "555-0100", "shippingAddress": "Av. Siempre Viva 742",
		},
		"items": []map[string]any{
			{"product": map[string]any{"_id": "p1", "name": "Keyboard", "images": []string{}}, "quantity": 2},
		},
		"status":      status,
		"createdAt":   "2026-08-20T10:00:00Z",
		"notes":       "",
		"totalAmount": 45.5,
	}
}

func (u *upstreamStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/delivery/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "rider@example.com" || body.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "t1",
			"user": map[string]any{
				"id": "u1", "fullName": "Rider One", "email": body.Email,
				"phone": "555-0101", "vehicle": "moto",
			},
		})
	})

	mux.HandleFunc("GET /api/delivery/orders", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.lastAuth = r.Header.Get("Authorization")
		u.lastQuery = r.URL.Query()
		status := u.orderStatus
		u.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"orders": []any{orderJSON(status)},
		})
	})

	mux.HandleFunc("GET /api/delivery/orders/o1", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		status := u.orderStatus
		u.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"order": orderJSON(status)})
	})

	mux.HandleFunc("PUT /api/delivery/orders/o1/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		u.mu.Lock()
		u.orderStatus = body.Status
		status := u.orderStatus
		u.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{"order": orderJSON(status)})
	})

	return mux
}

// buildApp levanta la app completa (gateways reales contra el stub) igual que
// el main, con la credencial en un directorio temporal.
func buildApp(t *testing.T, upstreamURL string) (*fiber.App, *session.Controller) {
	t.Helper()

	log := logger.Nop()
	client := delivery.NewClient(upstreamURL, 0, log)
	authGateway := delivery.NewAuthGateway(client)
	orderGateway := delivery.NewOrderGateway(client)

	store := credstore.New(filepath.Join(t.TempDir(), "token.json"))
	sessionCtrl := session.NewController(authGateway, store, log)
	listCtrl := orders.NewListController(orderGateway, sessionCtrl, log)
	detailCtrl := orders.NewDetailController(orderGateway, sessionCtrl, log)
	runSheetUC := runsheet.NewUseCase(orderGateway, sessionCtrl, sessionCtrl,
		infrapdf.NewMarotoRunSheetGenerator())

	app := fiber.New(fiber.Config{Views: apphttp.NewViewEngine()})
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		Session:  sessionCtrl,
		List:     listCtrl,
		Detail:   detailCtrl,
		RunSheet: runSheetUC,
	})
	return app, sessionCtrl
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de flujo completo
// ──────────────────────────────────────────────────────────────────────────────

// Login correcto → redirect al dashboard y la siguiente carga del listado
// viaja al upstream con el bearer token recién emitido.
func TestLogin_FlujoCompletoHastaDashboard(t *testing.T) {
	stub := &upstreamStub{orderStatus: "ready_for_pickup"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, sess := buildApp(t, srv.URL)

	resp := postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"secret1"},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.True(t, sess.Authenticated())

	resp = doGet(t, app, "/")
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ORD-1042")
	assert.Contains(t, body, "Rider One")

	stub.mu.Lock()
	defer stub.mu.Unlock()
	assert.Equal(t, "Bearer t1", stub.lastAuth)
}

// Credenciales rechazadas → 401 con el mensaje genérico, sin sesión.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	stub := &upstreamStub{orderStatus: "pending"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, sess := buildApp(t, srv.URL)

	resp := postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"wrong"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Invalid email or password.")
	assert.False(t, sess.Authenticated())
}

// El filtro del dashboard viaja al servidor como query param; "all" no manda
// parámetro.
func TestDashboard_FiltroViajaAlServidor(t *testing.T) {
	stub := &upstreamStub{orderStatus: "ready_for_pickup"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, _ := buildApp(t, srv.URL)
	postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"secret1"},
	}).Body.Close()

	doGet(t, app, "/?status=ready_for_pickup").Body.Close()
	stub.mu.Lock()
	assert.Equal(t, "ready_for_pickup", stub.lastQuery.Get("status"))
	stub.mu.Unlock()

	doGet(t, app, "/").Body.Close()
	stub.mu.Lock()
	assert.Empty(t, stub.lastQuery.Get("status"))
	stub.mu.Unlock()
}

// Transición de estado desde el detalle: redirect con mensaje de confirmación
// en la cookie flash y el pedido actualizado con la respuesta del servidor.
func TestUpdateStatus_ConfirmacionYEstadoNuevo(t *testing.T) {
	stub := &upstreamStub{orderStatus: "ready_for_pickup"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, _ := buildApp(t, srv.URL)
	postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"secret1"},
	}).Body.Close()

	resp := postForm(t, app, "/orders/o1/status", url.Values{
		"status": {"out_for_delivery"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/orders/o1", resp.Header.Get("Location"))

	var flash *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "flash" {
			flash = ck
		}
	}
	require.NotNil(t, flash, "el redirect debe llevar la cookie flash")

	req := httptest.NewRequest(http.MethodGet, "/orders/o1", nil)
	req.AddCookie(flash)
	detResp, err := app.Test(req, -1)
	require.NoError(t, err)
	body := readBody(t, detResp)
	assert.Contains(t, body, "Order picked up! Start delivering.")
	assert.Contains(t, body, "Mark as Delivered")
	assert.Contains(t, body, "Cancel Delivery")
}

// Una transición que el ciclo de vida no permite no llega al servidor y vuelve
// con el aviso correspondiente.
func TestUpdateStatus_TransicionNoPermitida(t *testing.T) {
	stub := &upstreamStub{orderStatus: "delivered"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, _ := buildApp(t, srv.URL)
	postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"secret1"},
	}).Body.Close()

	resp := postForm(t, app, "/orders/o1/status", url.Values{
		"status": {"out_for_delivery"},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// El pedido sigue entregado: el stub no recibió ningún PUT.
	stub.mu.Lock()
	assert.Equal(t, "delivered", stub.orderStatus)
	stub.mu.Unlock()
}

// Logout limpia la sesión y las vistas protegidas vuelven a exigir login.
func TestLogout_ProtegeElDashboard(t *testing.T) {
	stub := &upstreamStub{orderStatus: "pending"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	app, sess := buildApp(t, srv.URL)
	postForm(t, app, "/login", url.Values{
		"email":    {"rider@example.com"},
		"password": {"secret1"},
	}).Body.Close()
	require.True(t, sess.Authenticated())

	resp := postForm(t, app, "/logout", url.Values{})
	resp.Body.Close()
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.False(t, sess.Authenticated())

	resp = doGet(t, app, "/")
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

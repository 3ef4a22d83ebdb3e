package delivery

import (
	"context"
	"net/http"

	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

// AuthGateway llamadas de autenticación del repartidor contra el API remoto.
type AuthGateway struct {
	client *Client
}

// NewAuthGateway construye el gateway de auth.
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle,omitempty"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type meResponse struct {
	User wireUser `json:"user"`
}

// Login autentica email/password. Devuelve el token emitido y el perfil.
// Un 401 del API llega como domain.ErrInvalidCredentials.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, entity.User, error) {
	var out authResponse
	err := g.client.doJSON(ctx, http.MethodPost, "/api/delivery/auth/login", "",
		nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", entity.User{}, err
	}
	return out.Token, toUser(out.User), nil
}

// Register da de alta al repartidor y devuelve token + perfil, igual que Login.
func (g *AuthGateway) Register(ctx context.Context, fullName, email, password, phone, vehicle string) (string, entity.User, error) {
	var out authResponse
	err := g.client.doJSON(ctx, http.MethodPost, "/api/delivery/auth/register", "",
		nil, registerRequest{
			FullName: fullName,
			Email:    email,
			Password: password,
			Phone:    phone,
			Vehicle:  vehicle,
		}, &out)
	if err != nil {
		return "", entity.User{}, err
	}
	return out.Token, toUser(out.User), nil
}

// Verify valida un token almacenado contra /auth/me y devuelve el perfil.
// Token inválido o vencido llega como domain.ErrInvalidCredentials.
func (g *AuthGateway) Verify(ctx context.Context, token string) (entity.User, error) {
	var out meResponse
	err := g.client.doJSON(ctx, http.MethodGet, "/api/delivery/auth/me", token, nil, nil, &out)
	if err != nil {
		return entity.User{}, err
	}
	return toUser(out.User), nil
}

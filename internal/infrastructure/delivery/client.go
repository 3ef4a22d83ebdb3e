// Package delivery implementa los gateways HTTP contra el API REST de
// delivery del sistema remoto (la fuente de verdad de usuarios y pedidos).
// Cada llamada es un request/response único: sin reintentos, sin caché.
package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/courier-dashboard/internal/domain"
	"github.com/jhoicas/courier-dashboard/pkg/logger"
)

// maxBodySize límite de lectura del cuerpo de respuesta.
const maxBodySize = 1 << 20 // 1 MiB

// Client cliente HTTP compartido por los gateways de auth y de pedidos.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL sin slash final.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// apiError cuerpo de error que devuelve el API remoto. Solo se usa para log;
// hacia arriba siempre viaja un error de dominio tipado.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON ejecuta una petición JSON contra el API remoto y decodifica la
// respuesta 2xx en out. Traduce fallos de transporte y códigos HTTP a errores
// de dominio: 401 → ErrInvalidCredentials, 404 → ErrNotFound, resto → ErrUnavailable.
func (c *Client) doJSON(ctx context.Context, method, path, token string, query url.Values, body, out any) error {
	reqID := uuid.New().String()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("delivery: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("delivery: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("req_id", reqID).Str("method", method).Str("path", path).
			Err(err).Msg("llamada al API de delivery fallida")
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", domain.ErrUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUnavailable, err)
	}

	c.log.Debug().Str("req_id", reqID).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).
		Msg("llamada al API de delivery")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(rawBody, &ae)
		msg := ae.Message
		if msg == "" {
			msg = ae.Error
		}
		c.log.Warn().Str("req_id", reqID).Str("method", method).Str("path", path).
			Int("status", resp.StatusCode).Str("api_message", msg).
			Msg("API de delivery respondió error")

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domain.ErrInvalidCredentials
		case http.StatusNotFound:
			return domain.ErrNotFound
		default:
			return fmt.Errorf("%w: HTTP %d", domain.ErrUnavailable, resp.StatusCode)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return nil
}

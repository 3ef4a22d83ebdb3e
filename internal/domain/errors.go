package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrNotAuthenticated   = errors.New("sesión no autenticada")
	ErrUnavailable        = errors.New("servicio remoto no disponible")
	ErrDecode             = errors.New("respuesta remota malformada")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrValidation         = errors.New("entrada inválida")
)

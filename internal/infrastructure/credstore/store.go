// Package credstore persiste el bearer token del repartidor entre reinicios
// de la aplicación. Es el equivalente local de la cookie "delivery-token" del
// dashboard web anterior: un archivo JSON con el token y su vencimiento.
package credstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// TTL fijo del token emitido por el sistema remoto: 7 días desde su emisión.
const CredentialTTL = 7 * 24 * time.Hour

// legacyProfileFile archivo de perfil que escribían builds antiguos. Nunca se
// lee; se elimina en Clear() igual que hacía el logout del dashboard anterior.
const legacyProfileFile = "delivery-user.json"

type credentialFile struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store guarda el token en disco con su vencimiento.
type Store struct {
	path string
	now  func() time.Time
}

// New construye un Store sobre la ruta configurada.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// NewWithClock permite inyectar el reloj (tests de expiración).
func NewWithClock(path string, now func() time.Time) *Store {
	return &Store{path: path, now: now}
}

// Get devuelve el token almacenado. Si no existe, está corrupto o ya venció,
// devuelve ok=false; un archivo vencido se elimina al leerlo.
func (s *Store) Get() (token string, ok bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	var cf credentialFile
	if err := json.Unmarshal(raw, &cf); err != nil || cf.Token == "" {
		return "", false
	}
	if s.now().After(cf.ExpiresAt) {
		_ = os.Remove(s.path)
		return "", false
	}
	return cf.Token, true
}

// Set persiste el token con vencimiento ahora + 7 días (0600: solo el dueño lo lee).
func (s *Store) Set(token string) error {
	cf := credentialFile{
		Token:     token,
		ExpiresAt: s.now().Add(CredentialTTL),
	}
	raw, err := json.Marshal(cf)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear elimina el token y el archivo de perfil legacy adyacente.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	// Artefacto muerto de versiones anteriores; se limpia pero nunca se lee.
	legacy := filepath.Join(filepath.Dir(s.path), legacyProfileFile)
	if err := os.Remove(legacy); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

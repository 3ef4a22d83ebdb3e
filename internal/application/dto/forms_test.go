package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/courier-dashboard/internal/application/dto"
	"github.com/jhoicas/courier-dashboard/internal/domain"
)

func validRegister() dto.RegisterForm {
	return dto.RegisterForm{
		FullName: "María Gómez",
		Email:    "maria@example.com",
		Password: "secret1",
		Phone:    "3017654321",
	}
}

func TestRegisterForm_Valido(t *testing.T) {
	v := dto.NewValidator()
	assert.NoError(t, dto.Validate(v, validRegister()))

	// Vehicle es opcional
	f := validRegister()
	f.Vehicle = "moto"
	assert.NoError(t, dto.Validate(v, f))
}

// Frontera del largo de password: 5 se rechaza localmente, 6 pasa.
func TestRegisterForm_LargoDePassword(t *testing.T) {
	v := dto.NewValidator()

	f := validRegister()
	f.Password = "cinco"
	err := dto.Validate(v, f)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "at least 6")

	f.Password = "seis__"
	assert.NoError(t, dto.Validate(v, f))
}

func TestRegisterForm_CamposRequeridos(t *testing.T) {
	v := dto.NewValidator()

	cases := []struct {
		name   string
		mutate func(*dto.RegisterForm)
	}{
		{"sin nombre", func(f *dto.RegisterForm) { f.FullName = "" }},
		{"sin email", func(f *dto.RegisterForm) { f.Email = "" }},
		{"sin password", func(f *dto.RegisterForm) { f.Password = "" }},
		{"sin phone", func(f *dto.RegisterForm) { f.Phone = "" }},
		{"email malformado", func(f *dto.RegisterForm) { f.Email = "no-es-email" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validRegister()
			tc.mutate(&f)
			assert.ErrorIs(t, dto.Validate(v, f), domain.ErrValidation)
		})
	}
}

func TestLoginForm(t *testing.T) {
	v := dto.NewValidator()

	assert.NoError(t, dto.Validate(v, dto.LoginForm{Email: "john@example.com", Password: "x"}))
	assert.ErrorIs(t, dto.Validate(v, dto.LoginForm{Password: "x"}), domain.ErrValidation)
	assert.ErrorIs(t, dto.Validate(v, dto.LoginForm{Email: "john@example.com"}), domain.ErrValidation)
}

package dto

import (
	"errors"
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/jhoicas/courier-dashboard/internal/domain"
)

// LoginForm credenciales del formulario de login.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm alta de repartidor. La validación corre antes de cualquier
// llamada de red: campos requeridos y password de mínimo 6 caracteres.
type RegisterForm struct {
	FullName string `form:"fullName" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Phone    string `form:"phone" validate:"required"`
	Vehicle  string `form:"vehicle"` // opcional
}

// NewValidator devuelve el validador configurado para los formularios.
func NewValidator() *validatorv10.Validate {
	return validatorv10.New()
}

// Validate valida un formulario y traduce los fallos a un domain.ErrValidation
// con mensajes para mostrar inline en el formulario.
func Validate(v *validatorv10.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validatorv10.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldLabel(fe.Field()))
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldLabel(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldLabel(fe.Field()))
	}
}

func fieldLabel(field string) string {
	switch field {
	case "FullName":
		return "full name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "Phone":
		return "phone"
	default:
		return strings.ToLower(field)
	}
}

// Package register drives the sign-up form: local validation, role
// mapping, and the user creation call.
package register

import (
	"context"
	"fmt"
	"time"

	"course-market/internal/domain"
	"course-market/internal/marketapi"
	"course-market/internal/validate"
)

const msgPasswordMismatch = "Las contraseñas no coinciden"

// Form is the raw sign-up input as the user typed it.
type Form struct {
	CompleteName    string    `json:"completeName" validate:"required"`
	Birthdate       time.Time `json:"birthdate" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	Password        string    `json:"password" validate:"required"`
	ConfirmPassword string    `json:"confirmPassword" validate:"required"`
	IsProfessor     bool      `json:"isProfessor"`
}

// InvalidFormError reports the sign-up fields that failed validation.
type InvalidFormError struct {
	Fields map[string]string
}

func (e *InvalidFormError) Error() string {
	return "register: formulario de registro inválido"
}

// API is the slice of the marketplace client registration needs.
type API interface {
	RegisterUser(ctx context.Context, req marketapi.RegisterUserRequest) error
}

type Registrar struct {
	api API
}

func New(api API) *Registrar {
	return &Registrar{api: api}
}

// Register validates the form and creates the user. The professor
// checkbox maps to the backend role id, and the birthdate goes over the
// wire as YYYY-MM-DD.
func (r *Registrar) Register(ctx context.Context, form Form) error {
	fields := validate.Struct(form)
	if form.Password != "" && form.Password != form.ConfirmPassword {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["confirmPassword"] = msgPasswordMismatch
	}
	if len(fields) > 0 {
		return &InvalidFormError{Fields: fields}
	}

	roleID := domain.RoleStudent
	if form.IsProfessor {
		roleID = domain.RoleProfessor
	}
	req := marketapi.RegisterUserRequest{
		CompleteName: form.CompleteName,
		Birthdate:    form.Birthdate.Format("2006-01-02"),
		Email:        form.Email,
		Password:     form.Password,
		RoleID:       roleID,
	}
	if err := r.api.RegisterUser(ctx, req); err != nil {
		return fmt.Errorf("register: crear usuario %s: %w", form.Email, err)
	}
	return nil
}

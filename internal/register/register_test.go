package register

import (
	"context"
	"errors"
	"testing"
	"time"

	"course-market/internal/domain"
	"course-market/internal/marketapi"
)

type fakeAPI struct {
	calls []marketapi.RegisterUserRequest
	err   error
}

func (f *fakeAPI) RegisterUser(ctx context.Context, req marketapi.RegisterUserRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

func validForm() Form {
	return Form{
		CompleteName:    "Ana Pérez",
		Birthdate:       time.Date(1999, time.March, 15, 0, 0, 0, 0, time.UTC),
		Email:           "ana@example.com",
		Password:        "secreta123",
		ConfirmPassword: "secreta123",
	}
}

func TestRegisterStudent(t *testing.T) {
	api := &fakeAPI{}
	r := New(api)

	if err := r.Register(context.Background(), validForm()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("Expected one call, got %d", len(api.calls))
	}
	req := api.calls[0]
	if req.RoleID != domain.RoleStudent {
		t.Errorf("Expected student role %d, got %d", domain.RoleStudent, req.RoleID)
	}
	if req.Birthdate != "1999-03-15" {
		t.Errorf("Expected birthdate '1999-03-15', got '%s'", req.Birthdate)
	}
	if req.CompleteName != "Ana Pérez" || req.Email != "ana@example.com" {
		t.Errorf("Unexpected payload: %+v", req)
	}
}

func TestRegisterProfessorRole(t *testing.T) {
	api := &fakeAPI{}
	r := New(api)

	form := validForm()
	form.IsProfessor = true
	if err := r.Register(context.Background(), form); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if api.calls[0].RoleID != domain.RoleProfessor {
		t.Errorf("Expected professor role %d, got %d", domain.RoleProfessor, api.calls[0].RoleID)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	api := &fakeAPI{}
	r := New(api)

	form := validForm()
	form.ConfirmPassword = "otra"
	err := r.Register(context.Background(), form)

	var invalid *InvalidFormError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidFormError, got %v", err)
	}
	if invalid.Fields["confirmPassword"] != msgPasswordMismatch {
		t.Errorf("Expected %q, got %v", msgPasswordMismatch, invalid.Fields)
	}
	if len(api.calls) != 0 {
		t.Errorf("Expected no call, got %d", len(api.calls))
	}
}

func TestRegisterMissingFields(t *testing.T) {
	api := &fakeAPI{}
	r := New(api)

	err := r.Register(context.Background(), Form{Email: "no-es-correo"})

	var invalid *InvalidFormError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidFormError, got %v", err)
	}
	for _, field := range []string{"completeName", "birthdate", "email", "password"} {
		if invalid.Fields[field] == "" {
			t.Errorf("Expected an error for %s, got %v", field, invalid.Fields)
		}
	}
}

func TestRegisterBackendFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("status=500")}
	r := New(api)

	if err := r.Register(context.Background(), validForm()); err == nil {
		t.Fatal("Expected backend error to propagate")
	}
}

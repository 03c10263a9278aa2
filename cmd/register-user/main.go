package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"course-market/internal/config"
	"course-market/internal/marketapi"
	"course-market/internal/register"
	"course-market/internal/session"
)

func main() {
	var (
		name      = flag.String("name", "", "complete name (required)")
		birthdate = flag.String("birthdate", "", "birthdate YYYY-MM-DD (required)")
		email     = flag.String("email", "", "email (required)")
		password  = flag.String("password", "", "password (required)")
		confirm   = flag.String("confirm", "", "password confirmation (required)")
		professor = flag.Bool("professor", false, "register as professor")
	)
	flag.Parse()

	if err := run(*name, *birthdate, *email, *password, *confirm, *professor); err != nil {
		log.Fatalf("registration failed: %v", err)
	}
	fmt.Printf("OK: user %s registered\n", *email)
}

func run(name, birthdate, email, password, confirm string, professor bool) error {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var born time.Time
	if birthdate != "" {
		var err error
		born, err = time.Parse("2006-01-02", birthdate)
		if err != nil {
			return fmt.Errorf("parse birthdate: %w", err)
		}
	}

	client := marketapi.New(cfg.BaseURL, session.StaticToken(""))
	r := register.New(client)

	err := r.Register(ctx, register.Form{
		CompleteName:    name,
		Birthdate:       born,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
		IsProfessor:     professor,
	})
	if err != nil {
		var invalid *register.InvalidFormError
		if errors.As(err, &invalid) {
			for field, msg := range invalid.Fields {
				log.Printf("ERR %s: %s", field, msg)
			}
		}
		return err
	}
	return nil
}

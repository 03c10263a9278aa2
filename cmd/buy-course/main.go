package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"course-market/internal/checkout"
	"course-market/internal/config"
	"course-market/internal/devutil"
	"course-market/internal/domain"
	"course-market/internal/marketapi"
	"course-market/internal/session"
)

func main() {
	var (
		courseID = flag.String("course", "", "course id to buy (required)")
		userID   = flag.String("user", "", "buyer user id (required)")
		token    = flag.String("token", "", "bearer token (falls back to MARKET_TOKEN)")
		method   = flag.String("method", checkout.MethodPayPal, "payment method (creditCard, debitCard, paypal, bankTransfer, mercadoPago)")
		card     = flag.String("card", "", "card number (card methods)")
		expiry   = flag.String("expiry", "", "card expiry MM/YY (card methods)")
		cvv      = flag.String("cvv", "", "card security code (card methods)")
		holder   = flag.String("holder", "", "card holder name (card methods)")
		bankRef  = flag.String("bank-ref", "", "bank transfer reference")
	)
	flag.Parse()

	if *courseID == "" || *userID == "" {
		log.Fatal("missing flags: -course and -user are required")
	}
	tok := *token
	if tok == "" {
		tok = os.Getenv("MARKET_TOKEN")
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client := marketapi.New(cfg.BaseURL, session.StaticToken(tok))
	user := &domain.User{Sub: *userID}
	course := &domain.Course{ID: *courseID}

	co := checkout.New(client, user, course)
	details := checkout.PaymentDetails{
		Method:         *method,
		CardNumber:     *card,
		ExpiryDate:     *expiry,
		CVV:            *cvv,
		CardHolderName: *holder,
		BankReference:  *bankRef,
	}

	log.Printf("Processing payment (%s)...", *method)
	result, err := co.Purchase(ctx, details)
	if err != nil {
		var invalid *checkout.InvalidPaymentError
		if errors.As(err, &invalid) {
			for field, msg := range invalid.Fields {
				log.Printf("ERR %s: %s", field, msg)
			}
		}
		if result.Message != "" {
			log.Printf("%s", result.Message)
		}
		log.Fatalf("purchase failed: %v", err)
	}

	fmt.Println(result.Message)
	if result.Purchased {
		fmt.Printf("%v\n", devutil.Pick(struct {
			User   string `json:"user"`
			Course string `json:"course"`
			Method string `json:"method"`
		}{*userID, *courseID, *method}, "user", "course", "method"))
	}
}

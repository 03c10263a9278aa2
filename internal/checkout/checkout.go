// Package checkout drives the purchase flow of a course: payment form
// validation, a simulated processing window, and the purchase call.
package checkout

import (
	"context"
	"errors"
	"time"

	"course-market/internal/domain"
	"course-market/internal/marketapi"
	"course-market/internal/validate"
)

// ErrPreconditionMissing means the checkout was reached without a course
// or a signed-in user to buy it with.
var ErrPreconditionMissing = errors.New("checkout: falta información del curso o usuario")

// processingDelay imitates the payment gateway round trip.
const processingDelay = 2 * time.Second

// Payment methods accepted by the form.
const (
	MethodCreditCard   = "creditCard"
	MethodDebitCard    = "debitCard"
	MethodPayPal       = "paypal"
	MethodBankTransfer = "bankTransfer"
	MethodMercadoPago  = "mercadoPago"
)

// PaymentDetails carries the form fields. Card fields are required only
// for card methods, the bank reference only for transfers.
type PaymentDetails struct {
	Method         string `json:"paymentMethod" validate:"required,oneof=creditCard debitCard paypal bankTransfer mercadoPago"`
	CardNumber     string `json:"cardNumber" validate:"required_if=Method creditCard,required_if=Method debitCard,omitempty,len=16,numeric"`
	ExpiryDate     string `json:"expiryDate" validate:"required_if=Method creditCard,required_if=Method debitCard,omitempty,len=5"`
	CVV            string `json:"cvv" validate:"required_if=Method creditCard,required_if=Method debitCard,omitempty,len=3,numeric"`
	CardHolderName string `json:"cardHolderName" validate:"required_if=Method creditCard,required_if=Method debitCard"`
	BankReference  string `json:"bankReference" validate:"required_if=Method bankTransfer"`
}

// Validate returns the per-field messages for the chosen method, empty
// when the form is complete.
func (d PaymentDetails) Validate() map[string]string {
	return validate.Struct(d)
}

// Notification messages surfaced to the user.
const (
	MsgSuccess          = "Compra exitosa"
	MsgAlreadyPurchased = "Ya compraste este curso"
	MsgTransportFailure = "No se pudo conectar con el servidor. Inténtalo de nuevo más tarde."
)

// Result is the outcome of a purchase attempt.
type Result struct {
	Purchased bool
	Message   string
}

// API is the slice of the marketplace client checkout needs.
type API interface {
	BuyCourse(ctx context.Context, userID, courseID string) (map[string]any, error)
}

type Checkout struct {
	api    API
	user   *domain.User
	course *domain.Course
	delay  time.Duration
}

func New(api API, user *domain.User, course *domain.Course) *Checkout {
	return &Checkout{api: api, user: user, course: course, delay: processingDelay}
}

// Purchase validates the payment form, waits out the simulated processing
// window, and posts the purchase. The delay honors context cancellation.
func (c *Checkout) Purchase(ctx context.Context, details PaymentDetails) (Result, error) {
	if c.course == nil || c.user == nil {
		return Result{}, ErrPreconditionMissing
	}
	if errs := details.Validate(); len(errs) > 0 {
		return Result{}, &InvalidPaymentError{Fields: errs}
	}

	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	_, err := c.api.BuyCourse(ctx, c.user.Sub, c.course.ID)
	if err != nil {
		var conflict *marketapi.ConflictError
		if errors.As(err, &conflict) {
			msg := conflict.Message
			if msg == "" {
				msg = MsgAlreadyPurchased
			}
			return Result{Message: msg}, nil
		}
		return Result{Message: MsgTransportFailure}, err
	}
	return Result{Purchased: true, Message: MsgSuccess}, nil
}

// InvalidPaymentError reports the payment form fields that failed
// validation. No purchase request is made.
type InvalidPaymentError struct {
	Fields map[string]string
}

func (e *InvalidPaymentError) Error() string {
	return "checkout: datos de pago inválidos"
}

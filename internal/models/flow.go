package models

import "time"

type PaymentStep string

const (
	StepInput                PaymentStep = "input"
	StepConfirm              PaymentStep = "confirm"
	StepMethod               PaymentStep = "method"
	StepGatewayAccountSelect PaymentStep = "gateway_account_select"
	StepGatewayNumber        PaymentStep = "gateway_number"
	StepGatewayOTP           PaymentStep = "gateway_otp"
	StepGatewayPIN           PaymentStep = "gateway_pin"
	StepSuccess              PaymentStep = "success"
)

// Gateway reports whether the step is one of the simulated wallet screens.
func (s PaymentStep) Gateway() bool {
	switch s {
	case StepGatewayAccountSelect, StepGatewayNumber, StepGatewayOTP, StepGatewayPIN:
		return true
	}
	return false
}

type TicketStep string

const (
	TicketStepList    TicketStep = "list"
	TicketStepPayment TicketStep = "payment"
	TicketStepSuccess TicketStep = "success"
)

// Location is a resolved district/upazila pair.
type Location struct {
	District string `json:"district"`
	Upazila  string `json:"upazila"`
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// Toast is a transient, non-blocking notice for the device to render.
type Toast struct {
	ID        string    `json:"id"`
	Kind      ToastKind `json:"type"`
	Message   string    `json:"message"`
	Sound     string    `json:"sound,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

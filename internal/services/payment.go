package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

const (
	transactionDateLayout = "02/01/2006, 15:04:05"
	mobileNumberLength    = 11
	otpLength             = 4
	minPINLength          = 4
)

// Gateway is the wallet checkout a payment session talks to.
type Gateway interface {
	Available(ctx context.Context) bool
	VerifyAccount(ctx context.Context, req dto.GatewayAccountRequest) error
	VerifyOTP(ctx context.Context, req dto.GatewayOTPRequest) error
	Authorize(ctx context.Context, req dto.GatewayAuthorizeRequest) (dto.GatewayReceipt, error)
}

type paymentLedger interface {
	AccountsFor(provider string) []models.LinkedAccount
	Account(id string) (models.LinkedAccount, bool)
	RecordTransaction(ctx context.Context, tx models.Transaction)
}

type locationResolver interface {
	Resolve(district, upazila string) (models.Location, bool)
}

type languageSource interface {
	Language() models.Language
}

type paymentSession struct {
	id         string
	service    string
	location   models.Location
	step       models.PaymentStep
	provider   models.ServiceProvider
	account    string
	amount     decimal.Decimal
	amountText string
	method     string

	// gatewayNumber is the wallet number verified for this session. OTP and
	// PIN are handed straight to the gateway and never kept.
	gatewayNumber string

	processing  bool
	authorizing bool
	cancel      context.CancelFunc
	generation  uint64

	receipt *models.Transaction
}

// paymentService drives the bill-payment modal. At most one session is open
// and at most one gateway call per session is in flight.
type paymentService struct {
	mu      sync.Mutex
	session *paymentSession

	gateway   Gateway
	ledger    paymentLedger
	toasts    toaster
	locations locationResolver
	language  languageSource
	timeout   time.Duration
	zone      *time.Location
	clockNow  func() time.Time

	closeOther func(ctx context.Context) error
}

func NewPaymentService(gateway Gateway, ledger paymentLedger, toasts toaster, locations locationResolver, language languageSource, timeout time.Duration, zone *time.Location) *paymentService {
	if zone == nil {
		zone = time.UTC
	}
	return &paymentService{
		gateway:   gateway,
		ledger:    ledger,
		toasts:    toasts,
		locations: locations,
		language:  language,
		timeout:   timeout,
		zone:      zone,
		clockNow:  time.Now,
	}
}

func (s *paymentService) Catalog() dto.PaymentCatalog {
	catalog := dto.PaymentCatalog{
		Services:        map[string][]models.ServiceProvider{},
		Placeholders:    map[string]string{},
		Wallets:         append([]string(nil), seed.Wallets...),
		TicketProviders: map[string][]models.TicketProvider{},
	}
	for _, service := range seed.BillServices() {
		catalog.Services[service], _ = seed.Providers(service)
		catalog.Placeholders[service] = seed.Placeholder(service)
	}
	for _, service := range []string{seed.ServiceTrainTicket, seed.ServiceBusTicket} {
		catalog.TicketProviders[service], _ = seed.TicketProviders(service)
	}
	return catalog
}

// Open starts a fresh session, replacing any previous one. A location must
// have been chosen first.
func (s *paymentService) Open(ctx context.Context, req dto.OpenSessionRequest) (dto.PaymentSessionView, error) {
	if _, ok := seed.Providers(req.Service); !ok {
		return dto.PaymentSessionView{}, errs.NewValidationError(fmt.Sprintf("unknown service %q", req.Service))
	}
	loc, ok := s.locations.Resolve(req.District, req.Upazila)
	if !ok {
		return dto.PaymentSessionView{}, errs.NewValidationError("location required: select a district and upazila")
	}
	if s.closeOther != nil {
		if err := s.closeOther(ctx); err != nil {
			return dto.PaymentSessionView{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil && s.session.authorizing {
		return dto.PaymentSessionView{}, errs.NewInvalidStateError("payment authorization in progress")
	}
	s.discardLocked()

	s.session = &paymentSession{
		id:       uuid.NewString(),
		service:  req.Service,
		location: loc,
		step:     models.StepInput,
	}

	logger.FromContext(ctx).Info("payment session opened",
		"session_id", s.session.id, "service", req.Service, "district", loc.District)
	return s.viewLocked(), nil
}

func (s *paymentService) Current(ctx context.Context) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return dto.PaymentSessionView{}, errs.NewNotFoundError("no open payment session")
	}
	return s.viewLocked(), nil
}

// Close discards the session. Closing with nothing open is a no-op.
func (s *paymentService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	if s.session.authorizing {
		return errs.NewInvalidStateError("payment authorization in progress")
	}
	logger.FromContext(ctx).Info("payment session closed", "session_id", s.session.id, "step", s.session.step)
	s.discardLocked()
	return nil
}

func (s *paymentService) Submit(ctx context.Context, in dto.PaymentInput) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepInput)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}

	providerName := strings.TrimSpace(in.Provider)
	account := strings.TrimSpace(in.AccountNumber)
	if providerName == "" || account == "" {
		return dto.PaymentSessionView{}, errs.NewValidationError("Please fill all fields")
	}
	provider, ok := seed.Provider(sess.service, providerName)
	if !ok {
		return dto.PaymentSessionView{}, errs.NewValidationError(fmt.Sprintf("unknown provider %q for %s", providerName, sess.service))
	}
	if sess.service == seed.ServiceMobileRecharge && (len(account) != mobileNumberLength || !helpers.IsDigits(account)) {
		return dto.PaymentSessionView{}, errs.NewValidationError("Mobile number must be 11 digits")
	}
	amountText := strings.TrimSpace(in.Amount)
	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amount.IsPositive() {
		return dto.PaymentSessionView{}, errs.NewValidationError("Please enter a valid amount")
	}

	sess.provider = provider
	sess.account = account
	sess.amount = amount
	sess.amountText = amountText
	sess.step = models.StepConfirm
	return s.viewLocked(), nil
}

func (s *paymentService) Proceed(ctx context.Context) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepConfirm)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	sess.step = models.StepMethod
	return s.viewLocked(), nil
}

// Back moves confirm to input and method to confirm, keeping entered values.
func (s *paymentService) Back(ctx context.Context) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepConfirm, models.StepMethod)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	if sess.step == models.StepConfirm {
		sess.step = models.StepInput
	} else {
		sess.step = models.StepConfirm
	}
	return s.viewLocked(), nil
}

func (s *paymentService) SelectMethod(ctx context.Context, method string) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepMethod)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	if !seed.IsWallet(method) {
		return dto.PaymentSessionView{}, errs.NewValidationError(fmt.Sprintf("unsupported payment method %q", method))
	}

	sess.method = method
	sess.gatewayNumber = ""
	if len(s.ledger.AccountsFor(method)) > 0 {
		sess.step = models.StepGatewayAccountSelect
	} else {
		sess.step = models.StepGatewayNumber
	}
	return s.viewLocked(), nil
}

func (s *paymentService) UseSavedAccount(ctx context.Context, accountID string) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepGatewayAccountSelect)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	acct, ok := s.ledger.Account(accountID)
	if !ok {
		return dto.PaymentSessionView{}, errs.NewNotFoundError("linked account not found")
	}
	if !strings.EqualFold(acct.Provider, sess.method) {
		return dto.PaymentSessionView{}, errs.NewValidationError(fmt.Sprintf("account is not a %s account", sess.method))
	}

	err = s.runGatewayStepLocked(ctx, sess, false, func(ctx context.Context) error {
		return s.gateway.VerifyAccount(ctx, dto.GatewayAccountRequest{Wallet: sess.method, Number: acct.Number, Saved: true})
	})
	if err != nil {
		return dto.PaymentSessionView{}, s.gatewayFailureLocked(ctx, err)
	}

	sess.gatewayNumber = acct.Number
	sess.step = models.StepGatewayOTP
	return s.viewLocked(), nil
}

func (s *paymentService) UseAnotherAccount(ctx context.Context) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepGatewayAccountSelect)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	sess.gatewayNumber = ""
	sess.step = models.StepGatewayNumber
	return s.viewLocked(), nil
}

func (s *paymentService) SubmitNumber(ctx context.Context, number string) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepGatewayNumber)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	number = strings.TrimSpace(number)
	if len(number) != mobileNumberLength || !helpers.IsDigits(number) {
		s.notice(ctx, noticeInvalidNumber)
		return dto.PaymentSessionView{}, errs.NewValidationError("Invalid mobile number")
	}

	err = s.runGatewayStepLocked(ctx, sess, false, func(ctx context.Context) error {
		return s.gateway.VerifyAccount(ctx, dto.GatewayAccountRequest{Wallet: sess.method, Number: number})
	})
	if err != nil {
		return dto.PaymentSessionView{}, s.gatewayFailureLocked(ctx, err)
	}

	sess.gatewayNumber = number
	sess.step = models.StepGatewayOTP
	return s.viewLocked(), nil
}

func (s *paymentService) SubmitOTP(ctx context.Context, otp string) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepGatewayOTP)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	otp = strings.TrimSpace(otp)
	if len(otp) != otpLength || !helpers.IsDigits(otp) {
		return dto.PaymentSessionView{}, errs.NewValidationError("Verification code must be 4 digits")
	}

	number := sess.gatewayNumber
	err = s.runGatewayStepLocked(ctx, sess, false, func(ctx context.Context) error {
		return s.gateway.VerifyOTP(ctx, dto.GatewayOTPRequest{Wallet: sess.method, Number: number, OTP: otp})
	})
	if err != nil {
		return dto.PaymentSessionView{}, s.gatewayFailureLocked(ctx, err)
	}

	sess.step = models.StepGatewayPIN
	return s.viewLocked(), nil
}

// SubmitPIN authorizes the payment. Only a successful authorization touches
// the ledger, and it records exactly one transaction.
func (s *paymentService) SubmitPIN(ctx context.Context, pin string) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.activeLocked(models.StepGatewayPIN)
	if err != nil {
		return dto.PaymentSessionView{}, err
	}
	if len(pin) < minPINLength {
		return dto.PaymentSessionView{}, errs.NewValidationError("PIN must be at least 4 digits")
	}
	if !s.gateway.Available(ctx) {
		s.notice(ctx, noticeOffline)
		return dto.PaymentSessionView{}, errs.NewExternalServiceError("gateway", "Network connection error", true, nil)
	}

	// from here on a charge may happen, so the commit must outlive the request
	commitCtx := logger.Detach(ctx)

	req := dto.GatewayAuthorizeRequest{
		SessionID: sess.id,
		Service:   sess.service,
		Provider:  sess.provider.Name,
		Recipient: sess.account,
		Amount:    sess.amount,
		Wallet:    sess.method,
		Number:    sess.gatewayNumber,
		PIN:       pin,
	}

	var receipt dto.GatewayReceipt
	err = s.runGatewayStepLocked(commitCtx, sess, true, func(ctx context.Context) error {
		var err error
		receipt, err = s.gateway.Authorize(ctx, req)
		return err
	})
	if err != nil {
		var state *errs.InvalidStateError
		if errors.As(err, &state) {
			return dto.PaymentSessionView{}, err
		}
		s.notice(ctx, noticePaymentFailed)
		logger.FromContext(ctx).Warn("payment authorization failed", "session_id", sess.id, "error", err)
		return dto.PaymentSessionView{}, toGatewayError(err, "Payment failed. Please try again.")
	}

	tx := models.Transaction{
		ID:        "TXN-" + uuid.NewString(),
		Service:   sess.service,
		Provider:  sess.provider.Name,
		Amount:    sess.amountText,
		Date:      s.clockNow().In(s.zone).Format(transactionDateLayout),
		Method:    sess.method,
		Recipient: sess.account,
		Status:    models.TransactionSuccess,
	}
	s.ledger.RecordTransaction(commitCtx, tx)

	sess.receipt = &tx
	sess.gatewayNumber = ""
	sess.step = models.StepSuccess

	logger.FromContext(ctx).Info("payment completed",
		"session_id", sess.id, "transaction_id", tx.ID, "gateway_reference", receipt.Reference,
		"service", tx.Service, "method", tx.Method, "amount", tx.Amount)
	return s.viewLocked(), nil
}

// Cancel leaves the wallet screens and returns to method selection. Any
// in-flight verification is abandoned; authorization cannot be cancelled.
func (s *paymentService) Cancel(ctx context.Context) (dto.PaymentSessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session
	if sess == nil {
		return dto.PaymentSessionView{}, errs.NewNotFoundError("no open payment session")
	}
	if !sess.step.Gateway() {
		return dto.PaymentSessionView{}, errs.NewInvalidStateError(fmt.Sprintf("cannot cancel at step %s", sess.step))
	}
	if sess.authorizing {
		return dto.PaymentSessionView{}, errs.NewInvalidStateError("payment authorization in progress")
	}

	s.abortInFlightLocked(sess)
	sess.gatewayNumber = ""
	sess.step = models.StepMethod
	return s.viewLocked(), nil
}

func (s *paymentService) Receipt(ctx context.Context) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return models.Transaction{}, errs.NewNotFoundError("no open payment session")
	}
	if s.session.step != models.StepSuccess || s.session.receipt == nil {
		return models.Transaction{}, errs.NewInvalidStateError("payment is not complete")
	}
	return *s.session.receipt, nil
}

// activeLocked returns the open session if it is idle at one of steps.
func (s *paymentService) activeLocked(steps ...models.PaymentStep) (*paymentSession, error) {
	sess := s.session
	if sess == nil {
		return nil, errs.NewNotFoundError("no open payment session")
	}
	if sess.processing {
		return nil, errs.NewInvalidStateError("payment step already in progress")
	}
	for _, step := range steps {
		if sess.step == step {
			return sess, nil
		}
	}
	return nil, errs.NewInvalidStateError(fmt.Sprintf("action not allowed at step %s", sess.step))
}

// runGatewayStepLocked releases s.mu while call runs so reads and Cancel stay
// responsive, and reacquires it before returning. The caller's deferred
// Unlock stays balanced. A step whose session was cancelled or replaced
// meanwhile reports InvalidStateError and must not mutate anything.
func (s *paymentService) runGatewayStepLocked(ctx context.Context, sess *paymentSession, authorize bool, call func(ctx context.Context) error) error {
	var callCtx context.Context
	var cancel context.CancelFunc
	if s.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	sess.processing = true
	sess.authorizing = authorize
	sess.cancel = cancel
	gen := sess.generation

	s.mu.Unlock()
	err := call(callCtx)
	s.mu.Lock()

	if s.session != sess || sess.generation != gen {
		return errs.NewInvalidStateError("payment step was cancelled")
	}
	sess.processing = false
	sess.authorizing = false
	sess.cancel = nil
	return err
}

func (s *paymentService) abortInFlightLocked(sess *paymentSession) {
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}
	sess.generation++
	sess.processing = false
}

func (s *paymentService) discardLocked() {
	if s.session != nil {
		s.abortInFlightLocked(s.session)
		s.session = nil
	}
}

// gatewayFailureLocked maps a failed verification step to its caller error
// and raises the matching notice.
func (s *paymentService) gatewayFailureLocked(ctx context.Context, err error) error {
	var state *errs.InvalidStateError
	var validation *errs.ValidationError
	switch {
	case errors.As(err, &state), errors.As(err, &validation):
		return err
	}
	s.notice(ctx, noticeOffline)
	return toGatewayError(err, "Network connection error")
}

func toGatewayError(err error, message string) error {
	var ext *errs.ExternalServiceError
	if errors.As(err, &ext) {
		return err
	}
	return errs.NewExternalServiceError("gateway", message, true, err)
}

func (s *paymentService) viewLocked() dto.PaymentSessionView {
	sess := s.session
	v := dto.PaymentSessionView{
		ID:               sess.id,
		Service:          sess.service,
		Location:         sess.location,
		Step:             sess.step,
		Provider:         sess.provider.Name,
		ProviderHelpline: sess.provider.Helpline,
		AccountNumber:    sess.account,
		Amount:           sess.amountText,
		Method:           sess.method,
		Placeholder:      seed.Placeholder(sess.service),
		Processing:       sess.processing,
	}
	if sess.gatewayNumber != "" {
		v.GatewayNumber = helpers.MaskNumber(sess.gatewayNumber)
	}
	if sess.step == models.StepGatewayAccountSelect {
		for _, acct := range s.ledger.AccountsFor(sess.method) {
			acct.Number = helpers.MaskNumber(acct.Number)
			v.SavedAccounts = append(v.SavedAccounts, acct)
		}
	}
	if sess.receipt != nil {
		r := *sess.receipt
		v.Receipt = &r
	}
	return v
}

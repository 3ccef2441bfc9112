package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/dto"
	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestOpeningOneModalClosesTheOther(t *testing.T) {
	ctx := helpers.TestCtx()
	f := newPaymentFixture(t, seed.Wallet(), models.LanguageEN)
	tickets := NewTicketService(seed.NewDirectory(), 0)
	ExclusiveSessions(f.svc, tickets)
	var notFound *errs.NotFoundError

	openElectricity(t, ctx, f.svc)
	_, err := tickets.Open(ctx, dto.OpenSessionRequest{Service: seed.ServiceBusTicket, District: "Dhaka", Upazila: "Savar"})
	require.NoError(t, err)
	_, err = f.svc.Current(ctx)
	require.ErrorAs(t, err, &notFound)

	openElectricity(t, ctx, f.svc)
	_, err = tickets.Current(ctx)
	require.ErrorAs(t, err, &notFound)
	view, err := f.svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StepMethod, view.Step)
}

func TestTicketOpenWaitsForAuthorization(t *testing.T) {
	ctx := helpers.TestCtx()
	f := newPaymentFixture(t, seed.Wallet(), models.LanguageEN)
	tickets := NewTicketService(seed.NewDirectory(), 0)
	ExclusiveSessions(f.svc, tickets)
	advanceToPIN(t, ctx, f.svc)

	f.gateway.block = make(chan struct{})
	f.gateway.started = make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		_, err := f.svc.SubmitPIN(ctx, "12345")
		done <- err
	}()
	<-f.gateway.started

	var state *errs.InvalidStateError
	_, err := tickets.Open(ctx, dto.OpenSessionRequest{Service: seed.ServiceTrainTicket, District: "Dhaka", Upazila: "Savar"})
	require.ErrorAs(t, err, &state)

	close(f.gateway.block)
	require.NoError(t, <-done)

	_, err = tickets.Open(ctx, dto.OpenSessionRequest{Service: seed.ServiceTrainTicket, District: "Dhaka", Upazila: "Savar"})
	require.NoError(t, err)
}

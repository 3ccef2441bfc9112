package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestToastQueueDrain(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewToastService(10, "https://example.com/chime.mp3")

	require.NoError(t, svc.Show(ctx, models.ToastSuccess, "Money added"))
	require.NoError(t, svc.Chime(ctx))
	require.Error(t, svc.Show(ctx, models.ToastInfo, "  "))

	got := svc.Drain(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "Money added", got[0].Message)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "https://example.com/chime.mp3", got[1].Sound)
	assert.Empty(t, svc.Drain(ctx))
}

func TestToastQueueDropsOldest(t *testing.T) {
	ctx := helpers.TestCtx()
	svc := NewToastService(3, "")

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Show(ctx, models.ToastInfo, fmt.Sprintf("notice %d", i)))
	}
	got := svc.Drain(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "notice 2", got[0].Message)
	assert.Equal(t, "notice 4", got[2].Message)
}

func TestToastChimeDisabled(t *testing.T) {
	svc := NewToastService(0, "")
	require.ErrorIs(t, svc.Chime(helpers.TestCtx()), errChimeDisabled)
}

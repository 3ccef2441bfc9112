package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/internal/seed"
	"github.com/GregMSThompson/nirvor-backend/pkg/helpers"
)

func TestSettingsDefaultLanguage(t *testing.T) {
	content := NewContentService(nil, nil, seed.DefaultBundle(), time.Second)
	feed := NewNotificationService(&fakeToaster{}, &fakeChimer{})

	assert.Equal(t, models.LanguageEN, NewSettingsService("EN", content, feed).Language())
	assert.Equal(t, models.LanguageBN, NewSettingsService("fr", content, feed).Language())
}

func TestSettingsSetLanguageSeedsFeedOnce(t *testing.T) {
	ctx := helpers.TestCtx()
	bundle := seed.DefaultBundle()
	content := NewContentService(nil, nil, bundle, time.Second)
	feed := NewNotificationService(&fakeToaster{}, &fakeChimer{})
	svc := NewSettingsService("bn", content, feed)

	lang, err := svc.SetLanguage(ctx, " en ")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageEN, lang)
	assert.Equal(t, bundle.EN.Notifications, feed.List())

	_, err = svc.SetLanguage(ctx, "bn")
	require.NoError(t, err)
	assert.Equal(t, bundle.EN.Notifications, feed.List(), "switching language does not reseed")
}

func TestSettingsRejectsUnknownLanguage(t *testing.T) {
	content := NewContentService(nil, nil, seed.DefaultBundle(), time.Second)
	svc := NewSettingsService("bn", content, NewNotificationService(&fakeToaster{}, &fakeChimer{}))

	_, err := svc.SetLanguage(helpers.TestCtx(), "hi")
	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, models.LanguageBN, svc.Language())
}

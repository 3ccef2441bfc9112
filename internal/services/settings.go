package services

import (
	"context"
	"strings"
	"sync"

	"github.com/GregMSThompson/nirvor-backend/internal/errs"
	"github.com/GregMSThompson/nirvor-backend/internal/models"
	"github.com/GregMSThompson/nirvor-backend/pkg/logger"
)

type languageContent interface {
	Language(lang models.Language) *models.LanguageData
}

type feedSeeder interface {
	Seed(ctx context.Context, notes []models.Notification) bool
}

// settingsService holds the active display language and seeds the
// notification feed from the matching content section.
type settingsService struct {
	mu       sync.RWMutex
	language models.Language
	content  languageContent
	feed     feedSeeder
}

func NewSettingsService(defaultLanguage string, content languageContent, feed feedSeeder) *settingsService {
	lang := models.Language(strings.ToLower(defaultLanguage))
	if !lang.Valid() {
		lang = models.LanguageBN
	}
	return &settingsService{
		language: lang,
		content:  content,
		feed:     feed,
	}
}

func (s *settingsService) Language() models.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

func (s *settingsService) SetLanguage(ctx context.Context, value string) (models.Language, error) {
	lang := models.Language(strings.ToLower(strings.TrimSpace(value)))
	if !lang.Valid() {
		return "", errs.NewValidationError("language must be bn or en")
	}

	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()

	logger.FromContext(ctx).Info("language changed", "language", lang)
	s.SeedFeed(ctx)
	return lang, nil
}

// SeedFeed offers the active language's notifications to the feed, which
// accepts them only while it is still empty.
func (s *settingsService) SeedFeed(ctx context.Context) {
	data := s.content.Language(s.Language())
	if data == nil {
		return
	}
	s.feed.Seed(ctx, data.Notifications)
}

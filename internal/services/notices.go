package services

import (
	"context"

	"github.com/GregMSThompson/nirvor-backend/internal/models"
)

type noticeKey int

const (
	noticeOffline noticeKey = iota
	noticePaymentFailed
	noticeInvalidNumber
)

var notices = map[models.Language]map[noticeKey]string{
	models.LanguageEN: {
		noticeOffline:       "Network connection error",
		noticePaymentFailed: "Payment failed. Please try again.",
		noticeInvalidNumber: "Invalid mobile number",
	},
	models.LanguageBN: {
		noticeOffline:       "নেটওয়ার্ক কানেকশন এরর",
		noticePaymentFailed: "পেমেন্ট ব্যর্থ হয়েছে। আবার চেষ্টা করুন।",
		noticeInvalidNumber: "মোবাইল নম্বর সঠিক নয়",
	},
}

// notice raises an error toast in the active language.
func (s *paymentService) notice(ctx context.Context, key noticeKey) {
	lang := models.LanguageEN
	if s.language != nil {
		lang = s.language.Language()
	}
	msg, ok := notices[lang][key]
	if !ok {
		msg = notices[models.LanguageEN][key]
	}
	bestEffort(ctx, "toast", func() error {
		return s.toasts.Show(ctx, models.ToastError, msg)
	})
}

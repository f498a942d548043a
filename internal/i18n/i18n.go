// Package i18n provides translation of user-facing messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has a message table.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale extracts the locale from the gin context.
// The first supported language of the Accept-Language header wins.
func GetLocale(c *gin.Context) string {
	return ParseAcceptLanguage(c.GetHeader(AcceptLanguageHeader))
}

// ParseAcceptLanguage picks the first supported base language from a header
// such as "hi-IN,hi;q=0.9,en;q=0.8". Quality values are not weighed; clients
// list languages in preference order.
func ParseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if _, ok := defaultMessages[lang]; ok {
			return lang
		}
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyUnauthorized:         "Unauthorized",
		ErrKeyAPIKeyRequired:       "API key is required",
		ErrKeyInvalidAPIKey:        "Invalid API key",
		ErrKeyForbidden:            "Forbidden",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "Conflict",
		ErrKeyIdempotencyMismatch:  "Idempotency key was already used with a different request",
		ErrKeyInvalidToken:         "Invalid or expired token",
		ErrKeyTokenRequired:        "Authentication token is required",
		ErrKeyTimeout:              "Request timed out",
		ErrKeyServiceUnavailable:   "Pricing is temporarily unavailable, please try again shortly",
		ErrKeyPricingNotConfigured: "Custom pricing is not enabled on this server",
		ErrKeyValidationTotalPages: "total_pages: must be a positive integer",
		ErrKeyValidationPrintMode:  "Unknown color or duplex mode",
		ErrKeyValidationTiers:      "Invalid pricing tiers",
		SuccessKeyPricingUpdated:   "Pricing updated",
	},
	"hi": {
		ErrKeyInvalidRequest:       "अमान्य अनुरोध",
		ErrKeyInvalidRequestBody:   "अनुरोध का मुख्य भाग अमान्य है",
		ErrKeyInternalError:        "एक अनपेक्षित त्रुटि हुई",
		ErrKeyUnauthorized:         "अनधिकृत",
		ErrKeyAPIKeyRequired:       "API कुंजी आवश्यक है",
		ErrKeyInvalidAPIKey:        "अमान्य API कुंजी",
		ErrKeyForbidden:            "निषिद्ध",
		ErrKeyNotFound:             "नहीं मिला",
		ErrKeyRateLimitExceeded:    "बहुत अधिक अनुरोध, कृपया बाद में पुनः प्रयास करें",
		ErrKeyConflict:             "विरोध",
		ErrKeyIdempotencyMismatch:  "यह idempotency कुंजी किसी दूसरे अनुरोध के साथ उपयोग हो चुकी है",
		ErrKeyInvalidToken:         "अमान्य या समाप्त टोकन",
		ErrKeyTokenRequired:        "प्रमाणीकरण टोकन आवश्यक है",
		ErrKeyTimeout:              "अनुरोध का समय समाप्त हो गया",
		ErrKeyServiceUnavailable:   "मूल्य निर्धारण अस्थायी रूप से उपलब्ध नहीं है, कृपया थोड़ी देर बाद प्रयास करें",
		ErrKeyPricingNotConfigured: "इस सर्वर पर कस्टम मूल्य निर्धारण सक्षम नहीं है",
		ErrKeyValidationTotalPages: "total_pages: एक धनात्मक पूर्णांक होना चाहिए",
		ErrKeyValidationPrintMode:  "अज्ञात रंग या डुप्लेक्स मोड",
		ErrKeyValidationTiers:      "अमान्य मूल्य स्तर",
		SuccessKeyPricingUpdated:   "मूल्य निर्धारण अपडेट किया गया",
	},
}

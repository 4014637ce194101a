package services

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detectOnce sync.Once
	detector   lingua.LanguageDetector
)

// DetectLanguage guesses the language of written content so listings can carry
// it as a hint. An inconclusive guess is recorded as "unknown".
func DetectLanguage(content string) string {
	detectOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Russian,
				lingua.French,
				lingua.German,
				lingua.Spanish,
				lingua.Japanese,
				lingua.Chinese,
			).
			Build()
	})

	if language, ok := detector.DetectLanguageOf(content); ok {
		return language.IsoCode639_1().String()
	}
	return "unknown"
}

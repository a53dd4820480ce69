package curator

import "strings"

// Language tags recognized by the detector.
const (
	LangKorean   = "ko"
	LangEnglish  = "en"
	LangJapanese = "ja"
	LangChinese  = "zh"
	LangSpanish  = "es"
	LangFrench   = "fr"
	LangGerman   = "de"
)

const (
	spanishChars = "ñáéíóúü¿¡"
	frenchChars  = "àâäéèêëîïôöùûüÿç"
	germanChars  = "äöüß"
)

// DetectLanguage guesses the language of a visitor message from its script
// and diacritics. Checks run in fixed priority order: Hangul wins over
// everything, kana marks Japanese, Han without kana marks Chinese, then
// Spanish, French and German special characters, with English as the
// default for plain Latin text (and for anything else).
func DetectLanguage(text string) string {
	var hangul, kana, han, latin bool

	for _, r := range text {
		switch {
		case r >= 0xAC00 && r <= 0xD7A3:
			hangul = true
		case (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF):
			kana = true
		case r >= 0x4E00 && r <= 0x9FFF:
			han = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin = true
		}
	}

	lower := strings.ToLower(text)

	switch {
	case hangul:
		return LangKorean
	case kana:
		return LangJapanese
	case han:
		return LangChinese
	case strings.ContainsAny(lower, spanishChars):
		return LangSpanish
	case strings.ContainsAny(lower, frenchChars):
		return LangFrench
	case strings.ContainsAny(lower, germanChars):
		return LangGerman
	case latin:
		return LangEnglish
	}
	return LangEnglish
}

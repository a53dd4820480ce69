package curator

// languageGuides maps a detected language tag to the response style
// directive injected into the system prompt.
var languageGuides = map[string]string{
	LangKorean:   `반말로 대답하세요 (존댓말 사용 금지). "안녕하세요", "감사합니다" 같은 불필요한 인사말을 사용하지 마세요.`,
	LangEnglish:  `Respond in casual, friendly English. Skip greetings like "Hello" or "Thank you".`,
	LangJapanese: `カジュアルな日本語で返答してください。「こんにちは」「ありがとうございます」などの挨拶は使わないでください。`,
	LangChinese:  `用非正式的中文回答。不要使用"你好"、"谢谢"等问候语。`,
	LangSpanish:  `Responde en español casual y amigable. Omita saludos como "Hola" o "Gracias".`,
	LangFrench:   `Répondez en français décontracté et amical. Ignorez les salutations comme "Bonjour" ou "Merci".`,
	LangGerman:   `Antworte in lockeren, freundlichen Deutsch. Überspringe Grüße wie "Hallo" oder "Danke".`,
}

// StyleGuide returns the style directive for a language tag, falling back
// to the English guide for unrecognized tags.
func StyleGuide(lang string) string {
	if guide, ok := languageGuides[lang]; ok {
		return guide
	}
	return languageGuides[LangEnglish]
}

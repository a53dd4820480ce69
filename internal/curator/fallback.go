package curator

import (
	"fmt"
	"strings"

	"github.com/ai41/adam/internal/types"
)

// Keyword sets for the fallback rules, checked against the lower-cased
// visitor message in declaration order. The first matching rule wins.
var (
	artistKeywords     = []string{"작가", "누구", "이름", "누가"}
	listKeywords       = []string{"작품", "목록", "리스트", "전시", "어떤 작품"}
	exhibitionKeywords = []string{"전시명", "자문자답", "자급자족", "전시 제목"}
	noteKeywords       = []string{"노트", "의도", "의미", "개념"}
	mensaKeywords      = []string{"멘사"}
	makerKeywords      = []string{"아담", "adam", "ai41", "제작", "만들", "만든", "누가 만들", "어디서 만들"}
	contactKeywords    = []string{"연락", "연락처", "전화", "이메일", "인스타", "구매", "문의", "컨택"}
)

// Responder produces short canned curator replies without a model backend.
// All answers derive from the catalog's records and documents; the
// responder itself never fails.
type Responder struct {
	catalog types.Catalog
}

// NewResponder creates a fallback responder over the given catalog.
func NewResponder(catalog types.Catalog) *Responder {
	return &Responder{catalog: catalog}
}

// Respond returns a canned reply for the message. The artworkNames filter
// is accepted for signature parity with the model path but does not affect
// rule matching.
func (r *Responder) Respond(message string, _ []string) string {
	artist := r.catalog.ArtistName()
	artworks := r.catalog.All()
	msg := strings.ToLower(message)

	if matchesAny(msg, artistKeywords) {
		return fmt.Sprintf("%s. ASD·ADHD 작가이자 AI 창업가야.", artist)
	}

	if matchesAny(msg, listKeywords) {
		return joinNames(artworks, 10) + "."
	}

	if aw := firstMentioned(artworks, msg); aw != nil {
		return r.describeArtwork(aw, artist)
	}

	if matchesAny(msg, exhibitionKeywords) {
		return "'자문자답'. 스스로 질문하고 답하는 거야."
	}

	if matchesAny(msg, noteKeywords) {
		if note := r.catalog.ArtistNote(); note != "" {
			return firstSentence(note)
		}
		return "작가 노트 없어."
	}

	if matchesAny(msg, mensaKeywords) {
		return fmt.Sprintf("%s은 멘사 회원이야.", artist)
	}

	if matchesAny(msg, makerKeywords) {
		return "AI41에서 제작했어. 다른 작가 버전은 a4file@kakao.com으로 연락. 신진 100만원, 중견 200만원부터. API비 별도."
	}

	if matchesAny(msg, contactKeywords) {
		return "인스타 @a4file, 이메일 a4file@kakao.com, 전화 +82)10-9354-4531"
	}

	return joinNames(artworks, 5) + "."
}

// describeArtwork answers about a specific artwork from the artwork-info
// document: the price line when present, otherwise the opening of the
// critique section, otherwise a minimal attribution.
func (r *Responder) describeArtwork(aw *types.Artwork, artist string) string {
	section := findInfoSection(r.catalog.ArtworkInfo(), aw.Name)

	if section != "" {
		if price := extractPrice(section); price != "" {
			return fmt.Sprintf("%s %s.", aw.Name, price)
		}
		if review := extractReview(section); review != "" {
			return firstSentence(review)
		}
	}

	return fmt.Sprintf("%s. %s 작품이야.", aw.Name, artist)
}

func matchesAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// firstMentioned returns the first artwork whose name appears in the
// lower-cased message.
func firstMentioned(artworks []*types.Artwork, msg string) *types.Artwork {
	for _, aw := range artworks {
		if strings.Contains(msg, strings.ToLower(aw.Name)) {
			return aw
		}
	}
	return nil
}

// joinNames comma-joins up to limit artwork names.
func joinNames(artworks []*types.Artwork, limit int) string {
	if len(artworks) > limit {
		artworks = artworks[:limit]
	}
	names := make([]string, len(artworks))
	for i, aw := range artworks {
		names[i] = aw.Name
	}
	return strings.Join(names, ", ")
}

// findInfoSection locates the "## {name}" section of the artwork-info
// document, stripping a trailing series number (Atonement1 -> Atonement)
// when the exact heading is absent. Returns "" when no section matches.
func findInfoSection(info, name string) string {
	if info == "" {
		return ""
	}

	start := strings.Index(info, "## "+name)
	if start == -1 {
		if base := seriesBase(name); base != "" && base != name {
			start = strings.Index(info, "## "+base)
		}
	}
	if start == -1 {
		return ""
	}

	if next := strings.Index(info[start+1:], "\n## "); next != -1 {
		return info[start : start+1+next]
	}
	return info[start:]
}

// seriesBase cuts the name at the first digit 1-9.
func seriesBase(name string) string {
	if i := strings.IndexAny(name, "123456789"); i != -1 {
		return name[:i]
	}
	return name
}

// extractPrice pulls the value from a "**가격**: ..." line, or "".
func extractPrice(section string) string {
	start := strings.Index(section, "**가격**")
	if start == -1 {
		return ""
	}
	line := section[start:]
	if end := strings.Index(line, "\n"); end != -1 {
		line = line[:end]
	}
	return strings.TrimSpace(strings.ReplaceAll(line, "**가격**:", ""))
}

// extractReview returns the text after the "### 평론" heading, or "".
func extractReview(section string) string {
	start := strings.Index(section, "### 평론")
	if start == -1 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(section[start:], "### 평론"))
}

// firstSentence clips text to its first sentence, ellipsized at 20 runes.
func firstSentence(text string) string {
	sentence := text
	if i := strings.Index(text, "."); i != -1 {
		sentence = text[:i]
	} else if runes := []rune(text); len(runes) > 20 {
		sentence = string(runes[:20])
	}

	runes := []rune(sentence)
	if len(runes) > 20 {
		return string(runes[:20]) + "..."
	}
	return sentence
}

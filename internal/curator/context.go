package curator

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ai41/adam/internal/types"
)

// PromptBuilder assembles the per-turn system prompt and the serialized
// catalog context. The artwork-info document is capped to a token budget so
// a growing exhibition document cannot crowd the model's context window.
type PromptBuilder struct {
	catalog    types.Catalog
	model      string
	infoBudget int
	logger     *slog.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// NewPromptBuilder creates a builder bound to a catalog. model selects the
// tokenizer for the info budget; infoBudget <= 0 disables the cap.
func NewPromptBuilder(catalog types.Catalog, model string, infoBudget int, logger *slog.Logger) *PromptBuilder {
	return &PromptBuilder{
		catalog:    catalog,
		model:      model,
		infoBudget: infoBudget,
		logger:     logger,
	}
}

// BuildContext serializes the artist identity, artist note and an artwork
// listing. A nil subset means the full catalog; an empty subset omits the
// listing entirely.
func (b *PromptBuilder) BuildContext(artworks []*types.Artwork) string {
	artist := b.catalog.ArtistName()
	note := b.catalog.ArtistNote()

	if artworks == nil {
		artworks = b.catalog.All()
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("=== 작가 정보 ===\n작가: %s\n", artist))

	if note != "" {
		parts = append(parts, fmt.Sprintf("=== %s 작가 노트 ===\n%s\n", artist, note))
	}

	if len(artworks) > 0 {
		parts = append(parts, "=== 작품 목록 ===")
		for _, aw := range artworks {
			line := "- " + aw.Name
			if aw.Size != "" {
				line += fmt.Sprintf(" (%s)", aw.Size)
			}
			if aw.Year != "" {
				line += ", " + aw.Year
			}
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, "\n")
}

// SystemPrompt renders the curator persona prompt for the detected
// language, embedding the token-capped artwork-info document.
func (b *PromptBuilder) SystemPrompt(lang string) string {
	return renderSystemPrompt(promptData{
		Artist:      b.catalog.ArtistName(),
		StyleGuide:  StyleGuide(lang),
		ArtworkInfo: b.capInfo(b.catalog.ArtworkInfo()),
	})
}

// capInfo truncates the artwork-info document to the token budget. When the
// tokenizer is unavailable the document passes through uncapped.
func (b *PromptBuilder) capInfo(info string) string {
	if b.infoBudget <= 0 || info == "" {
		return info
	}

	enc := b.encoder()
	if enc == nil {
		return info
	}

	tokens := enc.Encode(info, nil, nil)
	if len(tokens) <= b.infoBudget {
		return info
	}

	b.logger.Debug("truncating artwork info document",
		"tokens", len(tokens), "budget", b.infoBudget)
	return enc.Decode(tokens[:b.infoBudget])
}

func (b *PromptBuilder) encoder() *tiktoken.Tiktoken {
	b.encOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel(b.model)
		if err != nil {
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err != nil {
			b.logger.Warn("tokenizer unavailable, info cap disabled", "error", err)
			return
		}
		b.enc = enc
	})
	return b.enc
}

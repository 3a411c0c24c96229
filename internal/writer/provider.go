// Package writer turns a validated FactSheet into article text via a
// language model. The sheet is the only source of facts: the prompt
// forbids inventing data and a post-check rejects output that
// reorders a locked ranking.
package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/afriquesports/factsheet/internal/builder"
	"github.com/afriquesports/factsheet/internal/model"
)

// Provider is a text generation backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest carries one generation call.
type GenerateRequest struct {
	// Sheet is the validated FactSheet backing the article.
	Sheet *model.FactSheet

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model selects a provider-specific model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// GenerateResponse is the provider output.
type GenerateResponse struct {
	Content    string
	Model      string
	TokensUsed int
}

// BuildPrompt assembles the default generation prompt: instructions,
// then the sheet's factual context. Ranking sheets get an explicit
// order-preservation directive.
func BuildPrompt(fs *model.FactSheet) (string, error) {
	context, err := builder.FormatForPrompt(fs)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	var b strings.Builder
	b.WriteString("Tu es un journaliste sportif. Rédige un article en ")
	b.WriteString(fs.Meta.Language)
	b.WriteString(" à partir des données ci-dessous.\n\n")
	b.WriteString("RÈGLES STRICTES:\n")
	b.WriteString("- Utilise uniquement les faits fournis. N'invente aucune statistique, valeur ou citation.\n")
	if fs.Meta.PostType == model.PostRanking {
		b.WriteString("- Le classement est définitif. Respecte exactement l'ordre donné.\n")
	}
	b.WriteString("- Mentionne les sources quand le contexte actualités est utilisé.\n\n")
	b.WriteString(context)
	return b.String(), nil
}

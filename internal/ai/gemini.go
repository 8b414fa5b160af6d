package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"carona/internal/modules/trip"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements SummaryProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.4)

	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Summarize asks the model for a friendly trip summary in Brazilian
// Portuguese with three safety tips.
func (p *GeminiProvider) Summarize(ctx context.Context, t *trip.Trip) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(buildPrompt(t)))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.Join(parts, "\n"), nil
}

func buildPrompt(t *trip.Trip) string {
	return fmt.Sprintf(`Crie um resumo amigável e breve da viagem e forneça 3 dicas de segurança essenciais para uma viagem de carona, em Português do Brasil.
O destino é "%s".
O nome do motorista é %s.
Existem %d outros passageiros.
Formate a saída como texto limpo e legível. Não use Markdown.
Comece com uma saudação amigável como "Aqui está o resumo da sua viagem!".`,
		t.Destination, t.Driver.Name, len(t.Passengers))
}

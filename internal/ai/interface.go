package ai

import (
	"context"

	"carona/internal/modules/trip"
)

// SummaryProvider produces a short rider-facing summary with safety
// tips for a matched trip. Implementations may be slow or fail; the
// session never blocks trip progress on this result.
type SummaryProvider interface {
	Summarize(ctx context.Context, t *trip.Trip) (string, error)
}

// FallbackSummary replaces the provider output on any failure. It is a
// recovery value, never surfaced as an error.
const FallbackSummary = "Não foi possível gerar o resumo da viagem. Lembre-se de se manter seguro, compartilhar os detalhes da sua viagem com um amigo e confirmar a identidade do seu motorista."

// StaticProvider serves deployments without an API key configured.
type StaticProvider struct{}

func (StaticProvider) Summarize(context.Context, *trip.Trip) (string, error) {
	return "Serviço de IA não configurado. Dicas de segurança: 1. Confirme os dados do motorista. 2. Compartilhe sua viagem. 3. Use o cinto de segurança.", nil
}

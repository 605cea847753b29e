package generation

import (
	"context"
	"errors"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/schema"
)

// ErrModelUnavailable is returned when no chat model was configured.
var ErrModelUnavailable = errors.New("chat model unavailable")

// ArkGenerator completes prompts through an ark chat model.
type ArkGenerator struct {
	model *ark.ChatModel
}

func NewArkGenerator(model *ark.ChatModel) *ArkGenerator {
	return &ArkGenerator{model: model}
}

func (g *ArkGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	if g.model == nil {
		return "", ErrModelUnavailable
	}

	out, err := g.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", errors.New("empty model response")
	}
	return out.Content, nil
}

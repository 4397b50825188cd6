package vectorizer

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAI vectorizes sentences with OpenAI's embeddings API. Embeddings behave
// like a dense drop-in for TF-IDF: cosine-comparable, one row per sentence.
type OpenAI struct {
	model  openai.EmbeddingModel
	client *openai.Client
}

// NewOpenAI creates an embeddings-backed vectorizer.
func NewOpenAI(apiKey string, model openai.EmbeddingModel) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{model: model, client: &cli}, nil
}

func (o *OpenAI) FitTransform(ctx context.Context, sentences []string) ([][]float64, error) {
	resp, err := o.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: sentences,
		},
		Model: o.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(sentences) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(sentences), len(resp.Data))
	}
	vectors := make([][]float64, len(sentences))
	for _, item := range resp.Data {
		row := make([]float64, len(item.Embedding))
		copy(row, item.Embedding)
		vectors[item.Index] = row
	}
	return vectors, nil
}

package vectorizer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockVectorizer is a mock implementation of Vectorizer using testify/mock.
type MockVectorizer struct {
	mock.Mock
}

func (m *MockVectorizer) FitTransform(ctx context.Context, sentences []string) ([][]float64, error) {
	args := m.Called(ctx, sentences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}

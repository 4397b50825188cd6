package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

func TestEnqueueWithRetryStopsOnSuccess(t *testing.T) {
	q := new(MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("down")).Once()
	q.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	task := Task{Type: TaskTypeSummarize}
	if err := EnqueueWithRetry(context.Background(), q, task, 3, time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.AssertExpectations(t)
}

func TestEnqueueWithRetryGivesUpAfterAttempts(t *testing.T) {
	q := new(MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("down")).Times(3)

	task := Task{Type: TaskTypeSummarize}
	if err := EnqueueWithRetry(context.Background(), q, task, 3, time.Millisecond); err == nil {
		t.Fatal("expected the final error to surface")
	}
	q.AssertExpectations(t)
}

func TestEnqueueWithRetryHonorsCancellation(t *testing.T) {
	q := new(MockQueue)
	q.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("down"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := Task{Type: TaskTypeSummarize}
	err := EnqueueWithRetry(ctx, q, task, 5, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

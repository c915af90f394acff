package batch

import (
	"context"
	"errors"
	"fmt"
)

// Batch size limits.
const (
	// DefaultBatchSize is the default number of items per batch.
	DefaultBatchSize = 100

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
)

// Callback processes one batch. batchIndex is 0-based.
type Callback[T any] func(ctx context.Context, items []T, batchIndex int) error

// ProgressCallback is invoked after each completed batch.
type ProgressCallback func(p Progress)

// Processor splits a slice into fixed-size batches and hands them to a
// callback in order.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets the progress callback.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Process hands items to callback batch by batch. It stops at the first
// callback error or when ctx is done. An empty slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if callback == nil {
		return ErrNilCallback
	}

	bounds := p.Bounds(len(items))
	progress := Progress{TotalItems: len(items), TotalBatches: len(bounds), BatchSize: p.batchSize}

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := callback(ctx, items[b[0]:b[1]], i); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}

		progress.ProcessedItems += b[1] - b[0]
		progress.ProcessedBatches++
		if p.onProgress != nil {
			p.onProgress(progress)
		}
	}

	return nil
}

// Bounds returns the [start, end) index pairs for totalItems.
func (p *Processor[T]) Bounds(totalItems int) [][2]int {
	if totalItems <= 0 {
		return nil
	}
	n := (totalItems + p.batchSize - 1) / p.batchSize
	out := make([][2]int, n)
	for i := range n {
		start := i * p.batchSize
		out[i] = [2]int{start, min(start+p.batchSize, totalItems)}
	}
	return out
}

package resilience

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBulkheadFull    = errors.New("bulkhead is full")
	ErrBulkheadTimeout = errors.New("bulkhead wait timeout")
)

// BulkheadConfig configures a Bulkhead.
type BulkheadConfig struct {
	Name          string        `yaml:"name" mapstructure:"name"`
	MaxConcurrent int           `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	MaxWait       time.Duration `yaml:"max_wait" mapstructure:"max_wait"` // 0 fails at once; <0 waits for ctx

	OnReject func(name string) `yaml:"-" mapstructure:"-"`
}

// Bulkhead limits how many calls run at the same time.
type Bulkhead struct {
	config BulkheadConfig
	sem    chan struct{}
}

// NewBulkhead creates a Bulkhead. MaxConcurrent defaults to 10.
func NewBulkhead(cfg BulkheadConfig) *Bulkhead {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}
	return &Bulkhead{config: cfg, sem: make(chan struct{}, cfg.MaxConcurrent)}
}

// Execute runs fn once a slot is free.
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()
	return fn()
}

// Acquire takes a slot. Every successful Acquire must be paired with
// Release.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	err := b.acquire(ctx)
	if err != nil && b.config.OnReject != nil {
		b.config.OnReject(b.config.Name)
	}
	return err
}

func (b *Bulkhead) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	default:
	}

	switch {
	case b.config.MaxWait == 0:
		return ErrBulkheadFull
	case b.config.MaxWait < 0:
		select {
		case b.sem <- struct{}{}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	timer := time.NewTimer(b.config.MaxWait)
	defer timer.Stop()
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBulkheadTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (b *Bulkhead) Release() {
	<-b.sem
}

// InUse returns the number of occupied slots.
func (b *Bulkhead) InUse() int {
	return len(b.sem)
}

// Available returns the number of free slots.
func (b *Bulkhead) Available() int {
	return cap(b.sem) - len(b.sem)
}

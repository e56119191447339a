package ai

import (
	"context"
	"time"
)

// Cache is a best-effort byte cache; misses and failures look the same.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type Options struct {
	ReportModel string
	TermModel   string
	// Timeout bounds each generator call. Zero means no limit.
	Timeout  time.Duration
	Cache    Cache
	CacheTTL time.Duration
}

// Gateway fronts the generative model. A nil generator means no API key is
// configured and every call takes the fallback path.
type Gateway struct {
	gen  Generator
	opts Options
}

func NewGateway(gen Generator, opts Options) *Gateway {
	return &Gateway{gen: gen, opts: opts}
}

// Enabled reports whether an external model is configured.
func (g *Gateway) Enabled() bool {
	return g.gen != nil
}

func (g *Gateway) call(ctx context.Context, model, prompt string, att *Attachment) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	return g.gen.Generate(ctx, model, prompt, att)
}

// Package preload warms assets ahead of display.
package preload

import (
	"context"

	"go.uber.org/zap"
)

// Fetcher loads an asset by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DoneFunc receives the outcome of one preload. It is called from the
// fetching goroutine; callers hand the result to their own loop.
type DoneFunc func(url string, err error)

// Preloader starts one background fetch per request. Requests are not
// cancelled when the position moves on, and completions may arrive in any
// order.
type Preloader struct {
	ctx     context.Context
	fetcher Fetcher
	done    DoneFunc
	log     *zap.Logger
}

// New returns a Preloader. Fetches stop early once ctx is done.
func New(ctx context.Context, fetcher Fetcher, done DoneFunc, log *zap.Logger) *Preloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preloader{ctx: ctx, fetcher: fetcher, done: done, log: log.Named("preload")}
}

// Preload fetches url in the background.
func (p *Preloader) Preload(url string) {
	go func() {
		_, err := p.fetcher.Fetch(p.ctx, url)
		if err != nil {
			p.log.Warn("Preload failed", zap.String("url", url), zap.Error(err))
		} else {
			p.log.Debug("Preloaded", zap.String("url", url))
		}
		if p.done != nil {
			p.done(url, err)
		}
	}()
}

package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/confectlab/confect/logs"
	"github.com/confectlab/confect/retry"
	"github.com/confectlab/confect/timing"
)

// Hook post-processes a parsed resource before Load returns it.
type Hook func(v any) (any, error)

type loadConfig struct {
	mimetype    string
	parser      Parser
	downloaders *Downloaders
	parsers     *Parsers
	mimes       *MimeTable
	hook        Hook
	log         logs.Logger
	obs         timing.Observer
	retry       bool
	retryOpts   []retry.Option
}

// LoadOption adjusts a single Open, Load or Sha256 call.
type LoadOption func(*loadConfig)

// WithMimetype forces the mimetype instead of guessing it from the URL
// extension.
func WithMimetype(mimetype string) LoadOption {
	return func(c *loadConfig) { c.mimetype = mimetype }
}

// WithParser bypasses the parser registry for this call.
func WithParser(fn Parser) LoadOption {
	return func(c *loadConfig) { c.parser = fn }
}

// WithDownloaders swaps the downloader registry.
func WithDownloaders(d *Downloaders) LoadOption {
	return func(c *loadConfig) { c.downloaders = d }
}

// WithParsers swaps the parser registry.
func WithParsers(p *Parsers) LoadOption {
	return func(c *loadConfig) { c.parsers = p }
}

// WithMimeTable swaps the extension table used to guess mimetypes.
func WithMimeTable(t *MimeTable) LoadOption {
	return func(c *loadConfig) { c.mimes = t }
}

// WithHook post-processes the parsed value.
func WithHook(h Hook) LoadOption {
	return func(c *loadConfig) { c.hook = h }
}

// WithLogger routes load diagnostics to l.
func WithLogger(l logs.Logger) LoadOption {
	return func(c *loadConfig) { c.log = l }
}

// WithObserver records the duration of each Load call.
func WithObserver(o timing.Observer) LoadOption {
	return func(c *loadConfig) { c.obs = o }
}

// WithRetry retries failed downloads with the given retry options; the
// defaults are the retry package's, three retries with a one second delay.
// Unknown schemes fail immediately. Parse and hook failures are never
// retried.
func WithRetry(opts ...retry.Option) LoadOption {
	return func(c *loadConfig) { c.retry = true; c.retryOpts = opts }
}

func newLoadConfig(opts []LoadOption) *loadConfig {
	cfg := &loadConfig{
		downloaders: DefaultDownloaders,
		parsers:     DefaultParsers,
		mimes:       DefaultMimeTable,
		log:         logs.NopLogger{},
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// open runs the downloader, retrying per the load options. A scheme nothing
// can handle will not start working on a second try, so it is not retried.
func (cfg *loadConfig) open(ctx context.Context, u *URL) (io.ReadCloser, error) {
	if !cfg.retry {
		return cfg.downloaders.Open(ctx, u)
	}
	opts := append([]retry.Option{
		retry.WithLogger(cfg.log),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, ErrUnknownScheme) }),
	}, cfg.retryOpts...)
	return retry.DoValue(ctx, func() (io.ReadCloser, error) {
		return cfg.downloaders.Open(ctx, u)
	}, opts...)
}

// Open fetches the raw bytes behind rawURL. The caller closes the reader.
func Open(ctx context.Context, rawURL string, opts ...LoadOption) (io.ReadCloser, error) {
	cfg := newLoadConfig(opts)
	u, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return cfg.open(ctx, u)
}

// Load fetches the resource behind rawURL, parses it according to its
// mimetype and runs the hook, if any, on the result.
func Load(ctx context.Context, rawURL string, opts ...LoadOption) (any, error) {
	cfg := newLoadConfig(opts)
	u, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}

	done := timing.Track(cfg.log, "resource.load")
	if cfg.obs != nil {
		done = timing.TrackTo(cfg.obs, cfg.log, "resource.load")
	}
	defer done()

	rc, err := cfg.open(ctx, u)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	mimetype := cfg.mimetype
	if mimetype == "" {
		mimetype, _ = cfg.mimes.Guess(u.Ext())
	}

	var v any
	if cfg.parser != nil {
		v, err = cfg.parser(rc)
	} else {
		v, err = cfg.parsers.Parse(mimetype, rc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", u.String(), err)
	}
	cfg.log.Debugw("resource loaded", map[string]interface{}{
		"url":      u.String(),
		"mimetype": mimetype,
	})

	if cfg.hook != nil {
		v, err = cfg.hook(v)
		if err != nil {
			return nil, fmt.Errorf("hook %s: %w", u.String(), err)
		}
	}
	return v, nil
}

// Sha256 returns the hex digest of the raw bytes behind rawURL.
func Sha256(ctx context.Context, rawURL string, opts ...LoadOption) (string, error) {
	rc, err := Open(ctx, rawURL, opts...)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	h := sha256.New()
	if _, err := io.Copy(h, rc); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

package survey

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader turns a Source into raw document bytes. The default implementation
// is internal/survey/loader.New.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions holds what the default loader needs to reach each kind of
// source.
type LoaderOptions struct {
	// FileSystem serves SourceFromFS paths, usually the embedded survey.
	FileSystem fs.FS

	// HTTPClient fetches URL sources. Without it URLs are rejected unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback creates a plain client for URL sources.
	AllowHTTPFallback bool

	// RequestTimeout bounds a remote fetch. Zero means no limit.
	RequestTimeout time.Duration
}

// LoaderOption sets one LoaderOptions field.
type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the filesystem behind SourceFromFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient fetches URL sources with client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback allows URL sources through a plain client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions folds options into a LoaderOptions value.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Load is a convenience that fetches, parses and validates a survey in one
// step.
func Load(ctx context.Context, loader Loader, src Source) (Survey, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return Survey{}, err
	}
	s, err := ParseDocument(doc)
	if err != nil {
		return Survey{}, err
	}
	if err := Validate(s); err != nil {
		return Survey{}, err
	}
	return s, nil
}

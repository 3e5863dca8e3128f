// Package loader reads raw survey documents from local files, an fs.FS or an
// HTTP endpoint. Parsing happens later in survey.ParseDocument.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-surveyform/pkg/survey"
)

// ErrRemoteDisabled is returned for URL sources when no HTTP client was
// configured.
var ErrRemoteDisabled = errors.New("survey loader: remote surveys are disabled")

// Loader is the default survey.Loader. A nil client rejects URL sources.
type Loader struct {
	files  fs.FS
	client *http.Client
}

var _ survey.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. RequestTimeout applies to the
// fallback client and to a supplied client that has no timeout of its own.
func New(options survey.LoaderOptions) *Loader {
	return &Loader{
		files:  options.FileSystem,
		client: remoteClient(options),
	}
}

func remoteClient(options survey.LoaderOptions) *http.Client {
	if options.HTTPClient == nil {
		if !options.AllowHTTPFallback {
			return nil
		}
		return &http.Client{Timeout: options.RequestTimeout}
	}
	client := *options.HTTPClient
	if client.Timeout == 0 {
		client.Timeout = options.RequestTimeout
	}
	return &client
}

// Load reads the bytes behind src. The payload is returned undecoded inside
// a Document tagged with src.
func (l *Loader) Load(ctx context.Context, src survey.Source) (survey.Document, error) {
	if src == nil {
		return survey.Document{}, errors.New("survey loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return survey.Document{}, err
	}

	data, err := l.read(ctx, src)
	if err != nil {
		return survey.Document{}, err
	}
	return survey.NewDocument(src, data)
}

func (l *Loader) read(ctx context.Context, src survey.Source) ([]byte, error) {
	location := src.Location()
	switch src.Kind() {
	case survey.SourceKindFile:
		return loadFile(ctx, location)
	case survey.SourceKindFS:
		return loadFromFS(ctx, l.files, location)
	case survey.SourceKindURL:
		if l.client == nil {
			return nil, ErrRemoteDisabled
		}
		return loadHTTP(ctx, l.client, location)
	default:
		return nil, fmt.Errorf("survey loader: unsupported source kind %q", src.Kind())
	}
}

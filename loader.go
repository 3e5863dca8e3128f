package surveyform

import (
	internalLoader "github.com/goliatone/go-surveyform/internal/survey/loader"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...survey.LoaderOption) survey.Loader {
	cfg := survey.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

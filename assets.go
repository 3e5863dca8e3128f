package surveyform

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

// DefaultSurveyPath is the location of the bundled survey inside
// DefaultSurveyFS.
const DefaultSurveyPath = "survey.json"

//go:embed assets/survey.json
var embeddedSurvey embed.FS

// DefaultSurveyFS exposes the bundled survey document. Pair it with
// survey.WithFileSystem and survey.SourceFromFS(DefaultSurveyPath).
func DefaultSurveyFS() fs.FS {
	sub, err := fs.Sub(embeddedSurvey, "assets")
	if err != nil {
		return embeddedSurvey
	}
	return sub
}

// DefaultSurveySource points at the bundled survey within DefaultSurveyFS.
func DefaultSurveySource() survey.Source {
	return survey.SourceFromFS(DefaultSurveyPath)
}

// EmbeddedTemplates exposes the built-in HTML page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// StylesheetFS exposes the HTML renderer stylesheets. Typical mount:
//
//	mux.Handle("/assets/surveyform/",
//	  http.StripPrefix("/assets/surveyform/",
//	    http.FileServerFS(surveyform.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return html.AssetsFS()
}

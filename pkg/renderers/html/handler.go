package html

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

// SubmitFunc receives a response that passed validation. Returning an error
// answers the request with 500.
type SubmitFunc func(ctx context.Context, resp form.Response) error

// FailureFunc observes a submission rejected by validation, before the page
// is rendered again with the issues.
type FailureFunc func(ctx context.Context, issues validation.Issues)

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithRenderOptions sets the options passed to every page render, typically
// the resolved theme.
func WithRenderOptions(opts render.RenderOptions) HandlerOption {
	return func(h *Handler) {
		h.renderOptions = opts
	}
}

// WithSubmitFunc registers the callback invoked on successful submission.
func WithSubmitFunc(fn SubmitFunc) HandlerOption {
	return func(h *Handler) {
		h.onSubmit = fn
	}
}

// WithFailureFunc registers the callback invoked when a submit fails
// validation.
func WithFailureFunc(fn FailureFunc) HandlerOption {
	return func(h *Handler) {
		h.onFailure = fn
	}
}

// WithResponseOptions forwards options to form.NewResponse.
func WithResponseOptions(options ...form.ResponseOption) HandlerOption {
	return func(h *Handler) {
		h.responseOptions = append(h.responseOptions, options...)
	}
}

// Handler serves a survey over HTTP without server-side state. Each POST
// carries every answer (the current page's inputs plus hidden inputs for the
// rest), the page it was rendered on, and the pressed button.
type Handler struct {
	survey          survey.Survey
	renderer        *Renderer
	renderOptions   render.RenderOptions
	onSubmit        SubmitFunc
	onFailure       FailureFunc
	responseOptions []form.ResponseOption
}

// NewHandler checks that the survey compiles and returns a handler.
func NewHandler(s survey.Survey, renderer *Renderer, options ...HandlerOption) (*Handler, error) {
	if renderer == nil {
		return nil, errors.New("html handler: renderer is required")
	}
	if _, err := validation.Build(s); err != nil {
		return nil, fmt.Errorf("html handler: %w", err)
	}
	h := &Handler{survey: s, renderer: renderer}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		session, err := form.NewSession(h.survey)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writePage(w, req, session, http.StatusOK)
	case http.MethodPost:
		h.handlePost(w, req)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePost(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := form.NewSession(h.survey, form.WithPrefill(DecodeForm(h.survey, req.PostForm)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page, action := DecodeNavigation(req.PostForm)
	for session.Page() < page && session.Next() == nil {
	}

	switch action {
	case pagination.ActionPrevious:
		_ = session.Previous()
	case pagination.ActionNext:
		_ = session.Next()
	case pagination.ActionSubmit:
		records, err := session.Submit()
		if err == nil {
			h.writeResponse(w, req, records)
			return
		}
		issues, ok := validation.AsIssues(err)
		if !ok {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if h.onFailure != nil {
			h.onFailure(req.Context(), issues)
		}
		h.writePage(w, req, session, http.StatusUnprocessableEntity)
		return
	}
	h.writePage(w, req, session, http.StatusOK)
}

func (h *Handler) writePage(w http.ResponseWriter, req *http.Request, session *form.Session, status int) {
	body, err := h.renderer.Render(req.Context(), session, h.renderOptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) writeResponse(w http.ResponseWriter, req *http.Request, records []form.AnswerRecord) {
	resp := form.NewResponse(records, h.responseOptions...)
	if h.onSubmit != nil {
		if err := h.onSubmit(req.Context(), resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	body, err := resp.MarshalIndent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

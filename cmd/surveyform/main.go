package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	surveyform "github.com/goliatone/go-surveyform"
	"github.com/goliatone/go-surveyform/internal/config"
	"github.com/goliatone/go-surveyform/internal/logging"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/orchestrator"
	"github.com/goliatone/go-surveyform/pkg/pagination"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, cfg.Debug)

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			logger.Info("survey aborted")
			os.Exit(130)
		}
		logger.Fatalf("surveyform: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger, stdout io.Writer) error {
	selector, err := render.NewManifestSelector(render.DefaultThemeManifest())
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg, selector, logger)
	if err != nil {
		return err
	}

	req := orchestrator.Request{
		Source:       parseSource(cfg.Source),
		Renderer:     cfg.Renderer,
		ThemeName:    cfg.Theme,
		ThemeVariant: cfg.Variant,
	}

	s, err := orch.LoadSurvey(ctx, req)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"source":    req.Source.Location(),
		"questions": s.Len(),
		"pages":     s.MaxPage(),
	}).Debug("survey loaded")
	for _, page := range pagination.EmptyPages(s) {
		logger.WithField("page", page).Warn("page has no questions")
	}

	if cfg.Serve {
		themeCfg, err := render.ResolveTheme(selector, req.ThemeName, req.ThemeVariant)
		if err != nil {
			return err
		}
		return serve(ctx, cfg, logger, orch, s, themeCfg)
	}

	session, err := form.NewSession(s)
	if err != nil {
		return err
	}
	out, err := orch.Render(ctx, session, req)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Output, out, logger, stdout)
}

func newOrchestrator(cfg config.Config, selector *render.ManifestSelector, logger *logrus.Logger) (*orchestrator.Orchestrator, error) {
	htmlRenderer, err := html.New(html.WithInlineStylesheet(true))
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(
		tui.WithOutputFormat(tui.ParseOutputFormat(cfg.Format)),
		tui.WithNoColor(cfg.NoColor),
		tui.WithFailureFunc(logSubmitFailure(logger)),
	)
	if err != nil {
		return nil, err
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(surveyform.NewLoader(
			survey.WithFileSystem(surveyform.DefaultSurveyFS()),
			survey.WithHTTPFallback(cfg.Timeout),
		)),
		orchestrator.WithRegistry(render.NewRegistry(htmlRenderer, tuiRenderer)),
		orchestrator.WithDefaultRenderer(tui.Name),
		orchestrator.WithThemeSelector(selector),
	}

	if cfg.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(cfg.Preset)), filepath.Base(cfg.Preset))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSurveyTransformer(preset))
	}

	return orchestrator.New(options...), nil
}

func serve(ctx context.Context, cfg config.Config, logger *logrus.Logger, orch *orchestrator.Orchestrator, s survey.Survey, themeCfg *theme.RendererConfig) error {
	handler, err := newHandler(cfg, logger, orch, s, themeCfg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/assets/surveyform/", http.StripPrefix("/assets/surveyform/", http.FileServer(http.FS(surveyform.StylesheetFS()))))

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("Listening on http://" + cfg.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newHandler(cfg config.Config, logger *logrus.Logger, orch *orchestrator.Orchestrator, s survey.Survey, themeCfg *theme.RendererConfig) (*html.Handler, error) {
	renderer, err := orch.Renderer(html.Name)
	if err != nil {
		return nil, err
	}
	htmlRenderer, ok := renderer.(*html.Renderer)
	if !ok {
		return nil, fmt.Errorf("renderer %q is not the html renderer", html.Name)
	}

	return html.NewHandler(s, htmlRenderer,
		html.WithRenderOptions(render.RenderOptions{Theme: themeCfg}),
		html.WithFailureFunc(logSubmitFailure(logger)),
		html.WithSubmitFunc(func(_ context.Context, resp form.Response) error {
			logger.WithFields(logrus.Fields{"id": resp.ID, "answers": len(resp.Answers)}).Info("response submitted")
			if cfg.Output == "" {
				return nil
			}
			body, err := resp.MarshalIndent()
			if err != nil {
				return err
			}
			return os.WriteFile(cfg.Output, body, 0o644)
		}),
	)
}

// logSubmitFailure reports rejected submissions grouped by question.
func logSubmitFailure(logger *logrus.Logger) func(context.Context, validation.Issues) {
	return func(_ context.Context, issues validation.Issues) {
		logger.WithField("issues", issues.ByPath()).Warn("validation errors")
	}
}

func writeOutput(path string, body []byte, logger *logrus.Logger, stdout io.Writer) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, string(body))
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.WithField("path", path).Info("output written")
	return nil
}

func parseSource(raw string) survey.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return surveyform.DefaultSurveySource()
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return survey.SourceFromURL(path)
	}
	return survey.SourceFromFile(path)
}

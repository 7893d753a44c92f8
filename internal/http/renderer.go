package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	corefuncs "github.com/dreamteam/stockme-dashboard/internal/http/templates/core"
)

// templatePatterns are parsed, in order, from the template filesystem.
//
//nolint:gochecknoglobals // static read-only list
var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	mu     sync.RWMutex
	t      *template.Template
	fsys   fs.FS
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &TemplateRenderer{fsys: cfg.TemplateFS, logger: logger}
	if err := r.Reload(); err != nil {
		logger.Error("template parsing failed", slog.Any("error", err), slog.String("phase", "initialization"))
		return nil, err
	}
	return r, nil
}

// Reload re-parses every template. On failure the previous set stays active.
func (r *TemplateRenderer) Reload() error {
	var t *template.Template
	funcs := template.FuncMap{}
	maps.Copy(funcs, corefuncs.Funcs(corefuncs.Deps{Template: &t, ContentTemplateFor: ContentTemplateFor}))

	parsed, err := template.New("root").Funcs(funcs).ParseFS(r.fsys, templatePatterns...)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	t = parsed

	r.mu.Lock()
	r.t = parsed
	r.mu.Unlock()
	return nil
}

func (r *TemplateRenderer) current() *template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.t
}

// Watch reloads templates whenever a file under dir changes, until ctx ends.
// Bursts of events within 100ms trigger one reload.
func (r *TemplateRenderer) Watch(ctx context.Context, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("template watcher: %w", err)
	}
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if walkErr != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", dir, walkErr)
	}

	go func() {
		defer w.Close()
		var debounce <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
					debounce = time.After(100 * time.Millisecond)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", slog.Any("error", err))
			case <-debounce:
				debounce = nil
				if err := r.Reload(); err != nil {
					r.logger.Error("template reload failed", slog.Any("error", err))
					continue
				}
				r.logger.Info("templates reloaded", slog.String("dir", dir))
			}
		}
	}()
	return nil
}

// DevTemplateFS returns the on-disk template directory when it exists.
func DevTemplateFS(dir string) (fs.FS, bool) {
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, false
	}
	return os.DirFS(dir), true
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "layout", data)
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "content", data)
}

// RenderError renders an error page using the error template.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "error-layout", data)
}

// Render renders the named template as a complete response body.
func (r *TemplateRenderer) Render(w http.ResponseWriter, name string, data any) error {
	return r.renderTemplate(w, name, data)
}

// Execute writes the named template to w without touching headers.
func (r *TemplateRenderer) Execute(w io.Writer, name string, data any) error {
	if err := r.current().ExecuteTemplate(w, name, data); err != nil {
		r.logTemplateError(name, err)
		return err
	}
	return nil
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.current().ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logTemplateError(templateName, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}

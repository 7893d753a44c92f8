package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// sessionExpiredNotice is shown when the backend rejects a token that was
// accepted when the page loaded.
//
//nolint:gochecknoglobals // static notice text
var sessionExpiredNotice = service.Notice{
	Title: "Session expired",
	Body:  "Your session is no longer accepted by the inventory service. Please sign in again.",
}

// ErrorRenderer renders a template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the service error; nil renders only FieldErrors.
	Err error
	// Fallback is shown when Err carries no user-facing message.
	Fallback    string
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data is merged into the template data, e.g. to keep form values.
	Data map[string]any
	// ShowToast also raises the toast for the general message.
	ShowToast bool
	// RetryURL, when set, adds an inline Retry control that re-fetches it.
	RetryURL string
	// Builder, when set, is used instead of a fresh NewTemplateData.
	Builder *TemplateDataBuilder
}

// RenderError renders a page or form with the error shown inline above the form.
// Validation errors keep their field; 401/403 become a dismissible notice panel.
// htmx requests always get 200 so the swap happens.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := opts.Builder
	if builder == nil {
		builder = NewTemplateData(opts.R, opts.PageMeta)
	}
	general := processError(opts.Err, opts.Fallback, &opts.FieldErrors)
	builder.WithFieldErrors(opts.FieldErrors)
	builder.WithError(general, opts.RetryURL)
	if notice, ok := noticeForError(opts.Err); ok {
		builder.WithNotice(notice)
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast {
		HTMX(opts.W).Toast(general, ToastError)
	}
	if !IsHTMX(opts.R) && opts.Err != nil {
		opts.W.Header().Set("Content-Type", "text/html; charset=utf-8")
		opts.W.WriteHeader(StatusForError(opts.Err))
	}
	opts.Renderer(opts.W, opts.R, builder.Build())
}

// processError returns the general message for err, recording a field error
// when the failure belongs to one input.
func processError(err error, fallback string, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || apperrors.IsTimeout(err) {
		return "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) {
		return "Request was canceled."
	}
	msg := apperrors.UserMessage(err, fallback)
	if msg == "" {
		msg = "An error occurred. Please try again."
	}
	if field := apperrors.GetField(err); field != "" && apperrors.IsValidation(err) {
		if *fieldErrors == nil {
			*fieldErrors = map[string]string{}
		}
		(*fieldErrors)[field] = msg
	}
	return msg
}

// noticeForError maps a backend 401/403 on a mutation onto a page notice.
// Forbidden errors raised by the role check carry their own notice text.
func noticeForError(err error) (service.Notice, bool) {
	switch {
	case err == nil:
		return service.Notice{}, false
	case apperrors.IsUnauthenticated(err):
		return sessionExpiredNotice, true
	case apperrors.IsForbidden(err):
		return service.Notice{Title: "Access Restricted", Body: apperrors.UserMessage(err, "You do not have access to this action.")}, true
	default:
		return service.Notice{}, false
	}
}

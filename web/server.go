// Package web serves the mandala form over HTTP.
package web

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/imaging"
	"github.com/petal-labs/mandala/mandala"
)

//go:embed templates/*.tmpl templates/style.css
var templatesFS embed.FS

// maxFormBytes bounds form and JSON bodies; the inputs are two short strings.
const maxFormBytes = 64 << 10

// formErrorMessage is shown when the submitted form cannot be parsed.
const formErrorMessage = "The form could not be read. Please reload the page and try again."

// sidebarCredentialMessage points at the key field in the page's sidebar.
const sidebarCredentialMessage = "Please enter your OpenAI API key in the sidebar first!"

// Generator produces one mandala per call.
type Generator interface {
	Generate(ctx context.Context, seed string, credential core.Secret) (*mandala.Result, error)
}

// FormState is everything one render of the page depends on. It is built
// from the request and handed to the template; nothing survives the request.
// After a submission exactly one of Error and Mandala is set.
type FormState struct {
	Seed    string
	Error   string
	Mandala *MandalaView
}

// MandalaView is a generated mandala ready for display and download.
type MandalaView struct {
	Caption       string
	RevisedPrompt string
	Filename      string
	ImageURI      template.URL
	Width         int
	Height        int
}

type pageView struct {
	CSS     template.CSS
	MaxSeed int
	State   FormState
}

// Server renders the form and runs generations.
type Server struct {
	templates *template.Template
	css       template.CSS
	gen       Generator
	logger    *slog.Logger
}

// NewServer parses the embedded templates. A nil logger discards output.
func NewServer(gen Generator, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	rawCSS, err := templatesFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		templates: tmpl,
		css:       template.CSS(rawCSS),
		gen:       gen,
		logger:    logger,
	}, nil
}

// Handler returns the routed handler wrapped with request ids and access logs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.HandleIndex)
	mux.HandleFunc("POST /generate", s.HandleGenerate)
	mux.HandleFunc("GET /generate", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	mux.Handle("POST /api/mandala", &mandalaHandler{gen: s.gen, logger: s.logger})
	mux.HandleFunc("GET /healthz", HandleHealth)
	return withRequestID(s.logger, mux)
}

// HandleIndex renders the empty form.
func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, FormState{})
}

// HandleGenerate runs one generation from the submitted form and re-renders
// the page with either the mandala or a single error message.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.logger.InfoContext(r.Context(), "unreadable form", "request_id", RequestID(r.Context()), "status", status)
		s.render(w, r, status, FormState{Error: formErrorMessage})
		return
	}

	seed := mandala.ClampSeed(r.PostFormValue("word"))
	credential := core.NewSecret(r.PostFormValue("api_key"))

	state, status := s.generate(r.Context(), seed, credential)
	s.render(w, r, status, state)
}

func (s *Server) generate(ctx context.Context, seed string, credential core.Secret) (FormState, int) {
	state := FormState{Seed: seed}

	res, err := s.gen.Generate(ctx, seed, credential)
	if err != nil {
		f := mandala.Classify(err)
		s.logFailure(ctx, f)
		state.Error = pageMessage(f)
		return state, statusFor(f.Kind)
	}

	state.Mandala = &MandalaView{
		Caption:       "Mandala inspired by: " + res.Seed,
		RevisedPrompt: res.RevisedPrompt,
		Filename:      res.Filename,
		ImageURI:      dataURI(imaging.MIMEType, res.JPEG),
		Width:         res.Width,
		Height:        res.Height,
	}
	s.logger.InfoContext(ctx, "mandala generated",
		"request_id", RequestID(ctx),
		"width", res.Width,
		"height", res.Height,
		"jpeg_bytes", len(res.JPEG),
		"flattened", res.Flattened,
	)
	return state, http.StatusOK
}

func (s *Server) logFailure(ctx context.Context, f *mandala.Failure) {
	level := slog.LevelWarn
	if f.Kind.IsValidation() {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "mandala generation failed", failureAttrs(ctx, f)...)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, state FormState) {
	view := pageView{
		CSS:     s.css,
		MaxSeed: mandala.MaxSeedLength,
		State:   state,
	}

	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, "page", view); err != nil {
		s.logger.ErrorContext(r.Context(), "render page", "request_id", RequestID(r.Context()), "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// pageMessage is the error line for the HTML page, which names the sidebar
// holding the key field.
func pageMessage(f *mandala.Failure) string {
	if f.Kind == mandala.KindMissingCredential {
		return sidebarCredentialMessage
	}
	return f.Message()
}

// HandleHealth is the liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// statusFor maps a failure kind to the HTTP status used by both endpoints.
func statusFor(kind mandala.Kind) int {
	switch kind {
	case mandala.KindMissingCredential, mandala.KindAuthentication:
		return http.StatusUnauthorized
	case mandala.KindMissingPromptSeed, mandala.KindBadRequest:
		return http.StatusBadRequest
	case mandala.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func dataURI(mime string, data []byte) template.URL {
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

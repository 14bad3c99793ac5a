package web

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/petal-labs/mandala/core"
	"github.com/petal-labs/mandala/imaging"
	"github.com/petal-labs/mandala/mandala"
)

type mandalaHandler struct {
	gen    Generator
	logger *slog.Logger
}

type mandalaPayload struct {
	Word   string `json:"word"`
	APIKey string `json:"api_key"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// ServeHTTP answers with the JPEG as an attachment, or a JSON error envelope.
// The credential is read from the payload or an Authorization bearer header.
func (h *mandalaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	var payload mandalaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "request body must be a JSON object")
		return
	}
	if payload.APIKey == "" {
		payload.APIKey = bearerToken(r.Header.Get("Authorization"))
	}

	ctx := r.Context()
	res, err := h.gen.Generate(ctx, mandala.ClampSeed(payload.Word), core.NewSecret(payload.APIKey))
	if err != nil {
		f := mandala.Classify(err)
		h.logger.WarnContext(ctx, "api generation failed", failureAttrs(ctx, f)...)
		writeError(w, statusFor(f.Kind), f.Kind.String(), f.Message())
		return
	}

	w.Header().Set("Content-Type", imaging.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.JPEG)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(res.JPEG)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

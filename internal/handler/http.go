package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/shorturls/internal/logger"
	"github.com/MikhailRaia/shorturls/internal/metrics"
	"github.com/MikhailRaia/shorturls/internal/middleware"
	"github.com/MikhailRaia/shorturls/internal/model"
	"github.com/MikhailRaia/shorturls/internal/service"
)

const (
	msgInvalidJSON   = "Invalid JSON body"
	msgURLRequired   = "URL is required"
	msgDuplicateCode = "Shortcode already exists"
	msgNotFound      = "Short URL not found"
	msgExpired       = "Short URL expired"
	msgServerError   = "Server error"
)

// maxValiditySeconds keeps float-to-int conversion of validity well defined.
const maxValiditySeconds = 1 << 53

const maxBodyBytes = 1 << 20

type URLService interface {
	CreateShortURL(ctx context.Context, req model.CreateRequest) (model.CreateResult, error)
	Resolve(ctx context.Context, code string) (model.ShortURLEntry, error)
}

type Handler struct {
	urlService URLService
	baseURL    string
}

// NewHandler builds the HTTP handler. An empty baseURL means short URLs are
// built from the scheme and host of each incoming request.
func NewHandler(urlService URLService, baseURL string) *Handler {
	return &Handler{
		urlService: urlService,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(middleware.GzipReader)
	r.Use(logger.RequestLogger)
	r.Use(metrics.Middleware)
	// inside the logger and metrics so recovered 500s are still recorded
	r.Use(middleware.Recoverer)
	r.Use(middleware.GzipMiddleware)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	r.Post("/shorturls", h.handleCreate)
	r.Get("/shorturls/{shortcode}", h.handleRetrieve)
	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, msg := decodeCreateRequest(r)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.urlService.CreateShortURL(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, msgURLRequired)
		case errors.Is(err, service.ErrDuplicateShortcode):
			respondError(w, http.StatusBadRequest, msgDuplicateCode)
		default:
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to create short URL")
			respondServerError(w, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, model.CreateShortURLResponse{
		ShortURL: buildShortURL(h.requestBaseURL(r), result.Shortcode),
		Expiry:   result.Expiry,
	})
}

// decodeCreateRequest returns the parsed request, or the client error message
// when the body cannot be used.
func decodeCreateRequest(r *http.Request) (model.CreateRequest, string) {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return model.CreateRequest{}, msgInvalidJSON
	}

	// null, {} and non-objects are all rejected as an unusable body
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return model.CreateRequest{}, msgInvalidJSON
	}

	var payload model.CreateShortURLRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.CreateRequest{}, msgInvalidJSON
	}

	if payload.URL == nil || *payload.URL == "" {
		return model.CreateRequest{}, msgURLRequired
	}

	req := model.CreateRequest{URL: *payload.URL}

	if payload.Validity != nil {
		v := math.Trunc(*payload.Validity)
		if math.Abs(v) > maxValiditySeconds {
			return model.CreateRequest{}, msgInvalidJSON
		}
		validity := int64(v)
		req.Validity = &validity
	}

	if payload.Shortcode != nil {
		req.Shortcode = *payload.Shortcode
	}

	return req, ""
}

func (h *Handler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	code, err := shortcodeParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}

	entry, err := h.urlService.Resolve(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(w, http.StatusNotFound, msgNotFound)
		case errors.Is(err, service.ErrExpired):
			respondError(w, http.StatusGone, msgExpired)
		default:
			log.Error().Err(err).Str("shortcode", code).Msg("Failed to resolve short URL")
			respondServerError(w, err)
		}
		return
	}

	if r.URL.Query().Get("json") == "true" {
		respondJSON(w, http.StatusOK, model.OriginalURLResponse{OriginalURL: entry.URL})
		return
	}

	w.Header().Set("Location", entry.URL)
	w.WriteHeader(http.StatusFound)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Not found")
}

func (h *Handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *Handler) requestBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	return scheme + "://" + r.Host
}

// buildShortURL appends the escaped code to base. The code is escaped as a
// single path segment so dot segments and slashes survive the round trip.
func buildShortURL(base, code string) string {
	return strings.TrimRight(base, "/") + "/shorturls/" + url.PathEscape(code)
}

// shortcodeParam returns the decoded {shortcode} segment. chi matches on the
// raw path when it differs from the decoded one, so %2F stays inside the
// segment and has to be decoded here.
func shortcodeParam(r *http.Request) (string, error) {
	code := chi.URLParam(r, "shortcode")
	if r.URL.RawPath == "" {
		return code, nil
	}
	return url.PathUnescape(code)
}

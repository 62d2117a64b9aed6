package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/joojungwoo/yakson/internal/core"
	"github.com/joojungwoo/yakson/internal/normalize"
)

// langHeader overrides Accept-Language when clients cannot control it, e.g.
// behind webviews.
const langHeader = "X-Yakson-Language"

var supportedLangs = language.NewMatcher([]language.Tag{
	language.Korean, // default
	language.English,
})

// HTTPServer exposes the analysis service over HTTP.
type HTTPServer struct {
	service        *core.AnalysisService
	logger         *zap.Logger
	listenAddr     string
	defaultLang    string
	allowedOrigins []string
	readTimeout    time.Duration
	writeTimeout   time.Duration

	srv *http.Server
}

// NewHTTPServer creates a new HTTP server for the analysis service.
func NewHTTPServer(
	service *core.AnalysisService,
	logger *zap.Logger,
	listenAddr string,
	defaultLang string,
	allowedOrigins []string,
	readTimeout, writeTimeout time.Duration,
) *HTTPServer {
	return &HTTPServer{
		service:        service,
		logger:         logger,
		listenAddr:     listenAddr,
		defaultLang:    defaultLang,
		allowedOrigins: allowedOrigins,
		readTimeout:    readTimeout,
		writeTimeout:   writeTimeout,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *HTTPServer) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", langHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)

	s.srv = &http.Server{
		Addr:         s.listenAddr,
		Handler:      r,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", s.listenAddr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *HTTPServer) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

type analyzeRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		lang := s.resolveLang("", r)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalidBodyMessage(lang)})
		return
	}

	lang := s.resolveLang(req.Lang, r)
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: missingTextMessage(lang)})
		return
	}

	result, err := s.service.Analyze(r.Context(), req.Text, lang)
	if err != nil {
		if err == core.ErrEmptyInput {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: missingTextMessage(lang)})
			return
		}
		// Internal failures still answer with the full result shape,
		// zeroed, so clients never parse a separate error envelope.
		s.logger.Error("Analysis failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, normalize.ZeroResult(req.Text, lang))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// resolveLang picks the response language: explicit body field, then the
// override header, then Accept-Language, then the configured default.
func (s *HTTPServer) resolveLang(bodyLang string, r *http.Request) string {
	if bodyLang == "ko" || bodyLang == "en" {
		return bodyLang
	}
	if hl := r.Header.Get(langHeader); hl == "ko" || hl == "en" {
		return hl
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, idx, conf := supportedLangs.Match(tags...)
			if conf > language.No {
				if idx == 1 {
					return "en"
				}
				return "ko"
			}
		}
	}
	return s.defaultLang
}

// recoverer converts handler panics into a 500 carrying a zeroed result
// instead of a dropped connection.
func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panicked", zap.Any("panic", rec))
				writeJSON(w, http.StatusInternalServerError,
					normalize.ZeroResult("", s.resolveLang("", r)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func missingTextMessage(lang string) string {
	if lang == "en" {
		return "text is required"
	}
	return "분석할 내용을 입력해주세요"
}

func invalidBodyMessage(lang string) string {
	if lang == "en" {
		return "invalid request body"
	}
	return "요청 형식이 올바르지 않습니다"
}

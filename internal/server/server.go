// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audmix"
	"github.com/ik5/audmix/config"
)

const (
	// multipart parts beyond this size spill to temporary files
	maxMemory = 32 << 20

	msgBothRequired = "Both speech and music files are required."
	msgSelectBoth   = "Please select both speech and music files."
)

// Mixer is the engine as seen by the upload boundary.
type Mixer interface {
	Mix(req audmix.MixRequest) (*audmix.MixResult, error)
}

// Server accepts two uploads and responds with their mix.
type Server struct {
	mixer   Mixer
	cfg     config.ServerConfig
	allowed map[string]bool
	log     *slog.Logger
}

func New(mixer Mixer, cfg config.ServerConfig, log *slog.Logger) *Server {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.TrimPrefix(strings.ToLower(ext), ".")] = true
	}

	return &Server{
		mixer:   mixer,
		cfg:     cfg,
		allowed: allowed,
		log:     log,
	}
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/mix", s.handleMix)

	return s.loggingMiddleware(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", slog.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("graceful shutdown failed", slog.Any("error", err))
		return errors.Join(err, srv.Close())
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	log := requestLogger(r.Context(), s.log)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, msgBothRequired)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warn("removing upload artifacts", slog.Any("error", err))
		}
	}()

	speech, speechName, status, msg := s.readUpload(r, "speech")
	if status != 0 {
		writeError(w, status, msg)
		return
	}
	music, musicName, status, msg := s.readUpload(r, "music")
	if status != 0 {
		writeError(w, status, msg)
		return
	}

	log.Debug("processing files",
		slog.String("speech", speechName),
		slog.String("music", musicName),
	)

	res, err := s.mixer.Mix(audmix.MixRequest{
		Speech: audmix.Input{Data: speech, Hint: speechName},
		Music:  audmix.Input{Data: music, Hint: musicName},
	})
	if err != nil {
		status, msg := errorResponse(err)
		log.Error("Error processing audio files", slog.Any("error", err), slog.Int("status", status))
		writeError(w, status, msg)
		return
	}

	filename := OutputFilename(speechName, musicName, res.Extension)
	log.Debug("sending mixed audio file",
		slog.String("filename", filename),
		slog.Duration("duration", res.Duration),
	)

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		log.Warn("failed to write mix response", slog.Any("error", err))
	}
}

// readUpload returns the content and client filename of a form file, or a
// non-zero status with the message to send.
func (s *Server) readUpload(r *http.Request, field string) ([]byte, string, int, string) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		// a part sent with an empty filename lands among the values
		if _, ok := r.MultipartForm.Value[field]; ok {
			return nil, "", http.StatusBadRequest, msgSelectBoth
		}
		return nil, "", http.StatusBadRequest, msgBothRequired
	}

	hdr := files[0]
	if hdr.Filename == "" {
		return nil, "", http.StatusBadRequest, msgSelectBoth
	}
	if !s.allowedFile(hdr.Filename) {
		return nil, "", http.StatusBadRequest,
			"Invalid file type. Allowed types: " + strings.Join(s.cfg.AllowedExtensions, ", ")
	}

	data, err := readPart(hdr)
	if err != nil {
		return nil, "", http.StatusBadRequest, fmt.Sprintf("Could not read the %s file.", field)
	}
	return data, hdr.Filename, 0, ""
}

func readPart(hdr *multipart.FileHeader) ([]byte, error) {
	f, err := hdr.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (s *Server) allowedFile(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return s.allowed[strings.ToLower(name[i+1:])]
}

func tooLargeMessage(limit int64) string {
	mb := strconv.FormatFloat(float64(limit)/(1<<20), 'f', -1, 64)
	return "File too large. Maximum size is " + mb + "MB."
}

// errorResponse maps engine errors to a status and a user facing message.
func errorResponse(err error) (int, string) {
	var decErr *audmix.DecodeError
	if errors.As(err, &decErr) {
		return http.StatusUnprocessableEntity,
			fmt.Sprintf("Error processing audio files: the %s file could not be decoded as audio.", decErr.Input)
	}

	var invalid *audmix.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, "Error processing audio files: " + invalid.Error()
	}

	return http.StatusInternalServerError, "Error processing audio files: " + err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type ctxKey struct{}

func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return fallback
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		log := s.log.With(slog.String("request_id", id))
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, log))

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		log.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", lrw.statusCode),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(statusCode int) {
	lrw.statusCode = statusCode
	lrw.ResponseWriter.WriteHeader(statusCode)
}

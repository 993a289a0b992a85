package middleware

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// requestInfo is filled in by handlers further down the chain. The pointer
// survives the request copies made by StripPrefix and Auth.
type requestInfo struct {
	session string
}

// AnnotateSession records the game session a request touched so that the
// request log line carries it. It is a no-op outside Logging.
func AnnotateSession(ctx context.Context, id string) {
	if info, ok := ctx.Value(CtxRequestInfo).(*requestInfo); ok {
		info.session = id
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status   int
	written  int
	upgraded bool
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += n
	return n, err
}

// Hijack keeps websocket upgrades working behind the logger.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	conn, rw, err := h.Hijack()
	if err == nil {
		s.upgraded = true
	}
	return conn, rw, err
}

func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			info := &requestInfo{}

			next.ServeHTTP(rec, r.WithContext(
				context.WithValue(r.Context(), CtxRequestInfo, info),
			))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("uri", r.URL.RequestURI()),
				slog.Int("status", rec.status),
				slog.Int("bytes", rec.written),
				slog.Duration("took", time.Since(start)),
				slog.String("remoteAddr", r.RemoteAddr),
			}
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				attrs = append(attrs, slog.String("xff", xff))
			}
			if info.session != "" {
				attrs = append(attrs, slog.String("session", info.session))
			}
			if rec.upgraded {
				attrs = append(attrs, slog.Bool("upgraded", true))
			}
			logger.LogAttrs(r.Context(), slog.LevelInfo, "handled request", attrs...)
		})
	}
}

package server

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const traceHeader = "X-Trace-ID"

// traceID 沿用入站 X-Trace-ID 或 traceparent，均无则生成 uuid。
func traceID(r *http.Request) string {
	if id := r.Header.Get(traceHeader); id != "" {
		return id
	}
	if id := r.Header.Get("traceparent"); id != "" {
		return id
	}
	return uuid.New().String()
}

// statusRecorder 记录状态码供访问日志使用；支持 Hijack 以便 /ws 升级。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	conn, rw, err := h.Hijack()
	if err == nil && w.status == 0 {
		w.status = http.StatusSwitchingProtocols
	}
	return conn, rw, err
}

func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// withTrace 为每个响应注入 X-Trace-ID，并在开启时输出一行访问日志。
func (s *Server) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := traceID(r)
		w.Header().Set(traceHeader, id)
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if !s.cfg.HTTP.AccessLog {
			return
		}
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Printf("%s %s %s %s %d %s",
			id, r.RemoteAddr, r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond))
	})
}

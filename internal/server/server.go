// Package server 注册信息端点并在给定 listener 上提供 HTTP 服务。
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"ipinfo/internal/config"
)

// Server 持有配置与日志；无跨请求可变状态，每个请求独立构造 RequestInfo。
type Server struct {
	cfg      *config.Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer 构造 Server；cfg 为 nil 时使用 config.Default()，logger 为 nil 时使用 log.Default()。
func NewServer(cfg *config.Config, logger *log.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			// 只读诊断信息，不限制来源
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler 返回注册了全部路由的 HTTP Handler，供测试或外部嵌入使用。
// 未注册路径由 ServeMux 返回 404，已注册路径的非 GET 方法返回 405。
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.ipHandler())
	mux.HandleFunc("GET /ip", s.ipHandler())
	mux.HandleFunc("GET /ua", fieldHandler(userAgent))
	mux.HandleFunc("GET /lang", fieldHandler(language))
	mux.HandleFunc("GET /encoding", fieldHandler(encoding))
	mux.HandleFunc("GET /mime", fieldHandler(mime))
	mux.HandleFunc("GET /forwarded", fieldHandler(forwarded))
	mux.HandleFunc("GET /all", s.allHandler())
	mux.HandleFunc("GET /all.json", s.allJSONHandler())
	mux.HandleFunc("GET /ws", s.wsHandler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeText(w, "ok")
	})
	return s.withTrace(mux)
}

// Serve 在 ln 上提供服务，直到 ctx 取消；取消后在 shutdown 超时内优雅关闭。
// 正常关闭返回 nil。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.HTTP.ReadHeaderTimeout(),
		ErrorLog:          s.logger,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("shutdown: %v", err)
		}
	}()
	err := server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

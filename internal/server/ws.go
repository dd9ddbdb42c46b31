package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"ipinfo/internal/reqinfo"
)

const wsWriteTimeout = 5 * time.Second

// wsHandler 处理 GET /ws：升级后发送一条 JSON 文本消息（握手请求的 RequestInfo），随后正常关闭。
func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := reqinfo.FromRequest(r)
		respHeader := http.Header{}
		if id := w.Header().Get(traceHeader); id != "" {
			respHeader.Set(traceHeader, id)
		}
		conn, err := s.upgrader.Upgrade(w, r, respHeader)
		if err != nil {
			// Upgrade 已写出错误响应
			return
		}
		defer conn.Close()

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(info); err != nil {
			s.logger.Printf("ws write: %v", err)
			return
		}
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

package server

import (
	"encoding/json"
	"net/http"

	"ipinfo/internal/reqinfo"
)

// fieldSelector 取 RequestInfo 中单个可选字段。
type fieldSelector func(reqinfo.RequestInfo) *string

func userAgent(i reqinfo.RequestInfo) *string { return i.UserAgent }
func language(i reqinfo.RequestInfo) *string  { return i.Language }
func encoding(i reqinfo.RequestInfo) *string  { return i.Encoding }
func mime(i reqinfo.RequestInfo) *string      { return i.MIME }
func forwarded(i reqinfo.RequestInfo) *string { return i.Forwarded }

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// ipHandler 处理 GET / 与 GET /ip：仅返回客户端 IP。
func (s *Server) ipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, reqinfo.FromRequest(r).IPAddr+"\n")
	}
}

// fieldHandler 单字段端点：头缺失时输出 "unknown"。
func fieldHandler(sel fieldSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, reqinfo.Field(sel(reqinfo.FromRequest(r)))+"\n")
	}
}

// allHandler 处理 GET /all：全部字段纯文本，缺失为空字符串。
func (s *Server) allHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeText(w, reqinfo.FromRequest(r).Text())
	}
}

// allJSONHandler 处理 GET /all.json：缺失字段为 null。
func (s *Server) allJSONHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(reqinfo.FromRequest(r))
		if err != nil {
			s.logger.Printf("all.json marshal: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

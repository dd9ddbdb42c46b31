package reqinfo

import (
	"net/http"
	"net/textproto"
)

// HeaderSource 按名称查找请求头；名称大小写不敏感，重复头取第一个值。
type HeaderSource interface {
	Get(name string) (string, bool)
}

// HTTPHeader 将 http.Header 适配为 HeaderSource，查找语义与 http.Header.Get 一致。
type HTTPHeader http.Header

func (h HTTPHeader) Get(name string) (string, bool) {
	vs := http.Header(h).Values(name)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// MapHeaders 内存头集合，测试或非 HTTP 调用方使用。键在查找时规范化。
type MapHeaders map[string]string

func (m MapHeaders) Get(name string) (string, bool) {
	want := textproto.CanonicalMIMEHeaderKey(name)
	for k, v := range m {
		if textproto.CanonicalMIMEHeaderKey(k) == want {
			return v, true
		}
	}
	return "", false
}

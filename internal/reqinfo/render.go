package reqinfo

import (
	"strconv"
	"strings"
)

// Field 单字段端点的取值：缺失时为 "unknown"。
func Field(v *string) string {
	if v == nil {
		return Unknown
	}
	return *v
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Text 渲染 /all 的纯文本：每行 "name: value"，缺失的可选字段为空字符串。
func (i RequestInfo) Text() string {
	lines := []struct{ name, value string }{
		{"ip_addr", i.IPAddr},
		{"remote_host", i.RemoteHost},
		{"user_agent", orEmpty(i.UserAgent)},
		{"port", strconv.FormatUint(uint64(i.Port), 10)},
		{"language", orEmpty(i.Language)},
		{"referer", orEmpty(i.Referer)},
		{"connection", orEmpty(i.Connection)},
		{"keep_alive", orEmpty(i.KeepAlive)},
		{"method", i.Method},
		{"encoding", orEmpty(i.Encoding)},
		{"mime", orEmpty(i.MIME)},
		{"charset", orEmpty(i.Charset)},
		{"via", orEmpty(i.Via)},
		{"forwarded", orEmpty(i.Forwarded)},
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.name)
		b.WriteString(": ")
		b.WriteString(l.value)
		b.WriteByte('\n')
	}
	return b.String()
}

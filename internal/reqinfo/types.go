// Package reqinfo 从入站请求提取客户端信息（RequestInfo），供各端点渲染。
package reqinfo

// RemoteHostUnavailable 不做反向解析，remote_host 恒为此值。
const RemoteHostUnavailable = "unavailable"

// Unknown 单字段端点在头缺失时输出的占位值。
const Unknown = "unknown"

// RequestInfo 单次请求的客户端信息；构造后只读，不跨请求共享。
// 可选字段为 nil 表示请求中没有该头（或值不是合法文本），JSON 序列化为 null。
type RequestInfo struct {
	IPAddr     string  `json:"ip_addr"`
	RemoteHost string  `json:"remote_host"`
	UserAgent  *string `json:"user_agent"`
	Port       uint16  `json:"port"`
	Method     string  `json:"method"`
	Encoding   *string `json:"encoding"`
	MIME       *string `json:"mime"`
	Language   *string `json:"language"`
	Referer    *string `json:"referer"`
	Connection *string `json:"connection"`
	KeepAlive  *string `json:"keep_alive"`
	Charset    *string `json:"charset"`
	Via        *string `json:"via"`
	Forwarded  *string `json:"forwarded"`
}

package reqinfo

import (
	"net"
	"net/http"
	"net/netip"
	"strconv"
)

// Extract 由远端地址、方法与请求头构造 RequestInfo。纯函数，不返回错误。
func Extract(remote netip.AddrPort, method string, h HeaderSource) RequestInfo {
	addr := remote.Addr().Unmap()
	ip := ""
	if addr.IsValid() {
		ip = addr.String()
	}
	return RequestInfo{
		IPAddr:     ip,
		RemoteHost: RemoteHostUnavailable,
		UserAgent:  lookup(h, "User-Agent"),
		Port:       remote.Port(),
		Method:     method,
		Encoding:   lookup(h, "Accept-Encoding"),
		MIME:       lookup(h, "Accept"),
		Language:   lookup(h, "Accept-Language"),
		Referer:    lookup(h, "Referer"),
		Connection: lookup(h, "Connection"),
		KeepAlive:  lookup(h, "Keep-Alive"),
		Charset:    lookup(h, "Accept-Charset"),
		Via:        lookup(h, "Via"),
		Forwarded:  lookup(h, "Forwarded"),
	}
}

// FromRequest 从 *http.Request 提取。RemoteAddr 无法解析为 ip:port 时，
// 退化为原始 host、端口 0。
func FromRequest(r *http.Request) RequestInfo {
	h := HTTPHeader(r.Header)
	if ap, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return Extract(ap, r.Method, h)
	}
	info := Extract(netip.AddrPort{}, r.Method, h)
	host, port, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		info.IPAddr = r.RemoteAddr
		return info
	}
	info.IPAddr = host
	if n, err := strconv.ParseUint(port, 10, 16); err == nil {
		info.Port = uint16(n)
	}
	return info
}

func lookup(h HeaderSource, name string) *string {
	if h == nil {
		return nil
	}
	v, ok := h.Get(name)
	if !ok || !isText(v) {
		return nil
	}
	return &v
}

// isText 仅接受可见 ASCII、空格与制表符；其余字节（含非 ASCII）视为非法文本。
func isText(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\t' {
			continue
		}
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

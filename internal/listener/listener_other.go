//go:build !unix

package listener

import (
	"context"
	"net"
	"net/netip"
)

// 非 unix 平台：Go 对 "tcp" + IPv6 通配地址默认即为双栈；backlog 由系统决定。
func listenDualStack(ap netip.AddrPort, _ int) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", ap.String())
	if err != nil {
		return nil, &StepError{Step: StepBind, Err: err}
	}
	return ln, nil
}

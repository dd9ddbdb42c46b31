// Package listener 建立双栈（IPv4 + IPv6）监听 socket：IPv6 通配地址、关闭 IPV6_V6ONLY、固定 backlog。
// 任一步骤失败即返回 *StepError，由调用方决定退出；不重试、不回退到其他端口。
package listener

import (
	"fmt"
	"log"
	"net"
	"net/netip"
	"strconv"

	"ipinfo/internal/config"
)

// Step 标识失败发生在哪一步。
type Step string

const (
	StepCreate  Step = "create"
	StepSockopt Step = "sockopt"
	StepBind    Step = "bind"
	StepListen  Step = "listen"
)

// StepError 启动阶段的 socket 错误，Err 为底层原因（可用 errors.Is 判断 EADDRINUSE 等）。
type StepError struct {
	Step Step
	Addr string
	Err  error
}

func (e *StepError) Error() string {
	switch e.Step {
	case StepCreate:
		return fmt.Sprintf("failed to create IPv6 socket for %s: %v", e.Addr, e.Err)
	case StepSockopt:
		return fmt.Sprintf("failed to configure dual-stack socket for %s: %v", e.Addr, e.Err)
	case StepBind:
		return fmt.Sprintf("failed to bind to dual-stack address %s: %v", e.Addr, e.Err)
	default:
		return fmt.Sprintf("failed to listen on dual-stack socket %s: %v", e.Addr, e.Err)
	}
}

func (e *StepError) Unwrap() error { return e.Err }

// Listen 按 cfg 在 [host]:port 上建立双栈监听。logger 为 nil 时使用 log.Default()。
func Listen(cfg config.ListenConfig, logger *log.Logger) (net.Listener, error) {
	if logger == nil {
		logger = log.Default()
	}
	host := cfg.Host
	if host == "" {
		host = "::"
	}
	addrStr := net.JoinHostPort(host, strconv.Itoa(cfg.Port))
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return nil, &StepError{Step: StepCreate, Addr: addrStr, Err: err}
	}
	if !ip.Is6() {
		return nil, &StepError{Step: StepCreate, Addr: addrStr, Err: fmt.Errorf("%s is not an IPv6 address", host)}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, &StepError{Step: StepCreate, Addr: addrStr, Err: fmt.Errorf("port %d out of range", cfg.Port)}
	}
	backlog := cfg.Backlog
	if backlog <= 0 {
		backlog = config.DefaultBacklog
	}

	logger.Printf("Listening on dual-stack address: %s", addrStr)
	ln, err := listenDualStack(netip.AddrPortFrom(ip, uint16(cfg.Port)), backlog)
	if err != nil {
		if se, ok := err.(*StepError); ok {
			se.Addr = addrStr
		}
		return nil, err
	}
	logger.Printf("Dual-stack server running on %s", ln.Addr())
	return ln, nil
}

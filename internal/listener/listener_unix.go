//go:build unix

package listener

import (
	"net"
	"net/netip"
	"os"

	"golang.org/x/sys/unix"
)

func listenDualStack(ap netip.AddrPort, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET6, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, &StepError{Step: StepCreate, Err: os.NewSyscallError("socket", err)}
	}
	unix.CloseOnExec(fd)
	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_V6ONLY, 0); err != nil {
		return nil, &StepError{Step: StepSockopt, Err: os.NewSyscallError("setsockopt IPV6_V6ONLY", err)}
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return nil, &StepError{Step: StepSockopt, Err: os.NewSyscallError("setsockopt SO_REUSEADDR", err)}
	}

	sa := &unix.SockaddrInet6{Port: int(ap.Port()), Addr: ap.Addr().As16()}
	if zone := ap.Addr().Zone(); zone != "" {
		ifi, err := net.InterfaceByName(zone)
		if err != nil {
			return nil, &StepError{Step: StepBind, Err: err}
		}
		sa.ZoneId = uint32(ifi.Index)
	}
	if err := unix.Bind(fd, sa); err != nil {
		return nil, &StepError{Step: StepBind, Err: os.NewSyscallError("bind", err)}
	}
	if err := unix.Listen(fd, backlog); err != nil {
		return nil, &StepError{Step: StepListen, Err: os.NewSyscallError("listen", err)}
	}

	// net.FileListener 会 dup 出新的 fd，原 fd 随 f 关闭。
	f := os.NewFile(uintptr(fd), "ipinfo-dual-stack")
	ok = true
	defer f.Close()
	ln, err := net.FileListener(f)
	if err != nil {
		return nil, &StepError{Step: StepListen, Err: err}
	}
	return ln, nil
}

//go:build windows

package ipc

import (
	"fmt"
	"net"
)

// Windows has no unix domain sockets on older builds, so the publisher
// binds a loopback TCP port instead. The path argument is ignored.

func CreatePlatformListener(_ string) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", DefaultTCPPort))
}

func ConnectPlatform(_ string) (net.Conn, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", DefaultTCPPort)
	return net.DialTimeout("tcp", addr, ReadTimeout)
}

func GetPlatformAddress(_ string) string {
	return fmt.Sprintf("127.0.0.1:%d", DefaultTCPPort)
}

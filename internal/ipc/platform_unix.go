//go:build !windows

package ipc

import (
	"net"
)

// CreatePlatformListener listens on a unix domain socket, clearing any
// stale socket file first.
func CreatePlatformListener(path string) (net.Listener, error) {
	if path == "" {
		path = DefaultSocketPath
	}
	if err := CleanupSocket(path); err != nil {
		return nil, err
	}
	return net.Listen("unix", path)
}

// ConnectPlatform dials the publisher's unix socket.
func ConnectPlatform(path string) (net.Conn, error) {
	if path == "" {
		path = DefaultSocketPath
	}
	return net.DialTimeout("unix", path, ReadTimeout)
}

// GetPlatformAddress returns the address a subscriber should dial.
func GetPlatformAddress(path string) string {
	if path == "" {
		return DefaultSocketPath
	}
	return path
}

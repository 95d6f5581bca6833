package ycmd

import (
	"crypto/rand"
	"fmt"
	"net"
)

// secretLen is the size in bytes of the shared HMAC secret.
const secretLen = 16

// provision allocates an unused localhost port and a fresh random secret for
// one backend instance.
//
// The port is discovered by binding to port 0 and releasing the listener
// immediately. A race window exists between release and the backend binding
// the port; it is accepted as a low-probability failure mode and surfaces as
// a launch failure if the backend loses the race.
func provision() (port int, secret []byte, err error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reserve port: %v", ErrProvision, err)
	}
	port = l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, nil, fmt.Errorf("%w: release port: %v", ErrProvision, err)
	}

	secret = make([]byte, secretLen)
	if _, err := rand.Read(secret); err != nil {
		return 0, nil, fmt.Errorf("%w: generate secret: %v", ErrProvision, err)
	}

	return port, secret, nil
}

package connector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// SkipKind classifies why a server's tools could not be loaded.
type SkipKind string

const (
	// SkipNotFound: the server's executable does not exist.
	SkipNotFound SkipKind = "not-found"
	// SkipConnect: the server is unreachable.
	SkipConnect SkipKind = "connect"
	// SkipTimeout: listing tools did not finish within the configured timeout.
	SkipTimeout SkipKind = "timeout"
	// SkipUnexpected: anything else.
	SkipUnexpected SkipKind = "unexpected"
)

// Skip is a non-fatal record of one server whose tools could not be loaded.
type Skip struct {
	Server string   `json:"server"`
	Kind   SkipKind `json:"kind"`
	Detail string   `json:"detail"`
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %s", s.Server, s.Detail)
}

// classify converts a per-server failure into a Skip record. It is the only
// place failure taxonomy lives, so the mapping stays testable in isolation.
func classify(server string, err error, timeout time.Duration) Skip {
	switch {
	case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
		return Skip{Server: server, Kind: SkipNotFound, Detail: fmt.Sprintf("command not found (%v)", err)}

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) || isNetTimeout(err):
		return Skip{Server: server, Kind: SkipTimeout, Detail: fmt.Sprintf("listing tools timed out after %s", timeout)}

	case isConnectFailure(err):
		return Skip{Server: server, Kind: SkipConnect, Detail: fmt.Sprintf("cannot connect (%v)", err)}

	default:
		return Skip{Server: server, Kind: SkipUnexpected, Detail: fmt.Sprintf("unexpected error (%T: %v)", err, err)}
	}
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

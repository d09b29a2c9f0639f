// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package remote

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	callEvent   = "call"
	resultEvent = "result"

	defaultTimeout = 10 * time.Second
)

// ErrClosed is returned by calls on a closed connection.
var ErrClosed = errors.New("remote: connection closed")

// Caller performs a single request against the environment server.
type Caller interface {
	Call(ctx context.Context, op string, args map[string]any) (map[string]any, error)
	Close() error
}

// Config describes how to reach the environment server.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	// Timeout bounds connecting and every call. Zero means ten seconds.
	Timeout time.Duration
}

// socketCaller implements Caller over a socket.io connection. Responses are
// matched to calls by id, so calls may be issued concurrently.
type socketCaller struct {
	sock    *socket.Socket
	timeout time.Duration
	logger  *slog.Logger

	nextID  atomic.Uint64
	mu      sync.Mutex
	pending map[uint64]chan map[string]any
	closed  bool
}

// Dial connects to the environment server.
func Dial(ctx context.Context, cfg Config) (Caller, error) {
	logger := ctxlog.FromContext(ctx).With("backend", "remote", "url", cfg.URL)
	logger.Info("Connecting to environment server...")

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	c := &socketCaller{
		sock:    io,
		timeout: timeout,
		logger:  logger,
		pending: make(map[uint64]chan map[string]any),
	}
	io.On(types.EventName(resultEvent), c.dispatch)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to environment server", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- firstError(errs)
	})
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return c, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

func firstError(args []any) error {
	if len(args) == 0 {
		return errors.New("unknown connection error")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

// dispatch routes a result event to the waiting call.
func (c *socketCaller) dispatch(args ...any) {
	if len(args) == 0 {
		return
	}
	msg, ok := args[0].(map[string]any)
	if !ok {
		c.logger.Warn("Dropping malformed result", "type", fmt.Sprintf("%T", args[0]))
		return
	}
	id, ok := asUint(msg["id"])
	if !ok {
		c.logger.Warn("Dropping result without id")
		return
	}

	c.mu.Lock()
	ch, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		c.logger.Debug("Dropping result of abandoned call", "id", id)
		return
	}
	ch <- msg
}

// Call implements Caller.
func (c *socketCaller) Call(ctx context.Context, op string, args map[string]any) (map[string]any, error) {
	id := c.nextID.Add(1)
	ch := make(chan map[string]any, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	abandon := func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}

	c.logger.Debug("Calling environment server", "op", op, "id", id)
	c.sock.Emit(callEvent, map[string]any{"id": id, "op": op, "args": args})

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case msg, ok := <-ch:
		if !ok {
			return nil, ErrClosed
		}
		return decodeResult(op, msg)
	case <-ctx.Done():
		abandon()
		return nil, ctx.Err()
	case <-timer.C:
		abandon()
		return nil, fmt.Errorf("remote %s: timed out after %v", op, c.timeout)
	}
}

// Close implements Caller.
func (c *socketCaller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	c.logger.Info("Disconnecting from environment server", "sid", c.sock.Id())
	c.sock.Disconnect()
	return nil
}

package webui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// State is where a Request is in its single send.
type State int32

const (
	StateReady State = iota
	StateSending
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Request owns a single outbound call. It can be sent once and must be
// closed once the caller is done with it, whether or not it was sent.
type Request struct {
	client *http.Client
	method string
	url    string
	cancel context.CancelFunc

	mu       sync.Mutex
	req      *http.Request
	state    State
	closed   bool
	upload   []byte
	response bytes.Buffer
}

// NewRequest prepares a request in the ready state. Headers are applied here
// and never touched again.
func NewRequest(client *http.Client, url, method string, headers Headers) (*Request, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("webui: unsupported method %q", method)
	}
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("webui: %w", err)
	}
	headers.apply(req.Header)

	return &Request{
		client: client,
		method: method,
		url:    url,
		cancel: cancel,
		req:    req,
	}, nil
}

func (r *Request) Method() string {
	return r.method
}

func (r *Request) URL() string {
	return r.url
}

func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Request) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Send uploads body, when non-nil, and blocks until the server answers or
// ctx is done. A nil result with a nil error means the server replied with
// an empty or null body.
func (r *Request) Send(ctx context.Context, body []byte) ([]byte, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	if r.state != StateReady {
		r.mu.Unlock()
		return nil, ErrAlreadyCompleted
	}
	r.state = StateSending
	r.upload = body
	r.response.Reset()
	req := r.req
	r.mu.Unlock()

	if body != nil {
		req.Body = io.NopCloser(bytes.NewReader(body))
		req.ContentLength = int64(len(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	stop := context.AfterFunc(ctx, r.cancel)
	defer stop()

	data, err := r.roundTrip(req)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateFailed
		return nil, err
	}
	r.state = StateCompleted
	return data, nil
}

func (r *Request) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: r.method, URL: r.url, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if _, err := r.response.ReadFrom(resp.Body); err != nil {
		return nil, &TransportError{Method: r.method, URL: r.url, Message: err.Error(), Err: err}
	}

	text := bytes.TrimSpace(r.response.Bytes())
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(text))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &TransportError{Method: r.method, URL: r.url, StatusCode: resp.StatusCode, Message: msg}
	}

	if len(text) == 0 || string(text) == "null" {
		return nil, nil
	}
	return bytes.Clone(text), nil
}

// Close releases the request. It is safe to call more than once and from any
// state; an in-flight Send is aborted.
func (r *Request) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.cancel()
	r.req = nil
	r.upload = nil
	return nil
}

package errdef

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(CodeHTTP, nil, "perform request"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapKeepsCodeAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeHTTP, cause, "perform %s", "request")
	if got := err.Error(); got != "perform request: connection refused" {
		t.Fatalf("unexpected error text %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable via errors.Is")
	}
	if CodeOf(err) != CodeHTTP {
		t.Fatalf("expected code %q, got %q", CodeHTTP, CodeOf(err))
	}
}

func TestCodeOfUnknown(t *testing.T) {
	if CodeOf(errors.New("plain")) != CodeUnknown {
		t.Fatalf("expected unknown code for plain errors")
	}
	if CodeOf(nil) != CodeUnknown {
		t.Fatalf("expected unknown code for nil")
	}
}

func TestMessageReturnsRootCause(t *testing.T) {
	root := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	err := Wrap(CodeHTTP, fmt.Errorf("Get %q: %w", "http://127.0.0.1:1/r4/", root), "perform request")
	if got := Message(err); got != root.Error() {
		t.Fatalf("expected root message, got %q", got)
	}
	if Message(nil) != "" {
		t.Fatalf("expected empty message for nil error")
	}
	if got := Message(New(CodeConfig, "bad timeout %q", "x")); got != `bad timeout "x"` {
		t.Fatalf("unexpected message %q", got)
	}
}

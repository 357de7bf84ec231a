package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unkn0wn-root/livereq/internal/config"
	"github.com/unkn0wn-root/livereq/internal/errdef"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LIVEREQ_CONFIG_DIR", t.TempDir())
	t.Setenv("LIVEREQ_OTEL_ENDPOINT", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseHeaderFlags(t *testing.T) {
	got, err := parseHeaderFlags([]string{"Accept: application/xml", "X-Empty:", "Authorization: Bearer a:b"})
	if err != nil {
		t.Fatalf("parseHeaderFlags: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(got))
	}
	if got[0].Key != "Accept" || got[0].Value != "application/xml" {
		t.Fatalf("unexpected first header %+v", got[0])
	}
	if got[1].Key != "X-Empty" || got[1].Value != "" {
		t.Fatalf("unexpected empty header %+v", got[1])
	}
	if got[2].Value != "Bearer a:b" {
		t.Fatalf("expected value to keep later colons, got %q", got[2].Value)
	}

	if _, err := parseHeaderFlags([]string{"no-colon"}); errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSendPrintsFormattedOutput(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<Patient><id value="1"/></Patient>`)
	}))
	defer srv.Close()

	out, err := runCLI(t,
		"send",
		"--base-url", srv.URL,
		"-X", "post",
		"-H", "Accept: application/xml",
		"-d", `{"resourceType":"Patient"}`,
		"Patient",
	)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/r4/Patient" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotAccept != "application/xml" {
		t.Fatalf("expected later Accept row to win, got %q", gotAccept)
	}
	if gotBody != `{"resourceType":"Patient"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
	want := "<Patient>\n  <id value=\"1\"/>\n</Patient>\n"
	if out != want {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSendRejectsUnknownMethod(t *testing.T) {
	_, err := runCLI(t, "send", "-X", "PATCH", "Patient")
	if err == nil || !strings.Contains(err.Error(), "PATCH") {
		t.Fatalf("expected unsupported method error, got %v", err)
	}
}

func TestSendFromCatalogEntry(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, "plain text")
	}))
	defer srv.Close()

	catalogPath := filepath.Join(t.TempDir(), "calls.yaml")
	doc := "calls:\n  - name: metadata\n    endpoint: metadata\n"
	if err := os.WriteFile(catalogPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	out, err := runCLI(t, "send", "--base-url", srv.URL, "--route", "/fhir/",
		"--catalog", catalogPath, "--entry", "METADATA")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/fhir/metadata" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if out != "plain text\n" {
		t.Fatalf("expected raw output, got %q", out)
	}
}

func TestSendNetworkErrorPrintsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	out, err := runCLI(t, "send", "--base-url", url, "metadata")
	if err == nil {
		t.Fatalf("expected error for refused connection")
	}
	if errdef.CodeOf(err) != errdef.CodeHTTP {
		t.Fatalf("expected http error code, got %q", errdef.CodeOf(err))
	}
	if strings.TrimSpace(out) != errdef.Message(err) {
		t.Fatalf("expected output to carry the error text, got %q", out)
	}
}

func TestCatalogCommandFilters(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "calls.yaml")
	doc := "calls:\n  - name: Read observation\n    endpoint: Observation/1\n  - name: Create patient\n    method: POST\n    endpoint: Patient\n"
	if err := os.WriteFile(catalogPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	out, err := runCLI(t, "catalog", "--catalog", catalogPath, "patient")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !strings.Contains(out, "Create patient") || !strings.Contains(out, "POST") {
		t.Fatalf("expected patient entry, got %q", out)
	}
	if strings.Contains(out, "Read observation") {
		t.Fatalf("expected observation entry to be filtered out, got %q", out)
	}
}

func TestCatalogCommandRequiresCatalog(t *testing.T) {
	if _, err := runCLI(t, "catalog"); errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "livereq dev\n") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestConfigInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIVEREQ_CONFIG_DIR", dir)

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"config", "init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	settings, handle, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if handle.Path != filepath.Join(dir, "settings.toml") {
		t.Fatalf("unexpected settings path %q", handle.Path)
	}
	if settings.Prefix() != "http://localhost:5000/r4/" {
		t.Fatalf("unexpected prefix %q", settings.Prefix())
	}

	cmd = newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{"config", "init"})
	if err := cmd.Execute(); errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unkn0wn-root/livereq/internal/errdef"
)

func TestLoadSettingsReturnsDefaultHandleWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIVEREQ_CONFIG_DIR", dir)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	expectedPath := filepath.Join(dir, "settings.toml")
	if handle.Path != expectedPath {
		t.Fatalf("expected handle path %q, got %q", expectedPath, handle.Path)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if settings.Prefix() != "http://localhost:5000/r4/" {
		t.Fatalf("unexpected default prefix %q", settings.Prefix())
	}
	if !settings.FollowsRedirects() {
		t.Fatalf("expected redirects to be followed by default")
	}
	if settings.Hook.Addr != DefaultHookAddr || settings.Hook.Enabled {
		t.Fatalf("unexpected hook defaults %+v", settings.Hook)
	}
}

func TestSaveAndLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIVEREQ_CONFIG_DIR", dir)

	follow := false
	want := Settings{
		BaseURL:         "http://127.0.0.1:8000",
		RoutePrefix:     "fhir",
		Timeout:         "15s",
		FollowRedirects: &follow,
		Hook:            HookSettings{Enabled: true, AllowOrigin: "http://localhost:8080"},
	}
	if err := SaveSettings(want, SettingsHandle{}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q after save, got %q", SettingsFormatTOML, handle.Format)
	}
	if got.Prefix() != "http://127.0.0.1:8000/fhir/" {
		t.Fatalf("unexpected prefix %q", got.Prefix())
	}
	if got.FollowsRedirects() {
		t.Fatalf("expected follow_redirects=false to survive a round trip")
	}
	if !got.Hook.Enabled || got.Hook.Addr != DefaultHookAddr ||
		got.Hook.AllowOrigin != "http://localhost:8080" {
		t.Fatalf("unexpected hook settings %+v", got.Hook)
	}
	timeout, err := got.RequestTimeout()
	if err != nil || timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %s (%v)", timeout, err)
	}
}

func TestLoadSettingsJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIVEREQ_CONFIG_DIR", dir)

	payload, err := json.Marshal(map[string]any{"base_url": "http://api.local", "http2": true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), payload, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if handle.Format != SettingsFormatJSON {
		t.Fatalf("expected json handle, got %q", handle.Format)
	}
	if !got.HTTP2 || got.Prefix() != "http://api.local/r4/" {
		t.Fatalf("unexpected settings %+v", got)
	}
}

func TestLoadSettingsRejectsUnknownJSONFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIVEREQ_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"bogus":1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := LoadSettings()
	if err == nil {
		t.Fatalf("expected unknown field to fail")
	}
	if errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error code, got %q", errdef.CodeOf(err))
	}
}

func TestPrefixJoinsSlashes(t *testing.T) {
	cases := []struct {
		base, route, want string
	}{
		{"http://localhost:5000", "/r4/", "http://localhost:5000/r4/"},
		{"http://localhost:5000/", "r4", "http://localhost:5000/r4/"},
		{"http://localhost:5000/api/", "/", "http://localhost:5000/api/"},
		{"", "fhir/", "/fhir/"},
	}
	for _, tc := range cases {
		s := Settings{BaseURL: tc.base, RoutePrefix: tc.route}
		if got := s.Prefix(); got != tc.want {
			t.Fatalf("Prefix(%q,%q) = %q, want %q", tc.base, tc.route, got, tc.want)
		}
	}
}

func TestRequestTimeout(t *testing.T) {
	if d, err := (Settings{}).RequestTimeout(); err != nil || d != 0 {
		t.Fatalf("expected no timeout by default, got %s (%v)", d, err)
	}
	if _, err := (Settings{Timeout: "soon"}).RequestTimeout(); err == nil {
		t.Fatalf("expected invalid duration error")
	}
	if _, err := (Settings{Timeout: "-1s"}).RequestTimeout(); err == nil {
		t.Fatalf("expected negative duration error")
	}
}

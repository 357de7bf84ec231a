package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/livereq/internal/errdef"
)

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"

	DefaultBaseURL     = "http://localhost:5000"
	DefaultRoutePrefix = "/r4/"
	DefaultHookAddr    = "127.0.0.1:7357"
)

type Settings struct {
	BaseURL         string       `json:"base_url"         toml:"base_url"`
	RoutePrefix     string       `json:"route_prefix"     toml:"route_prefix"`
	Timeout         string       `json:"timeout"          toml:"timeout"`
	Insecure        bool         `json:"insecure"         toml:"insecure"`
	FollowRedirects *bool        `json:"follow_redirects" toml:"follow_redirects"`
	Proxy           string       `json:"proxy"            toml:"proxy"`
	HTTP2           bool         `json:"http2"            toml:"http2"`
	Catalog         string       `json:"catalog"          toml:"catalog"`
	Hook            HookSettings `json:"hook"             toml:"hook"`
}

type HookSettings struct {
	Enabled     bool   `json:"enabled"      toml:"enabled"`
	Addr        string `json:"addr"         toml:"addr"`
	AllowOrigin string `json:"allow_origin" toml:"allow_origin"`
}

type SettingsFormat string
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

func DefaultSettings() Settings {
	return Settings{
		BaseURL:     DefaultBaseURL,
		RoutePrefix: DefaultRoutePrefix,
		Hook:        HookSettings{Addr: DefaultHookAddr},
	}
}

// Normalise fills blanks with defaults. Values that are set are kept as
// written.
func Normalise(s Settings) Settings {
	if strings.TrimSpace(s.BaseURL) == "" {
		s.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(s.RoutePrefix) == "" {
		s.RoutePrefix = DefaultRoutePrefix
	}
	if strings.TrimSpace(s.Hook.Addr) == "" {
		s.Hook.Addr = DefaultHookAddr
	}
	return s
}

// Prefix joins the base URL and route prefix into the string every
// endpoint is appended to.
func (s Settings) Prefix() string {
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	route := strings.Trim(strings.TrimSpace(s.RoutePrefix), "/")
	if route == "" {
		return base + "/"
	}
	return base + "/" + route + "/"
}

// RequestTimeout is zero, meaning no timeout, unless one is configured.
func (s Settings) RequestTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(s.Timeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errdef.Wrap(errdef.CodeConfig, err, "parse timeout %q", raw)
	}
	if d < 0 {
		return 0, errdef.New(errdef.CodeConfig, "timeout must not be negative: %s", raw)
	}
	return d, nil
}

func (s Settings) FollowsRedirects() bool {
	if s.FollowRedirects == nil {
		return true
	}
	return *s.FollowRedirects
}

// tries loading TOML first, then JSON, then returns defaults if neither exists.
// parse errors fail immediately but missing files just skip to the next format.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, "settings.toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, "settings.json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read settings %q: %w", candidate.Path, err),
			)
			continue
		}

		settings, err := decodeSettings(data, candidate.Format)
		if err != nil {
			return Settings{}, SettingsHandle{}, errdef.Wrap(
				errdef.CodeConfig,
				err,
				"parse settings %q",
				candidate.Path,
			)
		}
		return Normalise(settings), candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, errdef.Wrap(errdef.CodeFilesystem, accumulated, "load settings")
	}

	return DefaultSettings(), SettingsHandle{
		Path:   candidates[0].Path,
		Format: SettingsFormatTOML,
	}, nil
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	var settings Settings
	switch format {
	case SettingsFormatTOML:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

func SaveSettings(settings Settings, handle SettingsHandle) error {
	settings = Normalise(settings)
	path := handle.Path
	format := handle.Format
	if path == "" {
		path = filepath.Join(Dir(), "settings.toml")
	}
	if format == "" {
		format = SettingsFormatTOML
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case SettingsFormatTOML:
		data, err = toml.Marshal(settings)
	case SettingsFormatJSON:
		buffer := &bytes.Buffer{}
		encoder := json.NewEncoder(buffer)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(settings); err == nil {
			data = buffer.Bytes()
		}
	default:
		return fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}

// write to temp file then rename so readers never see partial/corrupt data.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".livereq-settings-*.tmp")
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Package catalog loads "try it" calls that pre-fill the request form.
// A catalog is either a plain call list or an OpenAPI document whose
// operations are turned into calls.
package catalog

import (
	"context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
)

type Entry struct {
	Name      string `json:"name"              yaml:"name"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
	form.Call `yaml:",inline"`
}

type Options struct {
	// RoutePrefix is stripped from OpenAPI paths so endpoints line up with
	// what the form appends to its prefix.
	RoutePrefix string
}

type callList struct {
	Calls []Entry `yaml:"calls"`
}

func LoadFile(ctx context.Context, path string, opts Options) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "read catalog %q", path)
	}
	return Load(ctx, data, opts)
}

func Load(ctx context.Context, data []byte, opts Options) ([]Entry, error) {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "decode catalog")
	}
	if _, ok := probe["openapi"]; ok {
		return fromOpenAPI(ctx, data, opts)
	}

	var list callList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "decode call list")
	}
	for i := range list.Calls {
		if strings.TrimSpace(list.Calls[i].Name) == "" {
			list.Calls[i].Name = defaultName(list.Calls[i].Call)
		}
	}
	return list.Calls, nil
}

// Filter keeps entries whose name, summary, or endpoint contains query,
// ignoring case. A blank query keeps everything.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		haystack := strings.ToLower(e.Name + "\n" + e.Summary + "\n" + e.Call.Endpoint)
		if strings.Contains(haystack, q) {
			out = append(out, e)
		}
	}
	return out
}

func defaultName(call form.Call) string {
	method := strings.ToUpper(strings.TrimSpace(call.Method))
	if method == "" {
		method = string(form.MethodGet)
	}
	return strings.TrimSpace(method + " " + call.Endpoint)
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
)

func fromOpenAPI(ctx context.Context, data []byte, opts Options) ([]Entry, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	document, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "load OpenAPI spec")
	}
	if err := document.Validate(ctx); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "validate OpenAPI spec")
	}
	return collectEntries(document, opts), nil
}

func collectEntries(doc *openapi3.T, opts Options) []Entry {
	if doc.Paths == nil {
		return nil
	}

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for path := range pathMap {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var entries []Entry
	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		methodOrder := []struct {
			method form.Method
			op     *openapi3.Operation
		}{
			{form.MethodGet, item.Get},
			{form.MethodPost, item.Post},
			{form.MethodPut, item.Put},
			{form.MethodDelete, item.Delete},
		}
		for _, entry := range methodOrder {
			if entry.op == nil {
				continue
			}
			entries = append(entries, entryFor(path, entry.method, entry.op, item.Parameters, opts))
		}
	}
	return entries
}

func entryFor(
	path string,
	method form.Method,
	op *openapi3.Operation,
	baseParams openapi3.Parameters,
	opts Options,
) Entry {
	endpoint := fillPathParams(path, op.Parameters, baseParams)
	endpoint = stripRoute(endpoint, opts.RoutePrefix)

	call := form.Call{
		Method:   string(method),
		Endpoint: endpoint,
		Headers:  form.HeaderList(form.DefaultHeaders()),
	}
	if method != form.MethodGet {
		call.Body = exampleBody(op.RequestBody)
	}

	name := strings.TrimSpace(op.OperationID)
	if name == "" {
		name = fmt.Sprintf("%s %s", method, path)
	}
	summary := strings.TrimSpace(op.Summary)
	if summary == "" {
		summary = strings.TrimSpace(op.Description)
	}
	return Entry{Name: name, Summary: summary, Call: call}
}

// fillPathParams swaps {name} placeholders for the parameter's example
// when one is declared. Earlier sets win, so callers pass operation
// parameters before path-level ones.
func fillPathParams(path string, sets ...openapi3.Parameters) string {
	for _, params := range sets {
		for _, ref := range params {
			if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInPath {
				continue
			}
			if ref.Value.Example == nil {
				continue
			}
			placeholder := "{" + ref.Value.Name + "}"
			path = strings.ReplaceAll(path, placeholder, fmt.Sprint(ref.Value.Example))
		}
	}
	return path
}

func stripRoute(path, routePrefix string) string {
	route := strings.Trim(strings.TrimSpace(routePrefix), "/")
	trimmed := strings.TrimPrefix(path, "/")
	if route != "" {
		if trimmed == route {
			return ""
		}
		trimmed = strings.TrimPrefix(trimmed, route+"/")
	}
	return trimmed
}

func exampleBody(ref *openapi3.RequestBodyRef) string {
	if ref == nil || ref.Value == nil {
		return ""
	}
	media := ref.Value.Content.Get("application/json")
	if media == nil {
		return ""
	}
	value := media.Example
	if value == nil && len(media.Examples) > 0 {
		names := make([]string, 0, len(media.Examples))
		for name := range media.Examples {
			names = append(names, name)
		}
		sort.Strings(names)
		if ex := media.Examples[names[0]]; ex != nil && ex.Value != nil {
			value = ex.Value.Value
		}
	}
	if value == nil {
		return ""
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

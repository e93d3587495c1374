package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"zola-cms/pkg/models"
)

// ErrNoFrontMatter is returned when a document carries no recognizable
// front-matter block.
var ErrNoFrontMatter = errors.New("no front matter")

// Document is a parsed article file: the typed metadata, the raw
// front-matter map as authored, the untouched body, and the source
// format so saves can re-serialize in kind.
type Document struct {
	Meta   models.FrontMatter
	Raw    map[string]any
	Body   string
	Format string
}

// ParseDocument splits content into front-matter and body. TOML (+++),
// YAML (---) and bare JSON object blocks are accepted. The body is
// returned verbatim; nothing past the closing delimiter is interpreted.
func ParseDocument(content []byte) (*Document, error) {
	format := detectFormat(content)
	if format == "" {
		return nil, ErrNoFrontMatter
	}

	var raw map[string]any
	var body []byte
	var err error
	if format == "json" {
		raw, body, err = parseJSONDocument(content)
		if err != nil {
			return nil, err
		}
	} else {
		body, err = frontmatter.Parse(bytes.NewReader(content), &raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s front matter: %w", format, err)
		}
		if raw == nil {
			return nil, ErrNoFrontMatter
		}
	}

	raw = sanitizeFrontMatter(raw)
	return &Document{
		Meta:   metaFromRaw(raw),
		Raw:    raw,
		Body:   strings.TrimSpace(normalizeLineEndings(string(body))),
		Format: format,
	}, nil
}

// ComposeDocument is the inverse of ParseDocument: front-matter map plus
// body rendered in the requested format.
func ComposeDocument(fm map[string]any, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]any{}
	}

	var buf bytes.Buffer
	switch format {
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseJSONDocument accepts both the delimited block form, where { and
// } sit on their own lines above a body, and a bare or minified object
// spanning the whole file.
func parseJSONDocument(content []byte) (map[string]any, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(content), &raw)
	if err == nil && raw != nil {
		return raw, body, nil
	}

	raw = nil
	if jsonErr := json.Unmarshal(content, &raw); jsonErr != nil {
		return nil, nil, fmt.Errorf("parse json front matter: %w", jsonErr)
	}
	return raw, nil, nil
}

func detectFormat(content []byte) string {
	str := string(content)
	switch {
	case strings.HasPrefix(str, "+++\n") || strings.HasPrefix(str, "+++\r\n"):
		return "toml"
	case strings.HasPrefix(str, "---\n") || strings.HasPrefix(str, "---\r\n"):
		return "yaml"
	case strings.HasPrefix(strings.TrimSpace(str), "{"):
		return "json"
	}
	return ""
}

// metaFromRaw extracts the typed fields the CMS understands and leaves
// everything else in Extra.
func metaFromRaw(raw map[string]any) models.FrontMatter {
	meta := models.FrontMatter{Extra: map[string]any{}}

	for key, value := range raw {
		switch key {
		case "title":
			meta.Title = stringValue(value)
		case "description":
			meta.Description = stringValue(value)
		case "template":
			meta.Template = stringValue(value)
		case "date":
			if t, ok := coerceDate(value); ok {
				meta.Date = t
			}
		case "draft":
			if b, ok := value.(bool); ok {
				meta.Draft = b
			}
		case "tags":
			meta.Tags = stringSlice(value)
		default:
			meta.Extra[key] = value
		}
	}

	return meta
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// coerceDate accepts native TOML/YAML datetimes as well as the string
// forms authors actually write (RFC3339 or a bare day).
func coerceDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func sanitizeFrontMatter(fm map[string]any) map[string]any {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]any, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return sanitizeFrontMatter(v)
	case map[any]any:
		normalized := make(map[string]any, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []any:
		slice := make([]any, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}

package models

import "time"

// FrontMatter is the typed metadata block preceding an article body.
// Keys the CMS does not recognize are kept verbatim in Extra so a
// parse/compose round-trip never loses author data.
type FrontMatter struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Template    string         `json:"template,omitempty"`
	Date        time.Time      `json:"date,omitempty"`
	Draft       bool           `json:"draft"`
	Tags        []string       `json:"tags,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// ToMap flattens the typed fields and Extra into a single map suitable
// for serialization. Zero-valued optional fields are omitted; Draft is
// always written so the publish state is explicit in the file.
func (fm FrontMatter) ToMap() map[string]any {
	out := make(map[string]any, len(fm.Extra)+6)
	for k, v := range fm.Extra {
		out[k] = v
	}
	if fm.Title != "" {
		out["title"] = fm.Title
	}
	if fm.Description != "" {
		out["description"] = fm.Description
	}
	if fm.Template != "" {
		out["template"] = fm.Template
	}
	if !fm.Date.IsZero() {
		out["date"] = fm.Date
	}
	if len(fm.Tags) > 0 {
		out["tags"] = append([]string(nil), fm.Tags...)
	}
	out["draft"] = fm.Draft
	return out
}

// Article represents a content file in the CMS.
type Article struct {
	Path        string         `json:"path"`
	Meta        FrontMatter    `json:"meta"`
	FrontMatter map[string]any `json:"frontmatter,omitempty"`
	Body        string         `json:"body,omitempty"`
	Format      string         `json:"format,omitempty"` // toml, yaml, json
	IsDirty     bool           `json:"is_dirty"`
}

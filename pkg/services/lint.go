package services

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"zola-cms/pkg/models"
)

// LintIssue captures a single content-QA failure on one front-matter
// field.
type LintIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type LintEntry struct {
	Path   string      `json:"path"`
	Issues []LintIssue `json:"issues"`
}

// LintReport is the result of checking the whole content directory.
type LintReport struct {
	Checked int         `json:"checked"`
	Entries []LintEntry `json:"entries,omitempty"`
}

func (r *LintReport) Clean() bool {
	return r == nil || len(r.Entries) == 0
}

// LintArticle checks one article's metadata. The body is never
// inspected; prose and embedded snippets are the author's business.
func LintArticle(art *models.Article, sec *models.Section) []LintIssue {
	var issues []LintIssue

	if raw, ok := art.FrontMatter["draft"]; ok {
		if _, isBool := raw.(bool); !isBool {
			issues = append(issues, LintIssue{Field: "draft", Message: "draft must be a boolean"})
		}
	}

	issues = append(issues, lintFrontMatter(art.Meta, sec)...)
	return issues
}

func lintFrontMatter(meta models.FrontMatter, sec *models.Section) []LintIssue {
	rules := []*validation.FieldRules{
		validation.Field(&meta.Title, validation.Required.Error("title must not be empty")),
		validation.Field(&meta.Description, validation.Required.Error("description must not be empty")),
		validation.Field(&meta.Date, validation.Required.Error("date must be set and valid")),
	}

	if allowed := sec.AllowedTemplates(); len(allowed) > 0 {
		values := make([]interface{}, len(allowed))
		for i, tpl := range allowed {
			values[i] = tpl
		}
		rules = append(rules, validation.Field(&meta.Template,
			validation.In(values...).Error("template is not known to this section")))
	}

	err := validation.ValidateStruct(&meta, rules...)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []LintIssue{{Field: "frontmatter", Message: err.Error()}}
	}

	issues := make([]LintIssue, 0, len(fieldErrs))
	for field, ferr := range fieldErrs {
		issues = append(issues, LintIssue{Field: field, Message: ferr.Error()})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Field < issues[j].Field })
	return issues
}

// LintContent runs the content-QA pass over every indexed article:
// non-empty title and description, a valid date, a template the
// section knows about. Documents without a front-matter block are
// reported, not skipped.
func LintContent() (*LintReport, error) {
	index, err := GetArticlesCache()
	if err != nil {
		return nil, err
	}

	// Missing site config just disables the template allow-list.
	siteCfg, _ := LoadSiteConfig()

	report := &LintReport{Checked: len(index)}
	for _, entry := range index {
		art, err := LoadArticle(entry.Path)
		if err != nil {
			if errors.Is(err, ErrNoFrontMatter) {
				report.Entries = append(report.Entries, LintEntry{
					Path:   entry.Path,
					Issues: []LintIssue{{Field: "frontmatter", Message: "missing front matter block"}},
				})
				continue
			}
			return nil, err
		}

		if issues := LintArticle(art, siteCfg.SectionFor(entry.Path)); len(issues) > 0 {
			report.Entries = append(report.Entries, LintEntry{Path: entry.Path, Issues: issues})
		}
	}

	return report, nil
}

package models

// SiteConfig describes the content layout of the blog repository. It is
// read from a YAML file at the repo root and tells the CMS where article
// sections live and which rendering templates the site's theme exposes.
// The templates themselves belong to the static-site generator and are
// never opened by the CMS.
type SiteConfig struct {
	MediaFolder  string    `yaml:"media_folder"`
	PublicFolder string    `yaml:"public_folder"`
	Sections     []Section `yaml:"sections"`
}

// Section is a folder of articles sharing a front-matter format and a
// set of allowed templates.
type Section struct {
	Name         string   `yaml:"name"`
	Label        string   `yaml:"label"`
	Folder       string   `yaml:"folder"`
	Format       string   `yaml:"format"` // toml, yaml, json
	Template     string   `yaml:"template"`
	Templates    []string `yaml:"templates"`
	MediaFolder  string   `yaml:"media_folder"`
	PublicFolder string   `yaml:"public_folder"`
}

// SectionFor returns the section whose folder is a prefix of the given
// content-relative article path, or nil when the path belongs to no
// configured section.
func (c *SiteConfig) SectionFor(path string) *Section {
	if c == nil {
		return nil
	}
	for i := range c.Sections {
		sec := &c.Sections[i]
		if sec.Folder == "" {
			continue
		}
		if hasPathPrefix(path, sec.Folder) {
			return sec
		}
	}
	return nil
}

func (c *SiteConfig) SectionByName(name string) *Section {
	if c == nil || name == "" {
		return nil
	}
	for i := range c.Sections {
		if c.Sections[i].Name == name {
			return &c.Sections[i]
		}
	}
	return nil
}

// DefaultFormat returns the section's front-matter format, falling back
// to TOML, the generator's native format.
func (s *Section) DefaultFormat() string {
	if s == nil || s.Format == "" {
		return "toml"
	}
	return s.Format
}

// AllowedTemplates merges the default template with the explicit allow
// list. An empty result means any template name is accepted.
func (s *Section) AllowedTemplates() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Templates)+1)
	if s.Template != "" {
		out = append(out, s.Template)
	}
	for _, t := range s.Templates {
		if t != s.Template {
			out = append(out, t)
		}
	}
	return out
}

func hasPathPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	if path[:len(prefix)] != prefix {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

package template

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

// Template names registered at package init.
const (
	OralTabletTemplate = "ORAL_TABLET_TEMPLATE"
	LiquidDoseTemplate = "LIQUID_DOSE_TEMPLATE"
	TopiclickTemplate  = "TOPICLICK_TEMPLATE"
	PRNRangeTemplate   = "PRN_RANGE_TEMPLATE"
	DefaultTemplate    = "DEFAULT_TEMPLATE"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templateFiles = map[string]string{
	OralTabletTemplate: "oral_tablet.tmpl",
	LiquidDoseTemplate: "liquid_dose.tmpl",
	TopiclickTemplate:  "topiclick.tmpl",
	PRNRangeTemplate:   "prn_range.tmpl",
	DefaultTemplate:    "default.tmpl",
}

var registry map[string]*template.Template

func init() {
	registry = make(map[string]*template.Template, len(templateFiles))
	for name, file := range templateFiles {
		content, err := templatesFS.ReadFile("templates/" + file)
		if err != nil {
			panic(fmt.Sprintf("template: embedded file %q missing: %v", file, err))
		}
		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			panic(fmt.Sprintf("template: %q failed to parse: %v", name, err))
		}
		registry[name] = tmpl
	}
}

// Render executes the named template against data and returns the
// trimmed result. An unknown template name falls back to DefaultTemplate.
func Render(name string, data DataBag) (string, error) {
	tmpl, ok := registry[name]
	if !ok {
		tmpl, ok = registry[DefaultTemplate]
		if !ok {
			return "", fmt.Errorf("template: no template registered for %q and no default available", name)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template: executing %q: %w", name, err)
	}
	return trimTrailingNewline(buf.String()), nil
}

func trimTrailingNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

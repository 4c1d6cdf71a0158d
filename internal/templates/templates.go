// Package templates embeds the text templates for emitted C# sources
// and project scaffolding.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var templatesFS embed.FS

// Get returns the content of the specified template file.
func Get(name string) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", name, err)
	}
	return string(content), nil
}

// Render parses the named template with the given functions and
// executes it against data.
func Render(name string, funcs template.FuncMap, data any) (string, error) {
	content, err := Get(name)
	if err != nil {
		return "", err
	}
	t, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return sb.String(), nil
}

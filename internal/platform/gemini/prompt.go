package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// promptData represents the data passed to the prompt template
type promptData struct {
	// Target is the syllable in Turkish upper case, e.g. "Bİ".
	Target string

	// Lower is the syllable in Turkish lower case, e.g. "bi".
	Lower string

	// Letters lists the letters separately, e.g. "B, İ".
	Letters string
}

// A cases.Caser keeps state between calls, so each prompt builds its own.
func newPromptData(target string) promptData {
	upper := cases.Upper(language.Turkish).String(strings.TrimSpace(target))
	letters := make([]string, 0, 2)
	for _, r := range upper {
		letters = append(letters, string(r))
	}

	return promptData{
		Target:  upper,
		Lower:   cases.Lower(language.Turkish).String(upper),
		Letters: strings.Join(letters, ", "),
	}
}

// loadPromptTemplate parses the template at path, or the built-in template
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("verify").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, target string) (string, error) {
	if strings.TrimSpace(target) == "" {
		return "", ErrEmptyTarget
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newPromptData(target)); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

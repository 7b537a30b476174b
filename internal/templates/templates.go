package templates

import (
	"embed"
	"fmt"
	"html/template"

	"resumequiz/internal/models"
)

//go:embed pages/*.tmpl
var pagesFS embed.FS

// Load parses every page template together with the shared layout
func Load() (*template.Template, error) {
	funcMap := template.FuncMap{
		"answerField": func(skill string, index int) string {
			return models.AnswerKey{Skill: skill, Index: index}.FieldName()
		},
		"percent": func(score float64) string {
			return fmt.Sprintf("%.2f%%", score)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(pagesFS, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
)

//go:embed prompts/interpretation.tmpl
var defaultPromptTemplate string

// planetLine is one row of the energy grid in the prompt.
type planetLine struct {
	Digit    int
	Planet   string
	Sphere   string
	Count    int
	Strength numerology.Strength
}

// promptData represents the data passed to the prompt template
type promptData struct {
	BirthDate   string
	Name        string
	LifePath    int
	Destiny     int
	Soul        int
	Mind        int
	Personality int
	Power       int
	Ruling      int
	Problem     int
	NameNumber  int
	Planets     []planetLine
}

func newPromptData(report *numerology.Report) promptData {
	pn := report.PersonalNumbers
	data := promptData{
		BirthDate:   pn.BirthDate,
		Name:        pn.Name,
		LifePath:    pn.LifePath,
		Destiny:     pn.Destiny,
		Soul:        pn.Soul,
		Mind:        pn.Mind,
		Personality: pn.Personality,
		Power:       pn.Power,
		Ruling:      pn.Ruling,
		Problem:     pn.Problem,
	}
	if pn.NameNumber != nil {
		data.NameNumber = *pn.NameNumber
	}

	for d := 1; d <= 9; d++ {
		pos := report.EnhancedSquare.PlanetPositions[d]
		data.Planets = append(data.Planets, planetLine{
			Digit:    d,
			Planet:   pos.Name,
			Sphere:   pos.Sphere,
			Count:    pos.Count,
			Strength: pos.Strength,
		})
	}
	return data
}

// loadPromptTemplate parses the template at path, or the embedded default
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template: %v", generation.ErrInvalidConfig, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("interpretation").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, report *numerology.Report) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newPromptData(report)); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

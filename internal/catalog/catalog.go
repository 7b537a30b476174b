package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resumequiz/internal/models"
)

//go:embed data/catalog.json data/catalog.schema.json
var dataFS embed.FS

// Congratulations is shown for scores above the mid band
const Congratulations = "Great job! Keep up the good work."

// ChoicesPerQuestion is the fixed number of choices of every quiz item
const ChoicesPerQuestion = 4

// Band is a score range that selects a recommendation
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	default:
		return "high"
	}
}

// BandFor classifies a percentage score: below 50 is low, 50 through 70
// inclusive is mid, above 70 is high.
func BandFor(score float64) Band {
	switch {
	case score < 50:
		return BandLow
	case score <= 70:
		return BandMid
	default:
		return BandHigh
	}
}

type document struct {
	Skills          []models.SkillCatalogEntry   `json:"skills"`
	Recommendations []models.RecommendationEntry `json:"recommendations"`
}

// Catalog is the immutable set of skills, their quizzes and recommendations.
// It is safe for concurrent use; returned slices must not be modified.
type Catalog struct {
	skills          []models.SkillCatalogEntry
	keys            []string
	index           map[string]int
	recommendations map[string]models.RecommendationEntry
}

// Default loads the catalog embedded in the binary
func Default() (*Catalog, error) {
	data, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return Load(data)
}

// Load validates a catalog document against the catalog schema and the
// invariants the schema cannot express, then builds a Catalog from it.
func Load(data []byte) (*Catalog, error) {
	schema, err := dataFS.ReadFile("data/catalog.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog schema: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("catalog does not match schema: %s", strings.Join(errs, "; "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(doc.Skills, doc.Recommendations)
}

// New builds a Catalog from already decoded entries
func New(skills []models.SkillCatalogEntry, recommendations []models.RecommendationEntry) (*Catalog, error) {
	c := &Catalog{
		skills:          skills,
		keys:            make([]string, 0, len(skills)),
		index:           make(map[string]int, len(skills)),
		recommendations: make(map[string]models.RecommendationEntry, len(recommendations)),
	}

	for i, entry := range skills {
		if entry.Name == "" {
			return nil, fmt.Errorf("skill %d has no name", i)
		}
		if _, dup := c.index[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate skill %q", entry.Name)
		}
		for q, item := range entry.Questions {
			if err := checkItem(item); err != nil {
				return nil, fmt.Errorf("skill %q question %d: %w", entry.Name, q, err)
			}
		}
		c.index[entry.Name] = i
		c.keys = append(c.keys, entry.Name)
	}

	for _, rec := range recommendations {
		if _, ok := c.index[rec.Skill]; !ok {
			return nil, fmt.Errorf("recommendation for unknown skill %q", rec.Skill)
		}
		c.recommendations[rec.Skill] = rec
	}
	for _, name := range c.keys {
		if _, ok := c.recommendations[name]; !ok {
			return nil, fmt.Errorf("skill %q has no recommendation", name)
		}
	}

	return c, nil
}

func checkItem(item models.QuizItem) error {
	if len(item.Choices) != ChoicesPerQuestion {
		return fmt.Errorf("expected %d choices, got %d", ChoicesPerQuestion, len(item.Choices))
	}
	seen := 0
	for _, choice := range item.Choices {
		if choice == item.CorrectAnswer {
			seen++
		}
	}
	if seen != 1 {
		return fmt.Errorf("correct answer %q appears %d times among choices", item.CorrectAnswer, seen)
	}
	return nil
}

// Skills returns the catalog entries in display order
func (c *Catalog) Skills() []models.SkillCatalogEntry {
	return c.skills
}

// Keys returns the skill names in display order
func (c *Catalog) Keys() []string {
	return c.keys
}

// Questions returns the quiz of a skill
func (c *Catalog) Questions(skill string) ([]models.QuizItem, bool) {
	i, ok := c.index[skill]
	if !ok {
		return nil, false
	}
	return c.skills[i].Questions, true
}

// Recommendation returns the advice for a skill at the given score
func (c *Catalog) Recommendation(skill string, score float64) string {
	band := BandFor(score)
	if band == BandHigh {
		return Congratulations
	}
	rec, ok := c.recommendations[skill]
	if !ok {
		return ""
	}
	if band == BandLow {
		return rec.LowBand
	}
	return rec.MidBand
}

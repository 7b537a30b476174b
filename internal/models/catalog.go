package models

// QuizItem is one multiple-choice question. CorrectAnswer occurs exactly
// once in Choices.
type QuizItem struct {
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correct_answer"`
	Choices       []string `json:"choices"`
}

// SkillCatalogEntry is a skill keyword with its ordered quiz
type SkillCatalogEntry struct {
	Name      string     `json:"name"`
	Questions []QuizItem `json:"questions"`
}

// RecommendationEntry holds the study advice for a skill's score bands
type RecommendationEntry struct {
	Skill   string `json:"skill"`
	LowBand string `json:"low_band"`
	MidBand string `json:"mid_band"`
}

// IndexedQuizItem pairs a QuizItem with its position in the skill's quiz.
// Index is the value rendered into the answer field name.
type IndexedQuizItem struct {
	Index int
	Item  QuizItem
}

// SkillQuiz is the quiz delivered for one matched skill
type SkillQuiz struct {
	Skill string
	Items []IndexedQuizItem
}

// SkillResult is a scored skill with the resolved recommendation text
type SkillResult struct {
	Skill          string
	Score          float64
	Recommendation string
}

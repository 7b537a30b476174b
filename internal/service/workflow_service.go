package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"resumequiz/internal/catalog"
	"resumequiz/internal/logger"
	"resumequiz/internal/matcher"
	"resumequiz/internal/metrics"
	"resumequiz/internal/models"
	"resumequiz/internal/storage"
)

// TextExtractor turns a stored file into plain text
type TextExtractor interface {
	Supports(ext string) bool
	Extract(path, ext string) (string, error)
}

// FileStore persists uploaded files
type FileStore interface {
	Save(ctx context.Context, filename string, body io.Reader) (string, error)
}

// WorkflowService drives upload, quiz, submission and scoring for a session
type WorkflowService struct {
	catalog   *catalog.Catalog
	extractor TextExtractor
	files     FileStore
	archiver  storage.Archiver
	sessions  *SessionManager
	log       logger.Logger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(cat *catalog.Catalog, extractor TextExtractor, files FileStore, archiver storage.Archiver, sessions *SessionManager, log logger.Logger) *WorkflowService {
	if archiver == nil {
		archiver = storage.NopArchiver{}
	}
	return &WorkflowService{
		catalog:   cat,
		extractor: extractor,
		files:     files,
		archiver:  archiver,
		sessions:  sessions,
		log:       log,
	}
}

func (s *WorkflowService) authenticated(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return state, nil
}

func (s *WorkflowService) withSkills(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasSkills() {
		return nil, ErrNoSessionSkills
	}
	return state, nil
}

// Upload stores a résumé, extracts its text and records the matched skills.
// The extension is checked before anything is written. When no skill
// matches, the session is left as it was.
func (s *WorkflowService) Upload(ctx context.Context, sessionID, filename string, body io.Reader) ([]string, error) {
	state, err := s.authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(filename)
	if !s.extractor.Supports(ext) {
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	path, err := s.files.Save(ctx, filename, body)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeStoreFailed).Inc()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if err := s.archiver.Archive(ctx, path); err != nil {
		s.log.Warn("failed to archive upload", map[string]interface{}{"path": path, "error": err})
	}

	text, err := s.extractor.Extract(path, ext)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeUnreadable).Inc()
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailure, err)
	}

	found := matcher.Match(text, s.catalog.Keys())
	if len(found) == 0 {
		metrics.UploadsTotal.WithLabelValues(metrics.OutcomeNoSkills).Inc()
		return nil, ErrNoSkillsMatched
	}

	state.MatchedSkills = found
	state.SkillScores = nil
	if err := s.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues(metrics.OutcomeMatched).Inc()
	for _, skill := range found {
		metrics.SkillsMatched.WithLabelValues(skill).Inc()
	}
	s.log.Info("resume analysed", map[string]interface{}{
		"user_id": *state.UserID,
		"file":    filepath.Base(path),
		"skills":  found,
	})
	return found, nil
}

// Quiz returns the indexed questions of every matched skill in catalog order
func (s *WorkflowService) Quiz(ctx context.Context, sessionID string) ([]models.SkillQuiz, error) {
	state, err := s.withSkills(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quizzes := make([]models.SkillQuiz, 0, len(state.MatchedSkills))
	for _, skill := range state.MatchedSkills {
		items, _ := s.catalog.Questions(skill)
		quiz := models.SkillQuiz{Skill: skill, Items: make([]models.IndexedQuizItem, len(items))}
		for i, item := range items {
			quiz.Items[i] = models.IndexedQuizItem{Index: i, Item: item}
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

// Submit scores the answers for every matched skill and stores the scores.
// Unanswered items count as wrong.
func (s *WorkflowService) Submit(ctx context.Context, sessionID string, answers models.Answers) (map[string]float64, error) {
	state, err := s.withSkills(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(state.MatchedSkills))
	for _, skill := range state.MatchedSkills {
		items, _ := s.catalog.Questions(skill)
		scores[skill] = ScoreSkill(skill, items, answers)
		metrics.SkillScore.WithLabelValues(skill).Observe(scores[skill])
	}

	state.SkillScores = scores
	if err := s.sessions.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	metrics.QuizSubmissions.Inc()
	s.log.Info("quiz submitted", map[string]interface{}{"user_id": *state.UserID, "scores": scores})
	return scores, nil
}

// ScoreSkill returns the percentage of items of skill answered correctly. A
// skill without items scores 0.
func ScoreSkill(skill string, items []models.QuizItem, answers models.Answers) float64 {
	if len(items) == 0 {
		return 0
	}
	correct := 0
	for i, item := range items {
		if answer, ok := answers[models.AnswerKey{Skill: skill, Index: i}]; ok && answer == item.CorrectAnswer {
			correct++
		}
	}
	return float64(correct) / float64(len(items)) * 100
}

// Scores returns each scored skill with its recommendation, in the order
// the skills were matched
func (s *WorkflowService) Scores(ctx context.Context, sessionID string) ([]models.SkillResult, error) {
	state, err := s.withSkills(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.HasScores() {
		return nil, ErrNoSessionScores
	}

	results := make([]models.SkillResult, 0, len(state.SkillScores))
	for _, skill := range state.MatchedSkills {
		score, ok := state.SkillScores[skill]
		if !ok {
			continue
		}
		results = append(results, models.SkillResult{
			Skill:          skill,
			Score:          score,
			Recommendation: s.catalog.Recommendation(skill, score),
		})
	}
	return results, nil
}

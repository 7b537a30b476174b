package models

// SessionState is the per-session workflow state.
//
// MatchedSkills is nil until an upload matched at least one skill; an empty
// match is never stored. SkillScores is nil until a quiz was submitted and
// its keys are always a subset of MatchedSkills.
type SessionState struct {
	UserID        *int64             `json:"user_id,omitempty"`
	MatchedSkills []string           `json:"matched_skills"`
	SkillScores   map[string]float64 `json:"skill_scores"`
	Flash         string             `json:"flash,omitempty"`
}

// IsAuthenticated reports whether a user is logged in
func (s *SessionState) IsAuthenticated() bool {
	return s != nil && s.UserID != nil
}

// HasSkills reports whether an upload matched skills in this session
func (s *SessionState) HasSkills() bool {
	return s.IsAuthenticated() && len(s.MatchedSkills) > 0
}

// HasScores reports whether the quiz was submitted in this session
func (s *SessionState) HasScores() bool {
	return s.HasSkills() && s.SkillScores != nil
}

// PopFlash returns the pending flash message and clears it
func (s *SessionState) PopFlash() string {
	msg := s.Flash
	s.Flash = ""
	return msg
}

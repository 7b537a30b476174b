package service

import "errors"

var (
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtractionFailure   = errors.New("failed to extract resume text")
	ErrNoSkillsMatched     = errors.New("no skills matched")
	ErrNoSessionSkills     = errors.New("no matched skills in session")
	ErrNoSessionScores     = errors.New("no quiz scores in session")
)

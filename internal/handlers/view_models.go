package handlers

import "resumequiz/internal/models"

// Page carries what the shared layout needs
type Page struct {
	Title    string
	Flash    string
	Error    string
	LoggedIn bool
}

type RegisterViewData struct {
	Page     Page
	Username string
}

type LoginViewData struct {
	Page     Page
	Username string
}

type UploadViewData struct {
	Page Page
}

type QuizViewData struct {
	Page    Page
	Quizzes []models.SkillQuiz
}

type ScoresViewData struct {
	Page    Page
	Results []models.SkillResult
}

package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"resumequiz/internal/logger"
	"resumequiz/internal/models"
	"resumequiz/internal/service"
)

// WorkflowHandler serves the upload, quiz and scores pages
type WorkflowHandler struct {
	base
	workflow      *service.WorkflowService
	maxUploadSize int64
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(workflow *service.WorkflowService, sessions *service.SessionManager, templates *template.Template, cookieName string, maxUploadSize int64, log logger.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		base: base{
			sessions:   sessions,
			templates:  templates,
			cookieName: cookieName,
			log:        log,
		},
		workflow:      workflow,
		maxUploadSize: maxUploadSize,
	}
}

// handleWorkflowError redirects for the expected workflow errors and reports
// whether err was one of them
func (h *WorkflowHandler) handleWorkflowError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		http.Redirect(w, r, pathLogin, http.StatusSeeOther)
	case errors.Is(err, service.ErrNoSessionSkills):
		http.Redirect(w, r, pathUpload, http.StatusSeeOther)
	case errors.Is(err, service.ErrNoSessionScores):
		http.Redirect(w, r, pathQuiz, http.StatusSeeOther)
	case errors.Is(err, service.ErrUnsupportedFileType):
		h.flashRedirect(w, r, FlashInvalidFileType, pathUpload)
	case errors.Is(err, service.ErrExtractionFailure):
		h.log.Info("unreadable upload", map[string]interface{}{"error": err})
		h.flashRedirect(w, r, FlashUnreadableFile, pathUpload)
	case errors.Is(err, service.ErrNoSkillsMatched):
		h.flashRedirect(w, r, FlashNoSkills, pathUpload)
	default:
		return false
	}
	return true
}

func (h *WorkflowHandler) requireLogin(w http.ResponseWriter, r *http.Request) bool {
	state, err := h.sessions.Load(r.Context(), h.sessionID(r))
	if err != nil {
		respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to load session", err)
		return false
	}
	if !state.IsAuthenticated() {
		http.Redirect(w, r, pathLogin, http.StatusSeeOther)
		return false
	}
	return true
}

// ShowUpload renders the résumé upload form
func (h *WorkflowHandler) ShowUpload(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}
	data := &UploadViewData{Page: Page{Title: "Upload your résumé"}}
	h.render(w, r, "upload.tmpl", &data.Page, data)
}

// Upload accepts the multipart "resume" file and moves on to the quiz
func (h *WorkflowHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.requireLogin(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.flashRedirect(w, r, FlashFileTooLarge, pathUpload)
			return
		}
		respondWithError(h.log, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(resumeField)
	if err != nil || header.Filename == "" {
		if file != nil {
			file.Close()
		}
		// nothing selected: show the form again
		data := &UploadViewData{Page: Page{Title: "Upload your résumé"}}
		h.render(w, r, "upload.tmpl", &data.Page, data)
		return
	}
	defer file.Close()

	if _, err := h.workflow.Upload(r.Context(), h.sessionID(r), header.Filename, file); err != nil {
		if !h.handleWorkflowError(w, r, err) {
			respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "upload failed", err)
		}
		return
	}
	http.Redirect(w, r, pathQuiz, http.StatusSeeOther)
}

// ShowQuiz renders the questions of every matched skill
func (h *WorkflowHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.workflow.Quiz(r.Context(), h.sessionID(r))
	if err != nil {
		if !h.handleWorkflowError(w, r, err) {
			respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to load quiz", err)
		}
		return
	}

	data := &QuizViewData{Page: Page{Title: "Skill quiz"}, Quizzes: quizzes}
	h.render(w, r, "mcq.tmpl", &data.Page, data)
}

// SubmitQuiz scores the submitted answers
func (h *WorkflowHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(h.log, w, http.StatusBadRequest, ErrInvalidFormData, "", nil)
		return
	}

	if _, err := h.workflow.Submit(r.Context(), h.sessionID(r), parseAnswers(r.PostForm)); err != nil {
		if !h.handleWorkflowError(w, r, err) {
			respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to score quiz", err)
		}
		return
	}
	http.Redirect(w, r, pathScores, http.StatusSeeOther)
}

// ShowScores renders each skill's score and recommendation
func (h *WorkflowHandler) ShowScores(w http.ResponseWriter, r *http.Request) {
	results, err := h.workflow.Scores(r.Context(), h.sessionID(r))
	if err != nil {
		if !h.handleWorkflowError(w, r, err) {
			respondWithError(h.log, w, http.StatusInternalServerError, ErrInternalServerError, "failed to load scores", err)
		}
		return
	}

	data := &ScoresViewData{Page: Page{Title: "Your scores"}, Results: results}
	h.render(w, r, "scores.tmpl", &data.Page, data)
}

// parseAnswers keeps the user_answers_<skill>_<index> fields of a form
func parseAnswers(form url.Values) models.Answers {
	answers := make(models.Answers)
	for name, values := range form {
		if len(values) == 0 {
			continue
		}
		key, ok := models.ParseAnswerField(name)
		if !ok {
			continue
		}
		answers[key] = values[0]
	}
	return answers
}

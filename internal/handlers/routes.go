package handlers

import "net/http"

// NewRouter registers every route of the application
func NewRouter(auth *AuthHandler, workflow *WorkflowHandler, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", auth.Home)
	mux.HandleFunc("GET /register", auth.ShowRegister)
	mux.HandleFunc("POST /register", auth.Register)
	mux.HandleFunc("GET /login", auth.ShowLogin)
	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /logout", auth.Logout)

	mux.HandleFunc("GET /upload", workflow.ShowUpload)
	mux.HandleFunc("POST /upload", workflow.Upload)
	mux.HandleFunc("GET /mcq", workflow.ShowQuiz)
	mux.HandleFunc("POST /mcq", workflow.SubmitQuiz)
	mux.HandleFunc("GET /scores", workflow.ShowScores)

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	return mux
}

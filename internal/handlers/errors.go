package handlers

import (
	"net/http"

	"resumequiz/internal/logger"
)

func respondWithError(log logger.Logger, w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Error(logMsg, map[string]interface{}{"error": err, "status": status})
	}

	http.Error(w, userMsg, status)
}

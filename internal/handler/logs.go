package handler

import (
	"net/http"

	"github.com/skhartaye/SMOKI/internal/logger"
)

// ShowLogsHandler handles GET /logs by returning the server log contents.
func ShowLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := logger.ReadLogs("server.log")
		if err != nil {
			http.Error(w, "Error reading logs", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write(data)
	}
}

// ClearLogsHandler handles POST /logs/clear by truncating the server log.
func ClearLogsHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.CleanLogs("server.log")
		w.WriteHeader(http.StatusNoContent)
	}
}

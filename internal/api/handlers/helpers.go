package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/autonex/aiops/internal/pkg/errors"
	"github.com/autonex/aiops/internal/pkg/utils"
)

// writeServiceError maps a service error onto the HTTP response, preserving
// AppError status codes
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal(fallback, err))
}

// minutesParam reads a "minutes" query parameter and returns the cutoff time
func minutesParam(r *http.Request, defaultMinutes int) time.Time {
	minutes, _ := strconv.Atoi(r.URL.Query().Get("minutes"))
	if minutes <= 0 {
		minutes = defaultMinutes
	}
	return time.Now().UTC().Add(-time.Duration(minutes) * time.Minute)
}

// limitParam reads a "limit" query parameter
func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

package handler

import (
	"net/http"
	"time"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	env string
	now func() time.Time
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env, now: time.Now}
}

// Test godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} HealthEnvelope
// @Router   /api/v1/test [get]
func (h *HealthHandler) Test(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthEnvelope{
		Status:      statusSuccess,
		Message:     "Server is running correctly",
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.env,
	})
}

// NotFound answers any unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Can't find "+r.URL.RequestURI()+" on this server!")
}

package server

import (
	"net/http"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/shelf"
)

type activityHandler struct {
	svc     *activity.Service
	shelves []shelf.Shelf
}

// Shelves handles GET /v1/shelves
func (h *activityHandler) Shelves(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"shelves": h.shelves}
	if err := h.svc.ConfigErr(); err != nil {
		resp["configError"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// Zodiac handles GET /v1/zodiac
func (h *activityHandler) Zodiac(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"signs": h.svc.Signs()})
}

type horoscopeRequest struct {
	Sign string `json:"sign"`
}

// Horoscope handles POST /v1/activities/horoscope
func (h *activityHandler) Horoscope(w http.ResponseWriter, r *http.Request) {
	var req horoscopeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respond(w, func() (any, error) { return h.svc.Horoscope(r.Context(), req.Sign) })
}

// LuckyColor handles POST /v1/activities/lucky-color
func (h *activityHandler) LuckyColor(w http.ResponseWriter, r *http.Request) {
	respond(w, func() (any, error) { return h.svc.LuckyColor(r.Context()) })
}

// Joke handles POST /v1/activities/joke
func (h *activityHandler) Joke(w http.ResponseWriter, r *http.Request) {
	respond(w, func() (any, error) { return h.svc.Joke(r.Context()) })
}

// Compliment handles POST /v1/activities/compliment
func (h *activityHandler) Compliment(w http.ResponseWriter, r *http.Request) {
	respond(w, func() (any, error) { return h.svc.Compliment(r.Context()) })
}

// PsychTest handles POST /v1/activities/psych-test
func (h *activityHandler) PsychTest(w http.ResponseWriter, r *http.Request) {
	respond(w, func() (any, error) { return h.svc.PsychTest(r.Context()) })
}

type decisionRequest struct {
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
}

// Decision handles POST /v1/activities/decision
func (h *activityHandler) Decision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respond(w, func() (any, error) { return h.svc.Decide(r.Context(), req.OptionA, req.OptionB) })
}

func respond(w http.ResponseWriter, fn func() (any, error)) {
	v, err := fn()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

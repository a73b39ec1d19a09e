package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/story"
)

type storyHandler struct {
	c *Container
}

type createStoryRequest struct {
	Theme  string `json:"theme"`
	CardID string `json:"cardId"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type answerRequest struct {
	Choice *int `json:"choice"`
}

func (h *storyHandler) newFlow(lockedTheme string) *story.Flow {
	opts := []story.FlowOption{
		story.WithQuestionCount(h.c.QuestionCount),
		story.WithFallback(h.c.Fallback),
	}
	if lockedTheme != "" {
		opts = append(opts, story.WithLockedTheme(lockedTheme))
	}
	return story.NewFlow(h.c.Generator, opts...)
}

// Create handles POST /v1/stories
func (h *storyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var locked string
	if req.CardID != "" {
		card, err := shelf.Find(h.c.Shelves, req.CardID)
		if err != nil || card.Kind != shelf.KindStory {
			writeError(w, http.StatusBadRequest, "cardId is not a story card")
			return
		}
		locked = card.Theme
	}

	f := h.newFlow(locked)
	e := h.c.Registry.add(f)
	e.mu.Lock()
	defer e.mu.Unlock()

	if f.State().Phase == story.PhaseSelectingTheme {
		call, err := f.Start(req.Theme)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		e.publish()
		f.Resolve(context.WithoutCancel(r.Context()), call)
	}
	writeJSON(w, http.StatusCreated, e.publish())
}

// Get handles GET /v1/stories/{id}. It reads the last published snapshot,
// so it answers while a generation is still running.
func (h *storyHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	writeJSON(w, http.StatusOK, e.snapshot())
}

// Delete handles DELETE /v1/stories/{id}
func (h *storyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil || !h.c.Registry.remove(id) {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Theme handles POST /v1/stories/{id}/theme
func (h *storyHandler) Theme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	h.withFlow(w, r, &req, func(f *story.Flow) (story.Call, error) { return f.Start(req.Theme) })
}

// Answer handles POST /v1/stories/{id}/answers
func (h *storyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	h.withFlow(w, r, &req, func(f *story.Flow) (story.Call, error) {
		if req.Choice == nil {
			return nil, story.ErrInvalidChoice
		}
		return f.Answer(*req.Choice)
	})
}

// Reset handles POST /v1/stories/{id}/reset
func (h *storyHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, nil, func(f *story.Flow) (story.Call, error) { return f.Reset() })
}

func (h *storyHandler) lookup(r *http.Request) (*entry, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return nil, false
	}
	return h.c.Registry.get(id)
}

// withFlow looks up the flow, decodes body into req, runs op and any
// generator call it returns, then writes the snapshot. A flow already held
// by another request answers 409.
//
// The generator call is detached from the request context: a client that
// goes away mid-call does not cut the generation short.
func (h *storyHandler) withFlow(w http.ResponseWriter, r *http.Request, req any, op func(*story.Flow) (story.Call, error)) {
	e, ok := h.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	if req != nil {
		if err := decodeBody(r, req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if !e.mu.TryLock() {
		writeDomainError(w, story.ErrBusy)
		return
	}
	defer e.mu.Unlock()

	call, err := op(e.flow)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if call != nil {
		e.publish()
		e.flow.Resolve(context.WithoutCancel(r.Context()), call)
	}
	writeJSON(w, http.StatusOK, e.publish())
}

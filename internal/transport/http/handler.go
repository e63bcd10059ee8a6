package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"skilltrack-service/internal/app"
	"skilltrack-service/internal/domain"
)

// Handler exposes the learning-platform API over JSON/HTTP.
type Handler struct {
	catalog   app.CatalogRepository
	tracker   *app.ProgressTracker
	grader    *app.QuizGrader
	analytics *app.Analytics
	users     UserResolver
	urls      URLResolver
	log       *zap.SugaredLogger
}

func NewHandler(catalog app.CatalogRepository, tracker *app.ProgressTracker, grader *app.QuizGrader, analytics *app.Analytics, users UserResolver, urls URLResolver, log *zap.SugaredLogger) *Handler {
	return &Handler{
		catalog:   catalog,
		tracker:   tracker,
		grader:    grader,
		analytics: analytics,
		users:     users,
		urls:      urls,
		log:       log,
	}
}

// Register wires all REST routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/courses", h.listCourses)
	mux.HandleFunc("GET /api/courses/{id}", h.getCourse)
	mux.HandleFunc("GET /api/videos", h.listVideos)
	mux.HandleFunc("GET /api/videos/{id}", h.getVideo)
	mux.HandleFunc("POST /api/videos/{id}/progress", h.updateProgress)
	mux.HandleFunc("GET /api/videos/{id}/progress", h.getProgress)
	mux.HandleFunc("GET /api/quizzes/{videoID}", h.getQuiz)
	mux.HandleFunc("POST /api/quizzes/submit", h.submitQuiz)
	mux.HandleFunc("GET /api/analytics/mastery", h.masteryScores)
	mux.HandleFunc("GET /api/analytics/progress", h.overallProgress)
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	course, err := h.catalog.GetCourse(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, course)
}

func (h *Handler) listVideos(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	videos, err := h.catalog.ListVideos(r.Context(), r.URL.Query().Get("course_id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	for i := range videos {
		videos[i].URL = h.urls.Resolve(videos[i].URL)
	}
	h.writeJSON(w, http.StatusOK, videos)
}

func (h *Handler) getVideo(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	video, err := h.catalog.GetVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	video.URL = h.urls.Resolve(video.URL)
	h.writeJSON(w, http.StatusOK, video)
}

type progressRequest struct {
	WatchPercentage float64 `json:"watch_percentage"`
	Completed       bool    `json:"completed"`
}

func (h *Handler) updateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "invalid progress payload")
		return
	}
	if req.WatchPercentage < 0 || req.WatchPercentage > 100 {
		h.writeErrorMessage(w, http.StatusBadRequest, "watch_percentage out of range")
		return
	}
	if err := h.tracker.Record(r.Context(), userID, r.PathValue("id"), req.WatchPercentage, req.Completed); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	progress, err := h.tracker.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, progress)
}

// quizView strips correct-answer indices from the payload served to clients.
type quizView struct {
	ID        string         `json:"id"`
	VideoID   string         `json:"video_id"`
	Questions []questionView `json:"questions"`
}

type questionView struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authenticate(w, r); !ok {
		return
	}
	quiz, err := h.catalog.GetQuizByVideo(r.Context(), r.PathValue("videoID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	view := quizView{ID: quiz.ID, VideoID: quiz.VideoID, Questions: make([]questionView, 0, len(quiz.Questions))}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, questionView{Prompt: q.Prompt, Options: q.Options})
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "invalid submission payload")
		return
	}
	if sub.QuizID == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "quiz_id is required")
		return
	}
	result, err := h.grader.Submit(r.Context(), userID, sub)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) masteryScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	scores, err := h.analytics.MasteryScores(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, scores)
}

func (h *Handler) overallProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	summary, err := h.analytics.Overview(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := h.users.Resolve(r)
	if err != nil {
		h.writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorw("write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if domain.IsNotFound(err) {
		h.writeErrorMessage(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, ErrUnauthenticated) {
		h.writeErrorMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.log.Errorw("request failed", "error", err)
	h.writeErrorMessage(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}

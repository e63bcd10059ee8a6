package domain

import "time"

// Course groups an ordered set of videos under one curriculum entry.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	VideoCount  int      `json:"video_count"`
}

// Video is a single catalog item; Topics drives mastery fan-out.
type Video struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"course_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Duration    int      `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
	Transcript  string   `json:"transcript,omitempty"`
	Order       int      `json:"order"`
}

// Question models an MCQ question; CorrectAnswer is a zero-based index into Options.
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Quiz is the immutable quiz definition attached to one video.
type Quiz struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"video_id"`
	Questions []Question `json:"questions"`
}

// Submission carries a learner's selected option indices, aligned positionally
// with the quiz's question order. Short or out-of-range answers count as wrong.
type Submission struct {
	QuizID  string `json:"quiz_id"`
	Answers []int  `json:"answers"`
}

// QuizResult is the append-only record of one graded submission.
type QuizResult struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QuizID      string    `json:"quiz_id"`
	VideoID     string    `json:"video_id"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"timestamp"`
}

// VideoProgress is the per-(user,video) watch state; at most one live row per pair.
type VideoProgress struct {
	UserID          string    `json:"user_id"`
	VideoID         string    `json:"video_id"`
	WatchPercentage float64   `json:"watch_percentage"`
	Completed       bool      `json:"completed"`
	UpdatedAt       time.Time `json:"timestamp"`
}

// MasteryScore is the per-(user,topic) proficiency estimate maintained by the
// exponential-moving-average engine.
type MasteryScore struct {
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	Score     float64   `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressSummary is the read-side aggregate over progress and quiz results.
type ProgressSummary struct {
	TotalVideos          int     `json:"total_videos"`
	CompletedVideos      int     `json:"completed_videos"`
	CompletionPercentage float64 `json:"completion_percentage"`
	AverageQuizScore     float64 `json:"average_quiz_score"`
	TotalQuizzes         int     `json:"total_quizzes"`
}

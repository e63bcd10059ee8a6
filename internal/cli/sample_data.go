package cli

import (
	"fmt"

	"skilltrack-service/internal/domain"
)

// Sample catalog with stable ids; used by the seed command and as the
// built-in catalog when no Postgres is configured.

func sampleCourses() []domain.Course {
	return []domain.Course{
		{
			ID:          "course-1",
			Title:       "Python Programming Fundamentals",
			Description: "Master the basics of Python programming",
			Difficulty:  "Easy",
			Topics:      []string{"Python", "Programming", "Variables", "Functions"},
			VideoCount:  4,
		},
		{
			ID:          "course-2",
			Title:       "Data Science with Python",
			Description: "Learn data analysis and visualization",
			Difficulty:  "Medium",
			Topics:      []string{"Data Science", "Python", "Pandas", "Visualization"},
			VideoCount:  4,
		},
		{
			ID:          "course-3",
			Title:       "Machine Learning Advanced",
			Description: "Deep dive into ML algorithms",
			Difficulty:  "Hard",
			Topics:      []string{"Machine Learning", "Algorithms", "Neural Networks"},
			VideoCount:  3,
		},
	}
}

func sampleVideos() []domain.Video {
	return []domain.Video{
		{
			ID: "vid-python-1", CourseID: "course-1", Order: 1,
			Title:       "Introduction to Python",
			Description: "Learn Python basics and syntax",
			URL:         "gs://skilltrack-media/python/01-introduction.mp4",
			Duration:    600, Difficulty: "Easy",
			Topics: []string{"Python", "Programming"},
		},
		{
			ID: "vid-python-2", CourseID: "course-1", Order: 2,
			Title:       "Variables and Data Types",
			Description: "Understanding Python variables",
			URL:         "gs://skilltrack-media/python/02-variables.mp4",
			Duration:    480, Difficulty: "Easy",
			Topics: []string{"Python", "Variables"},
		},
		{
			ID: "vid-python-3", CourseID: "course-1", Order: 3,
			Title:       "Functions and Methods",
			Description: "Creating reusable code with functions",
			URL:         "gs://skilltrack-media/python/03-functions.mp4",
			Duration:    720, Difficulty: "Easy",
			Topics: []string{"Python", "Functions"},
		},
		{
			ID: "vid-python-4", CourseID: "course-1", Order: 4,
			Title:       "Control Flow and Loops",
			Description: "Master if statements and loops",
			URL:         "gs://skilltrack-media/python/04-control-flow.mp4",
			Duration:    540, Difficulty: "Easy",
			Topics: []string{"Python", "Programming"},
		},
		{
			ID: "vid-ds-1", CourseID: "course-2", Order: 1,
			Title:       "Introduction to Data Science",
			Description: "Overview of data science concepts",
			URL:         "gs://skilltrack-media/datascience/01-introduction.mp4",
			Duration:    660, Difficulty: "Medium",
			Topics: []string{"Data Science", "Python"},
		},
		{
			ID: "vid-ds-2", CourseID: "course-2", Order: 2,
			Title:       "Pandas for Data Manipulation",
			Description: "Working with DataFrames",
			URL:         "gs://skilltrack-media/datascience/02-pandas.mp4",
			Duration:    900, Difficulty: "Medium",
			Topics: []string{"Pandas", "Python", "Data Science"},
		},
		{
			ID: "vid-ds-3", CourseID: "course-2", Order: 3,
			Title:       "Data Visualization with Matplotlib",
			Description: "Creating plots and charts",
			URL:         "gs://skilltrack-media/datascience/03-visualization.mp4",
			Duration:    780, Difficulty: "Medium",
			Topics: []string{"Visualization", "Python"},
		},
		{
			ID: "vid-ds-4", CourseID: "course-2", Order: 4,
			Title:       "Exploratory Data Analysis",
			Description: "Analyzing datasets",
			URL:         "gs://skilltrack-media/datascience/04-eda.mp4",
			Duration:    840, Difficulty: "Medium",
			Topics: []string{"Data Science", "Analysis"},
		},
		{
			ID: "vid-ml-1", CourseID: "course-3", Order: 1,
			Title:       "Supervised Learning",
			Description: "Regression and Classification",
			URL:         "gs://skilltrack-media/ml/01-supervised.mp4",
			Duration:    960, Difficulty: "Hard",
			Topics: []string{"Machine Learning", "Algorithms"},
		},
		{
			ID: "vid-ml-2", CourseID: "course-3", Order: 2,
			Title:       "Neural Networks Basics",
			Description: "Understanding Perceptrons",
			URL:         "gs://skilltrack-media/ml/02-neural-networks.mp4",
			Duration:    1020, Difficulty: "Hard",
			Topics: []string{"Neural Networks", "Deep Learning"},
		},
		{
			ID: "vid-ml-3", CourseID: "course-3", Order: 3,
			Title:       "Model Evaluation",
			Description: "Metrics and Validation",
			URL:         "gs://skilltrack-media/ml/03-evaluation.mp4",
			Duration:    600, Difficulty: "Hard",
			Topics: []string{"Machine Learning", "Analysis"},
		},
	}
}

// sampleQuizzes derives one four-question quiz per sample video.
func sampleQuizzes() []domain.Quiz {
	videos := sampleVideos()
	quizzes := make([]domain.Quiz, 0, len(videos))
	for _, video := range videos {
		quizzes = append(quizzes, domain.Quiz{
			ID:      "quiz-" + video.ID,
			VideoID: video.ID,
			Questions: []domain.Question{
				{
					Prompt:        fmt.Sprintf("What is the main topic of %s?", video.Title),
					Options:       []string{video.Topics[0], "Cooking", "History", "Music"},
					CorrectAnswer: 0,
				},
				{
					Prompt: "Which of the following is true regarding the content?",
					Options: []string{
						"It is unrelated to the course",
						"It covers advanced topics only",
						fmt.Sprintf("It discusses %s", video.Description),
						"None of the above",
					},
					CorrectAnswer: 2,
				},
				{
					Prompt:        "What is the difficulty level of this video?",
					Options:       []string{"Impossible", video.Difficulty, "Very Easy", "Expert"},
					CorrectAnswer: 1,
				},
				{
					Prompt:        "Which concept is covered by this lesson?",
					Options:       []string{"Quantum Physics", "Blockchain", video.Topics[0], "Augmented Reality"},
					CorrectAnswer: 2,
				},
			},
		})
	}
	return quizzes
}

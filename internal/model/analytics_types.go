package model

import "time"

// StudentSnapshot is the computed analytics result for one student at one
// point in time. Snapshots are memoized; see service.SnapshotCache.
type StudentSnapshot struct {
	StudentID   uint           `json:"student_id"`
	KPIs        SnapshotKPIs   `json:"kpis"`
	Charts      SnapshotCharts `json:"charts"`
	GeneratedAt time.Time      `json:"generated_at"`
}

type SnapshotKPIs struct {
	TotalQuizAttempts      int     `json:"total_quiz_attempts"`
	TotalSubmissions       int     `json:"total_submissions"`
	TotalReflections       int     `json:"total_reflections"`
	AverageQuizScore       float64 `json:"average_quiz_score"`
	AverageAssignmentGrade float64 `json:"average_assignment_grade"`
	EngagementScore        float64 `json:"engagement_score"`
	CompletionRate         float64 `json:"completion_rate"`
}

type SnapshotCharts struct {
	QuizScoresOverTime       []ScorePoint      `json:"quiz_scores_over_time"`
	AssignmentGradesOverTime []GradePoint      `json:"assignment_grades_over_time"`
	GradeDistribution        GradeDistribution `json:"grade_distribution"`
}

type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

type GradePoint struct {
	Date  time.Time `json:"date"`
	Grade float64   `json:"grade"`
}

// GradeDistribution is a histogram over graded submissions, buckets A..F in
// index order 0..4.
type GradeDistribution [5]int

// GradeBucket maps a grade on [0,100] to its bucket index. Boundaries
// belong to the higher bucket: 90 is an A, 89.99 a B.
func GradeBucket(grade float64) int {
	switch {
	case grade >= 90:
		return 0
	case grade >= 80:
		return 1
	case grade >= 70:
		return 2
	case grade >= 60:
		return 3
	default:
		return 4
	}
}

// ActivityItem is one row of a student's merged recent-activity feed.
type ActivityItem struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"` // "submission" or "quiz"
}

type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"total_pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// GradeReport bundles every graded item for one student.
type GradeReport struct {
	AssignmentGrades []Submission    `json:"assignment_grades"`
	QuizGrades       []QuizAttempt   `json:"quiz_grades"`
	Statistics       GradeStatistics `json:"statistics"`
}

type GradeStatistics struct {
	AverageAssignmentGrade float64 `json:"average_assignment_grade"`
	AverageQuizScore       float64 `json:"average_quiz_score"`
	TotalAssignments       int     `json:"total_assignments"`
	TotalQuizzes           int     `json:"total_quizzes"`
	HighestAssignmentGrade float64 `json:"highest_assignment_grade"`
	LowestAssignmentGrade  float64 `json:"lowest_assignment_grade"`
}

// CalendarEvent is a deadline surfaced on the portal calendar.
type CalendarEvent struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"` // "assignment" or "quiz"
	DaysUntil int       `json:"days_until,omitempty"`
}

package service

import (
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// DashboardService serves the portal's dashboard views. The global and
// teacher views are curated sample datasets, kept verbatim from the portal's
// reporting mockups; the per-student dashboard is composed from live data.
type DashboardService struct {
	UserRepo       *repository.UserRepository
	SubmissionRepo *repository.SubmissionRepository
	AttemptRepo    *repository.QuizAttemptRepository
	Analytics      *AnalyticsService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	submissionRepo *repository.SubmissionRepository,
	attemptRepo *repository.QuizAttemptRepository,
	analytics *AnalyticsService,
) *DashboardService {
	return &DashboardService{
		UserRepo:       userRepo,
		SubmissionRepo: submissionRepo,
		AttemptRepo:    attemptRepo,
		Analytics:      analytics,
	}
}

// GlobalAnalytics is the course-wide reporting view.
func (s *DashboardService) GlobalAnalytics(timeframe string) map[string]interface{} {
	if timeframe == "" {
		timeframe = "30d"
	}
	return map[string]interface{}{
		"timeframe": timeframe,
		"overview": map[string]interface{}{
			"total_students":        45,
			"active_students":       42,
			"total_assignments":     28,
			"completed_assignments": 24,
			"total_quizzes":         15,
			"attempted_quizzes":     13,
			"average_performance":   88.7,
			"engagement_rate":       94.2,
			"completion_rate":       85.7,
		},
		"performance_metrics": map[string]interface{}{
			"grade_distribution": map[string]int{
				"A (90-100)":   18,
				"B (80-89)":    15,
				"C (70-79)":    8,
				"D (60-69)":    3,
				"F (Below 60)": 1,
			},
			"average_scores": map[string]float64{
				"assignments": 87.3,
				"quizzes":     82.1,
				"projects":    91.5,
				"overall":     88.7,
			},
		},
		"engagement_data": map[string]interface{}{
			"daily_active_users": []int{42, 45, 38, 41, 44, 39, 43},
			"weekly_engagement":  []int{89, 92, 87, 94, 91, 88, 93},
			"monthly_trends":     []int{85, 87, 89, 91, 88, 92, 94},
		},
		"student_progress": map[string]int{
			"on_track":                32,
			"at_risk":                 8,
			"exceeding_expectations":  5,
			"needs_attention":         3,
		},
		"charts_data": map[string]interface{}{
			"performance_distribution": map[string]interface{}{
				"labels": []string{"A", "B", "C", "D", "F"},
				"data":   []int{18, 15, 8, 3, 1},
			},
			"weekly_engagement": map[string]interface{}{
				"labels": []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"},
				"data":   []int{78, 82, 85, 89, 94},
			},
			"assignment_completion": map[string]interface{}{
				"labels": []string{"Math", "Science", "History", "Literature", "Programming"},
				"data":   []int{95, 88, 92, 85, 78},
			},
		},
		"trends": map[string]float64{
			"student_growth":              18.5,
			"performance_improvement":     12.3,
			"engagement_increase":         15.7,
			"completion_rate_improvement": 8.9,
		},
	}
}

// TeacherAnalytics is the class-level reporting view for one teacher.
func (s *DashboardService) TeacherAnalytics(teacherID uint) map[string]interface{} {
	return map[string]interface{}{
		"teacher_id": teacherID,
		"overview": map[string]interface{}{
			"total_students":        32,
			"active_students":       30,
			"total_assignments":     18,
			"completed_assignments": 16,
			"average_performance":   89.2,
			"engagement_rate":       96.1,
		},
		"class_performance": map[string]interface{}{
			"grade_distribution": map[string]int{
				"A": 14, "B": 12, "C": 4, "D": 2, "F": 0,
			},
			"average_scores_by_subject": map[string]float64{
				"Mathematics": 91.5,
				"Science":     87.3,
				"English":     89.8,
				"History":     88.1,
			},
		},
		"student_engagement": map[string]interface{}{
			"highly_engaged":     22,
			"moderately_engaged": 6,
			"low_engagement":     2,
			"participation_rate": 94.2,
		},
		"assignment_insights": map[string]interface{}{
			"most_successful": map[string]interface{}{
				"title":           "Algebra Fundamentals",
				"completion_rate": 98,
				"average_score":   92.5,
			},
			"needs_attention": map[string]interface{}{
				"title":           "Advanced Calculus",
				"completion_rate": 78,
				"average_score":   76.2,
			},
			"submission_patterns": map[string]int{
				"early_submissions":   45,
				"on_time_submissions": 120,
				"late_submissions":    8,
				"missing_submissions": 3,
			},
		},
		"quiz_performance": map[string]interface{}{
			"average_attempts": 1.6,
			"success_rate":     91.3,
			"difficult_concepts": []map[string]interface{}{
				{"concept": "Derivatives", "success_rate": 68},
				{"concept": "Integration", "success_rate": 74},
				{"concept": "Limits", "success_rate": 82},
			},
		},
	}
}

// DashboardCharts backs the admin landing page.
func (s *DashboardService) DashboardCharts() map[string]interface{} {
	return map[string]interface{}{
		"summary": map[string]interface{}{
			"total_students":    45,
			"total_teachers":    6,
			"total_assignments": 28,
			"total_quizzes":     15,
		},
		"charts_data": map[string]interface{}{
			"grade_distribution": map[string]interface{}{
				"labels": []string{"A", "B", "C", "D", "F"},
				"data":   []int{18, 15, 8, 3, 1},
			},
			"weekly_activity": map[string]interface{}{
				"labels": []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
				"data":   []int{42, 45, 38, 41, 44, 39, 43},
			},
			"performance_over_time": []map[string]interface{}{
				{"week": "Week 1", "average_score": 82.5},
				{"week": "Week 2", "average_score": 84.2},
				{"week": "Week 3", "average_score": 86.1},
				{"week": "Week 4", "average_score": 87.8},
				{"week": "Week 5", "average_score": 88.7},
			},
		},
	}
}

// StudentDashboard composes a student's landing view from live data: their
// profile, recent submissions and quiz attempts, and the analytics snapshot.
func (s *DashboardService) StudentDashboard(studentID uint) (map[string]interface{}, error) {
	student, err := s.UserRepo.FindStudent(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, util.Internal(err)
	}

	snapshot, err := s.Analytics.StudentSnapshot(studentID)
	if err != nil {
		return nil, err
	}

	submissions, _, err := s.SubmissionRepo.ListByStudentPaginated(studentID, 1, 5)
	if err != nil {
		return nil, util.Internal(err)
	}
	attempts, _, err := s.AttemptRepo.ListByStudentPaginated(studentID, 1, 5)
	if err != nil {
		return nil, util.Internal(err)
	}

	recentSubmissions := make([]map[string]interface{}, 0, len(submissions))
	for _, sub := range submissions {
		title := ""
		if sub.Assignment != nil {
			title = sub.Assignment.Title
		}
		recentSubmissions = append(recentSubmissions, map[string]interface{}{
			"id":               sub.ID,
			"assignment_title": title,
			"submitted_at":     sub.SubmittedAt,
			"status":           sub.Status,
			"grade":            sub.Grade,
			"feedback":         sub.Feedback,
		})
	}

	recentQuizzes := make([]map[string]interface{}, 0, len(attempts))
	for _, attempt := range attempts {
		title := ""
		if attempt.Quiz != nil {
			title = attempt.Quiz.Title
		}
		recentQuizzes = append(recentQuizzes, map[string]interface{}{
			"id":           attempt.ID,
			"quiz_title":   title,
			"score":        attempt.Score,
			"attempted_at": attempt.AttemptedAt,
		})
	}

	return map[string]interface{}{
		"student": map[string]interface{}{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
			"role":  student.Role,
		},
		"recent_submissions": recentSubmissions,
		"recent_quizzes":     recentQuizzes,
		"overall_progress":   snapshot.KPIs.CompletionRate,
		"analytics":          snapshot.KPIs,
	}, nil
}

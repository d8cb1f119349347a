package service

import (
	"academic_portal_backend/internal/model"
	"academic_portal_backend/internal/repository"
	"academic_portal_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// totalAvailableItems is the assumed fixed curriculum size used by the
// completion rate. Kept a constant until modules become first-class.
const totalAvailableItems = 12

const recentActivityWindow = 7 * 24 * time.Hour

type AnalyticsService struct {
	UserRepo       *repository.UserRepository
	AttemptRepo    *repository.QuizAttemptRepository
	SubmissionRepo *repository.SubmissionRepository
	ReflectionRepo *repository.ReflectionRepository
	Cache          *SnapshotCache

	now func() time.Time
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	attemptRepo *repository.QuizAttemptRepository,
	submissionRepo *repository.SubmissionRepository,
	reflectionRepo *repository.ReflectionRepository,
	cache *SnapshotCache,
) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:       userRepo,
		AttemptRepo:    attemptRepo,
		SubmissionRepo: submissionRepo,
		ReflectionRepo: reflectionRepo,
		Cache:          cache,
		now:            time.Now,
	}
}

// StudentSnapshot returns the memoized analytics snapshot for one student,
// computing it when absent or expired. Persistence errors abort the whole
// computation; partial results are never cached.
func (s *AnalyticsService) StudentSnapshot(studentID uint) (*model.StudentSnapshot, error) {
	if snapshot, ok := s.Cache.Get(studentID); ok {
		return snapshot, nil
	}

	if _, err := s.UserRepo.FindStudent(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, util.Internal(err)
	}

	attempts, err := s.AttemptRepo.ListByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	submissions, err := s.SubmissionRepo.ListByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	reflectionCount, err := s.ReflectionRepo.CountByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}

	snapshot := s.compute(studentID, attempts, submissions, int(reflectionCount))
	s.Cache.Set(studentID, snapshot)
	return snapshot, nil
}

// compute derives every metric from the already-fetched rows. Attempts and
// submissions arrive descending by time and the time series keep that order.
func (s *AnalyticsService) compute(
	studentID uint,
	attempts []model.QuizAttempt,
	submissions []model.Submission,
	reflectionCount int,
) *model.StudentSnapshot {
	now := s.now()

	var scoreSum float64
	var scored int
	var recentAttempts int
	scoresOverTime := []model.ScorePoint{}
	for _, a := range attempts {
		if now.Sub(a.AttemptedAt) <= recentActivityWindow {
			recentAttempts++
		}
		if a.Score == nil {
			continue
		}
		scored++
		scoreSum += *a.Score
		scoresOverTime = append(scoresOverTime, model.ScorePoint{Date: a.AttemptedAt, Score: *a.Score})
	}

	var gradeSum float64
	var graded int
	var distribution model.GradeDistribution
	gradesOverTime := []model.GradePoint{}
	for _, sub := range submissions {
		if sub.Grade == nil {
			continue
		}
		graded++
		gradeSum += *sub.Grade
		distribution[model.GradeBucket(*sub.Grade)]++
		gradesOverTime = append(gradesOverTime, model.GradePoint{Date: sub.SubmittedAt, Grade: *sub.Grade})
	}

	kpis := model.SnapshotKPIs{
		TotalQuizAttempts: len(attempts),
		TotalSubmissions:  len(submissions),
		TotalReflections:  reflectionCount,
	}
	if scored > 0 {
		kpis.AverageQuizScore = scoreSum / float64(scored)
	}
	if graded > 0 {
		kpis.AverageAssignmentGrade = gradeSum / float64(graded)
	}

	kpis.EngagementScore = clamp100(float64(recentAttempts*20 + reflectionCount*10))

	completed := graded + scored
	kpis.CompletionRate = clamp100(100 * float64(completed) / float64(totalAvailableItems))

	return &model.StudentSnapshot{
		StudentID: studentID,
		KPIs:      kpis,
		Charts: model.SnapshotCharts{
			QuizScoresOverTime:       scoresOverTime,
			AssignmentGradesOverTime: gradesOverTime,
			GradeDistribution:        distribution,
		},
		GeneratedAt: now,
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// InvalidateStudent drops the cached snapshot after a grade or score write.
func (s *AnalyticsService) InvalidateStudent(studentID uint) {
	s.Cache.Invalidate(studentID)
}

// RecentActivity merges submissions and quiz attempts into one descending
// feed with page/limit pagination over the combined count.
func (s *AnalyticsService) RecentActivity(studentID uint, page, limit int) ([]model.ActivityItem, *model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	submissions, totalSubs, err := s.SubmissionRepo.ListByStudentPaginated(studentID, page, limit)
	if err != nil {
		return nil, nil, util.Internal(err)
	}
	attempts, totalAttempts, err := s.AttemptRepo.ListByStudentPaginated(studentID, page, limit)
	if err != nil {
		return nil, nil, util.Internal(err)
	}

	activity := make([]model.ActivityItem, 0, len(submissions)+len(attempts))
	for _, sub := range submissions {
		title := "Assignment"
		if sub.Assignment != nil {
			title = sub.Assignment.Title
		}
		activity = append(activity, model.ActivityItem{
			Description: fmt.Sprintf("Submitted assignment: %s", title),
			Timestamp:   sub.SubmittedAt,
			Type:        "submission",
		})
	}
	for _, a := range attempts {
		title := "Quiz"
		if a.Quiz != nil {
			title = a.Quiz.Title
		}
		desc := fmt.Sprintf("Completed quiz: %s", title)
		if a.Score != nil {
			desc = fmt.Sprintf("Completed quiz: %s (Score: %g)", title, *a.Score)
		}
		activity = append(activity, model.ActivityItem{
			Description: desc,
			Timestamp:   a.AttemptedAt,
			Type:        "quiz",
		})
	}

	sortActivityDesc(activity)

	total := totalSubs + totalAttempts
	pages := (total + int64(limit) - 1) / int64(limit)
	pagination := &model.Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: int64(page) < pages,
		HasPrev: page > 1,
	}
	return activity, pagination, nil
}

func sortActivityDesc(items []model.ActivityItem) {
	// Insertion sort: both inputs are already descending, so the merge is
	// nearly sorted and short.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].Timestamp.After(items[j-1].Timestamp); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// GradeReport bundles every graded item for one student with summary stats.
func (s *AnalyticsService) GradeReport(studentID uint) (*model.GradeReport, error) {
	if _, err := s.UserRepo.FindStudent(studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, util.Internal(err)
	}

	graded, err := s.SubmissionRepo.ListGradedByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}
	scored, err := s.AttemptRepo.ListScoredByStudent(studentID)
	if err != nil {
		return nil, util.Internal(err)
	}

	stats := model.GradeStatistics{
		TotalAssignments: len(graded),
		TotalQuizzes:     len(scored),
	}

	var gradeSum float64
	for i, sub := range graded {
		g := *sub.Grade
		gradeSum += g
		if i == 0 || g > stats.HighestAssignmentGrade {
			stats.HighestAssignmentGrade = g
		}
		if i == 0 || g < stats.LowestAssignmentGrade {
			stats.LowestAssignmentGrade = g
		}
	}
	if len(graded) > 0 {
		stats.AverageAssignmentGrade = gradeSum / float64(len(graded))
	}

	var scoreSum float64
	for _, a := range scored {
		scoreSum += *a.Score
	}
	if len(scored) > 0 {
		stats.AverageQuizScore = scoreSum / float64(len(scored))
	}

	return &model.GradeReport{
		AssignmentGrades: graded,
		QuizGrades:       scored,
		Statistics:       stats,
	}, nil
}

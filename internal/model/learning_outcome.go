package model

import "time"

// swagger:model LearningOutcome
type LearningOutcome struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Criteria    string `gorm:"type:text" json:"criteria"`
}

func (LearningOutcome) TableName() string {
	return "learning_outcomes"
}

// StudentOutcomeProgress tracks how far a student is along one outcome.
type StudentOutcomeProgress struct {
	BaseModel
	StudentID          uint      `gorm:"not null;index" json:"student_id"`
	OutcomeID          uint      `gorm:"not null;index" json:"outcome_id"`
	ProgressPercentage int       `gorm:"default:0" json:"progress_percentage"`
	EvidenceCount      int       `gorm:"default:0" json:"evidence_count"`
	LastUpdated        time.Time `json:"last_updated"`

	Outcome *LearningOutcome `gorm:"foreignKey:OutcomeID" json:"outcome,omitempty"`
}

func (StudentOutcomeProgress) TableName() string {
	return "student_outcome_progress"
}

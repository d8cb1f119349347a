package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	TeacherID   uint   `gorm:"not null;index" json:"teacher_id"`

	Teacher   *User      `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint   `gorm:"not null;index" json:"quiz_id"`
	QuestionText  string `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string `gorm:"size:30;default:'multiple_choice'" json:"question_type"`
	Options       string `gorm:"type:text" json:"options"` // JSON-encoded option list
	CorrectAnswer string `gorm:"size:255" json:"correct_answer"`
	Points        int    `gorm:"default:1" json:"points"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID         uint      `gorm:"not null;index" json:"quiz_id"`
	StudentID      uint      `gorm:"not null;index" json:"student_id"`
	Score          *float64  `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	AttemptedAt    time.Time `gorm:"index" json:"attempted_at"`

	Quiz    *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

package model

// swagger:model Reflection
type Reflection struct {
	BaseModel
	StudentID        uint   `gorm:"not null;index" json:"student_id"`
	Title            string `gorm:"size:200;not null" json:"title"`
	Content          string `gorm:"type:text" json:"content"`
	LearningOutcomes string `gorm:"type:text" json:"learning_outcomes"`
	SkillsDeveloped  string `gorm:"type:text" json:"skills_developed"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Reflection) TableName() string {
	return "reflections"
}

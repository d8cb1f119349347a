package model

// swagger:model PortfolioEvidence
type PortfolioEvidence struct {
	BaseModel
	StudentID    uint   `gorm:"not null;index" json:"student_id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	EvidenceType string `gorm:"size:30;default:'project'" json:"evidence_type"`
	FilePath     string `gorm:"size:255" json:"file_path,omitempty"`
	SkillsTagged string `gorm:"type:text" json:"skills_tagged"`

	Student *User            `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Skills  []PortfolioSkill `gorm:"foreignKey:PortfolioEvidenceID" json:"skills,omitempty"`
}

func (PortfolioEvidence) TableName() string {
	return "portfolio_evidence"
}

// PortfolioSkill links one piece of evidence to a tracked skill.
type PortfolioSkill struct {
	BaseModel
	PortfolioEvidenceID uint   `gorm:"not null;index" json:"portfolio_evidence_id"`
	SkillID             uint   `gorm:"not null;index" json:"skill_id"`
	ProficiencyLevel    string `gorm:"size:20;default:'beginner'" json:"proficiency_level"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

func (PortfolioSkill) TableName() string {
	return "portfolio_skills"
}

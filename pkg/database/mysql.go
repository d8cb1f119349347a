package database

import (
	"academic_portal_backend/internal/config"
	"academic_portal_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates the single canonical schema. The three historical init
// scripts disagreed on column names (users.username vs name,
// assignments.created_by vs teacher_id); this schema is the resolution.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.Submission{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.Notification{},
		&model.Reflection{},
		&model.PortfolioEvidence{},
		&model.PortfolioSkill{},
		&model.Skill{},
		&model.LearningOutcome{},
		&model.StudentOutcomeProgress{},
	); err != nil {
		return err
	}

	seedDefaults(db)
	return nil
}

func seedDefaults(db *gorm.DB) {
	var skillCount int64
	db.Model(&model.Skill{}).Count(&skillCount)
	if skillCount == 0 {
		defaultSkills := []model.Skill{
			{Name: "Problem Solving", Category: "Cognitive", Description: "Ability to analyze and solve complex problems"},
			{Name: "Communication", Category: "Soft Skills", Description: "Effective verbal and written communication"},
			{Name: "Critical Thinking", Category: "Cognitive", Description: "Analytical and evaluative thinking"},
			{Name: "Teamwork", Category: "Soft Skills", Description: "Collaborative work in team environments"},
		}
		for _, s := range defaultSkills {
			db.Create(&s)
		}
	}

	var outcomeCount int64
	db.Model(&model.LearningOutcome{}).Count(&outcomeCount)
	if outcomeCount == 0 {
		defaultOutcomes := []model.LearningOutcome{
			{Title: "Mathematical Proficiency", Description: "Demonstrate mathematical problem-solving skills", Criteria: "Solve 80% of problems correctly"},
			{Title: "Communication Skills", Description: "Present ideas clearly and effectively", Criteria: "Deliver clear presentations"},
			{Title: "Critical Analysis", Description: "Analyze information critically", Criteria: "Evaluate sources and arguments"},
		}
		for _, o := range defaultOutcomes {
			db.Create(&o)
		}
	}
}

package model

import "time"

// QuizResult 测验成绩，按提交追加，从不修改
type QuizResult struct {
	BaseModel
	UserID         uint      `gorm:"index;not null" json:"userId"`
	QuizID         uint      `gorm:"index;not null" json:"quizId"`
	Score          int       `gorm:"not null" json:"score"`
	Passed         bool      `gorm:"default:false" json:"passed"`
	CorrectAnswers int       `gorm:"not null" json:"correctAnswers"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

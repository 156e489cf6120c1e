package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// Create 成绩只追加，不存在任何更新路径
func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) ListByUser(userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.
		Where("user_id = ?", userID).
		Order("completed_at desc").
		Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at desc").
		Find(&results).Error
	return results, err
}

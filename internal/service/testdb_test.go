package service

import (
	"testing"

	"elearn_backend/internal/model"
	"elearn_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

// seedQuiz 建一棵四题测验树，每题四个选项，正确项依次为第 1/2/3/4 个
func seedQuiz(t *testing.T, db *gorm.DB, requiredScore int) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		ModuleID:      1,
		Title:         "Module checkpoint",
		RequiredScore: requiredScore,
	}
	for q := 0; q < 4; q++ {
		question := model.Question{
			Text:       "question",
			OrderIndex: q,
		}
		for a := 0; a < 4; a++ {
			question.Answers = append(question.Answers, model.Answer{
				Text:       "answer",
				OrderIndex: a,
				IsCorrect:  a == q,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	require.NoError(t, db.Create(quiz).Error)

	return quiz
}

package service

import (
	"testing"
	"time"

	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, *repository.QuizResultRepository) {
	t.Helper()

	db := setupTestDB(t)
	resultRepo := repository.NewQuizResultRepository(db)
	svc := NewQuizService(repository.NewQuizRepository(db), resultRepo, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, resultRepo
}

// correctAnswerID 取题目中标记为正确的选项ID
func correctAnswerID(t *testing.T, q model.Question) uint {
	t.Helper()
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a.ID
		}
	}
	t.Fatal("question has no correct answer")
	return 0
}

func wrongAnswerID(t *testing.T, q model.Question) uint {
	t.Helper()
	for _, a := range q.Answers {
		if !a.IsCorrect {
			return a.ID
		}
	}
	t.Fatal("question has no wrong answer")
	return 0
}

func TestSubmitQuizPassing(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 70)

	// 四题答对三题
	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
		quiz.Questions[1].ID: correctAnswerID(t, quiz.Questions[1]),
		quiz.Questions[2].ID: wrongAnswerID(t, quiz.Questions[2]),
		quiz.Questions[3].ID: correctAnswerID(t, quiz.Questions[3]),
	}

	result, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), result.CompletedAt)
}

func TestSubmitQuizFailing(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 80)

	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
		quiz.Questions[1].ID: correctAnswerID(t, quiz.Questions[1]),
		quiz.Questions[2].ID: correctAnswerID(t, quiz.Questions[2]),
	}

	result, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 75, result.Score)
	assert.False(t, result.Passed)
}

func TestSubmitQuizScoreEqualsThreshold(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 75)

	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
		quiz.Questions[1].ID: correctAnswerID(t, quiz.Questions[1]),
		quiz.Questions[2].ID: correctAnswerID(t, quiz.Questions[2]),
	}

	result, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Passed)
}

func TestSubmitQuizScoreFloors(t *testing.T) {
	svc, _ := newQuizService(t)

	// 三题测验，1/3 截断为 33
	quiz := &model.Quiz{ModuleID: 1, Title: "short", RequiredScore: 70}
	for q := 0; q < 3; q++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			Text:       "question",
			OrderIndex: q,
			Answers: []model.Answer{
				{Text: "right", OrderIndex: 0, IsCorrect: true},
				{Text: "wrong", OrderIndex: 1},
			},
		})
	}
	require.NoError(t, svc.QuizRepo.DB.Create(quiz).Error)

	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
	}

	result, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)
}

func TestSubmitQuizIgnoresForeignEntries(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 70)

	// 不属于该测验的题目ID直接忽略；选项ID必须属于对应题目才计分
	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
		quiz.Questions[1].ID: correctAnswerID(t, quiz.Questions[2]),
		99999:                correctAnswerID(t, quiz.Questions[3]),
	}

	result, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 25, result.Score)
	assert.False(t, result.Passed)
}

func TestSubmitQuizEmptySubmission(t *testing.T) {
	svc, resultRepo := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 70)

	result, err := svc.SubmitQuiz(7, quiz.ID, map[uint]uint{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 4, result.TotalQuestions)

	// 空提交同样落成绩
	stored, err := resultRepo.ListByUserAndQuiz(7, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitQuizNoQuestions(t *testing.T) {
	svc, resultRepo := newQuizService(t)

	quiz := &model.Quiz{ModuleID: 1, Title: "empty", RequiredScore: 70}
	require.NoError(t, svc.QuizRepo.DB.Create(quiz).Error)

	result, err := svc.SubmitQuiz(7, quiz.ID, map[uint]uint{1: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, result.TotalQuestions)

	stored, err := resultRepo.ListByUserAndQuiz(7, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitQuizAppendsHistory(t *testing.T) {
	svc, resultRepo := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 70)

	answers := map[uint]uint{
		quiz.Questions[0].ID: correctAnswerID(t, quiz.Questions[0]),
	}

	_, err := svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)
	_, err = svc.SubmitQuiz(7, quiz.ID, answers)
	require.NoError(t, err)

	stored, err := resultRepo.ListByUserAndQuiz(7, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSubmitQuizNotFound(t *testing.T) {
	svc, _ := newQuizService(t)

	_, err := svc.SubmitQuiz(7, 12345, map[uint]uint{})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGetQuizByIDLoadsOrderedTree(t *testing.T) {
	svc, _ := newQuizService(t)
	quiz := seedQuiz(t, svc.QuizRepo.DB, 70)

	loaded, err := svc.GetQuizByID(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 4)
	require.Len(t, loaded.Questions[0].Answers, 4)

	// 选项顺序按 order_index 返回
	for _, q := range loaded.Questions {
		for i, a := range q.Answers {
			assert.Equal(t, i, a.OrderIndex)
		}
	}
}

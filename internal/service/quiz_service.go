package service

import (
	"context"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/logger"
	"elearn_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	quizCacheKeyPrefix = "quiz:full:"
	quizCacheTTL       = 10 * time.Minute
)

// QuizService 负责测验加载与判分
type QuizService struct {
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.QuizResultRepository
	Redis      *redis.Client

	now func() time.Time
}

func NewQuizService(quizRepo *repository.QuizRepository, resultRepo *repository.QuizResultRepository, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizRepo:   quizRepo,
		ResultRepo: resultRepo,
		Redis:      rdb,
		now:        time.Now,
	}
}

// GetQuizByID 返回完整加载的测验（题目+选项）
// 测验树在判分期间不可变，适合整树缓存
func (s *QuizService) GetQuizByID(id uint) (*model.Quiz, error) {
	if s.Redis != nil {
		key := quizCacheKeyPrefix + strconv.FormatUint(uint64(id), 10)
		val, err := s.Redis.Get(context.Background(), key).Result()
		if err == nil {
			var quiz model.Quiz
			if err := json.Unmarshal([]byte(val), &quiz); err == nil {
				return &quiz, nil
			}
			// 缓存内容损坏则回源
			s.Redis.Del(context.Background(), key)
		}
	}

	quiz, err := s.QuizRepo.FindByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(quiz); err == nil {
			key := quizCacheKeyPrefix + strconv.FormatUint(uint64(id), 10)
			if err := s.Redis.Set(context.Background(), key, data, quizCacheTTL).Err(); err != nil {
				logger.Log.Warn("quiz cache write failed", zap.Uint("quizId", id), zap.Error(err))
			}
		}
	}

	return quiz, nil
}

func (s *QuizService) GetModuleQuizzes(moduleID uint) ([]model.Quiz, error) {
	return s.QuizRepo.ListByModule(moduleID)
}

// SubmitQuiz 按单选语义判分并追加一条成绩记录
//
// answers 为 题目ID→所选选项ID 的映射，允许为空或不完整，未作答题目按
// 错误计。映射中不属于该测验的题目ID直接忽略，不报错。
// 零题测验不参与除法：score=0、passed=false，同样落一条成绩。
func (s *QuizService) SubmitQuiz(userID, quizID uint, answers map[uint]uint) (*model.QuizResult, error) {
	// 判分直接回源。缓存走 JSON 序列化，正确答案标记（json:"-"）不在其中
	quiz, err := s.QuizRepo.FindByIDFull(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	totalQuestions := len(quiz.Questions)

	questionMap := make(map[uint]*model.Question, totalQuestions)
	for i := range quiz.Questions {
		questionMap[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	correctCount := 0
	for questionID, answerID := range answers {
		question, ok := questionMap[questionID]
		if !ok {
			continue
		}
		for _, answer := range question.Answers {
			if answer.ID == answerID && answer.IsCorrect {
				correctCount++
				break
			}
		}
	}

	score := 0
	passed := false
	if totalQuestions > 0 {
		score = correctCount * 100 / totalQuestions
		passed = score >= quiz.RequiredScore
	}

	result := &model.QuizResult{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		Passed:         passed,
		CorrectAnswers: correctCount,
		TotalQuestions: totalQuestions,
		CompletedAt:    s.now(),
	}

	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}

	monitoring.QuizGradedCounter.WithLabelValues(strconv.FormatBool(passed)).Inc()

	return result, nil
}

func (s *QuizService) GetUserResults(userID uint) ([]model.QuizResult, error) {
	return s.ResultRepo.ListByUser(userID)
}

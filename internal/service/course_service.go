package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.QuizRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, quizRepo *repository.QuizRepository) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		QuizRepo:   quizRepo,
	}
}

// CourseSummary 课程列表项，只带模块数量不带模块内容
type CourseSummary struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ThumbnailURL    string  `json:"thumbnailUrl"`
	DurationMinutes int     `json:"durationMinutes"`
	Difficulty      float64 `json:"difficulty"`
	Instructor      string  `json:"instructor"`
	ModuleCount     int     `json:"moduleCount"`
}

func (s *CourseService) ListPublishedCourses() ([]CourseSummary, error) {
	courses, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, len(courses))
	for i, c := range courses {
		summaries[i] = CourseSummary{
			ID:              c.ID,
			Title:           c.Title,
			Description:     c.Description,
			Category:        c.Category,
			ThumbnailURL:    c.ThumbnailURL,
			DurationMinutes: c.DurationMinutes,
			Difficulty:      c.Difficulty,
			Instructor:      c.Instructor,
			ModuleCount:     len(c.Modules),
		}
	}
	return summaries, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourseModules(courseID uint) ([]model.CourseModule, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.ListModules(courseID)
}

type CourseRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	ThumbnailURL    string  `json:"thumbnailUrl"`
	DurationMinutes int     `json:"durationMinutes"`
	Difficulty      float64 `json:"difficulty"`
	Instructor      string  `json:"instructor"`
	Published       *bool   `json:"published"`
}

func (s *CourseService) CreateCourse(req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ThumbnailURL:    req.ThumbnailURL,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		Instructor:      req.Instructor,
		Published:       true,
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.GetCourse(id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	if req.ThumbnailURL != "" {
		course.ThumbnailURL = req.ThumbnailURL
	}
	course.DurationMinutes = req.DurationMinutes
	course.Difficulty = req.Difficulty
	course.Instructor = req.Instructor
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(id)
}

type ModuleRequest struct {
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"orderIndex"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s *CourseService) CreateModule(courseID uint, req ModuleRequest) (*model.CourseModule, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	module := &model.CourseModule{
		CourseID:        courseID,
		Title:           req.Title,
		Content:         req.Content,
		OrderIndex:      req.OrderIndex,
		DurationMinutes: req.DurationMinutes,
	}

	if err := s.CourseRepo.CreateModule(module); err != nil {
		return nil, err
	}
	return module, nil
}

type QuizAnswerRequest struct {
	Text       string `json:"text" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuizQuestionRequest struct {
	Text       string              `json:"text" binding:"required"`
	OrderIndex int                 `json:"orderIndex"`
	Answers    []QuizAnswerRequest `json:"answers" binding:"required,min=1"`
}

type QuizRequest struct {
	Title         string                `json:"title" binding:"required"`
	RequiredScore int                   `json:"requiredScore"`
	Questions     []QuizQuestionRequest `json:"questions"`
}

// CreateQuiz 以嵌套写入创建测验整树
func (s *CourseService) CreateQuiz(moduleID uint, req QuizRequest) (*model.Quiz, error) {
	requiredScore := req.RequiredScore
	if requiredScore <= 0 {
		requiredScore = 70
	}

	quiz := &model.Quiz{
		ModuleID:      moduleID,
		Title:         req.Title,
		RequiredScore: requiredScore,
	}

	for _, q := range req.Questions {
		question := model.Question{
			Text:       q.Text,
			OrderIndex: q.OrderIndex,
		}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, model.Answer{
				Text:       a.Text,
				OrderIndex: a.OrderIndex,
				IsCorrect:  a.IsCorrect,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

package service

import (
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"errors"
	"time"

	"gorm.io/gorm"
)

// EnrollmentService 维护选课状态与进度
type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CertService    *CertificateService

	now func() time.Time
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, certService *CertificateService) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CertService:    certService,
		now:            time.Now,
	}
}

// Enroll 幂等选课：已存在的 (user, course) 记录原样返回
// 并发下靠唯一索引兜底，冲突时读回已有记录
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.CourseEnrollment, error) {
	existing, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.CourseEnrollment{
		UserID:             userID,
		CourseID:           courseID,
		ProgressPercentage: 0,
		EnrolledAt:         s.now(),
	}

	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 与并发请求撞上唯一索引，返回先创建的那条
			return s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
		}
		return nil, err
	}

	return enrollment, nil
}

func (s *EnrollmentService) GetUserEnrollments(userID uint) ([]model.CourseEnrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func (s *EnrollmentService) GetEnrollment(userID, courseID uint) (*model.CourseEnrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return enrollment, err
}

// UpdateProgress 将进度收敛到 [0,100]，选课记录不存在时静默返回
// 不强制进度单调递增，乱序更新按调用方给定值落库
func (s *EnrollmentService) UpdateProgress(enrollmentID uint, progress int) error {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	enrollment.ProgressPercentage = progress
	return s.EnrollmentRepo.Update(enrollment)
}

// Complete 无条件标记完成（重复调用幂等），并触发证书签发
func (s *EnrollmentService) Complete(enrollmentID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	completedAt := s.now()
	enrollment.Completed = true
	enrollment.CompletedAt = &completedAt
	enrollment.ProgressPercentage = 100

	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return err
	}

	if s.CertService != nil {
		if _, err := s.CertService.Issue(enrollment.UserID, enrollment.CourseID); err != nil {
			return err
		}
	}

	return nil
}

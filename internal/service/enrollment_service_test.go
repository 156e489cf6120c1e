package service

import (
	"testing"
	"time"

	"elearn_backend/internal/config"
	"elearn_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T) (*EnrollmentService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	certSvc := NewCertificateService(repository.NewCertificateRepository(db), &config.Config{
		Certificate: config.CertificateConfig{
			ValidityYears: 2,
			BaseURL:       "https://learnhub.example.com",
		},
	})
	svc := NewEnrollmentService(repository.NewEnrollmentRepository(db), certSvc)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, db
}

func TestEnrollCreatesRecord(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	enrollment, err := svc.Enroll(7, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(7), enrollment.UserID)
	assert.Equal(t, uint(3), enrollment.CourseID)
	assert.Equal(t, 0, enrollment.ProgressPercentage)
	assert.False(t, enrollment.Completed)
	assert.Nil(t, enrollment.CompletedAt)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), enrollment.EnrolledAt)
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	first, err := svc.Enroll(7, 3)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProgress(first.ID, 40))

	// 重复选课返回已有记录，进度不回退
	second, err := svc.Enroll(7, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 40, second.ProgressPercentage)

	enrollments, err := svc.GetUserEnrollments(7)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}

func TestEnrollDistinctCourses(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	_, err := svc.Enroll(7, 3)
	require.NoError(t, err)
	_, err = svc.Enroll(7, 4)
	require.NoError(t, err)

	enrollments, err := svc.GetUserEnrollments(7)
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}

func TestUpdateProgressClamps(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	enrollment, err := svc.Enroll(7, 3)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"negative clamps to zero", -10, 0},
		{"in range passes through", 55, 55},
		{"over 100 clamps", 150, 100},
		{"zero stays zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, svc.UpdateProgress(enrollment.ID, tt.input))

			current, err := svc.GetEnrollment(7, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, current.ProgressPercentage)
		})
	}
}

func TestUpdateProgressMissingEnrollment(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	// 不存在的选课记录静默忽略
	assert.NoError(t, svc.UpdateProgress(9999, 50))
}

func TestCompleteMarksAndIssuesCertificate(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	enrollment, err := svc.Enroll(7, 3)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateProgress(enrollment.ID, 60))

	require.NoError(t, svc.Complete(enrollment.ID))

	current, err := svc.GetEnrollment(7, 3)
	require.NoError(t, err)
	assert.True(t, current.Completed)
	assert.Equal(t, 100, current.ProgressPercentage)
	require.NotNil(t, current.CompletedAt)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), *current.CompletedAt)

	cert, err := svc.CertService.CertRepo.FindByUserAndCourse(7, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(3), cert.CourseID)
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	enrollment, err := svc.Enroll(7, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Complete(enrollment.ID))
	first, err := svc.CertService.CertRepo.FindByUserAndCourse(7, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Complete(enrollment.ID))
	second, err := svc.CertService.CertRepo.FindByUserAndCourse(7, 3)
	require.NoError(t, err)

	// 重复完成不产生第二张证书
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)

	certs, err := svc.CertService.GetUserCertificates(7)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestCompleteMissingEnrollment(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	assert.NoError(t, svc.Complete(9999))
}

func TestGetEnrollmentNotEnrolled(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	enrollment, err := svc.GetEnrollment(7, 3)
	require.NoError(t, err)
	assert.Nil(t, enrollment)
}

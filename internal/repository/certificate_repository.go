package repository

import (
	"elearn_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

// Create 依赖两个唯一索引：(user_id, course_id) 与 certificate_number
// 冲突返回 gorm.ErrDuplicatedKey，由服务层区分处理
func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert).Error
	return &cert, err
}

func (r *CertificateRepository) FindByNumber(number string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.
		Preload("User").
		Preload("Course").
		Where("certificate_number = ?", number).
		First(&cert).Error
	return &cert, err
}

func (r *CertificateRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).
		Where("certificate_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *CertificateRepository) ListByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.
		Where("user_id = ?", userID).
		Preload("Course").
		Order("issued_at desc").
		Find(&certs).Error
	return certs, err
}

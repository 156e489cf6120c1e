package service

import (
	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"
	"elearn_backend/pkg/monitoring"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 编号碰撞重试上限，8位后缀约 16^8 空间，连续撞满说明出了别的问题
const certNumberMaxAttempts = 5

// CertificateService 签发与校验结课证书
// 时钟与随机令牌作为字段注入，测试中可替换
type CertificateService struct {
	CertRepo *repository.CertificateRepository
	Cfg      *config.Config

	now      func() time.Time
	newToken func() string
}

func NewCertificateService(certRepo *repository.CertificateRepository, cfg *config.Config) *CertificateService {
	return &CertificateService{
		CertRepo: certRepo,
		Cfg:      cfg,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// Issue 幂等签发：同一 (user, course) 只存在一张证书
// 新签发走 生成编号→查重→写入 的有界重试，唯一索引兜底并发
func (s *CertificateService) Issue(userID, courseID uint) (*model.Certificate, error) {
	existing, err := s.CertRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < certNumberMaxAttempts; attempt++ {
		number := s.generateNumber()

		exists, err := s.CertRepo.ExistsByNumber(number)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		issuedAt := s.now()
		cert := &model.Certificate{
			UserID:            userID,
			CourseID:          courseID,
			CertificateNumber: number,
			IssuedAt:          issuedAt,
			ValidUntil:        issuedAt.AddDate(s.Cfg.Certificate.ValidityYears, 0, 0),
			CertificateURL:    s.Cfg.Certificate.BaseURL + "/certificates/" + s.newToken() + ".pdf",
		}

		err = s.CertRepo.Create(cert)
		if err == nil {
			monitoring.CertificateIssuedCounter.Inc()
			return cert, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 两种冲突：(user, course) 被并发请求抢先，或编号撞车
			if existing, ferr := s.CertRepo.FindByUserAndCourse(userID, courseID); ferr == nil {
				return existing, nil
			}
			continue
		}

		return nil, err
	}

	return nil, util.ErrNumberExhausted
}

// VerifyByNumber 按证书编号精确匹配，不做模糊查找
func (s *CertificateService) VerifyByNumber(number string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByNumber(number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) GetUserCertificates(userID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(userID)
}

// generateNumber 生成 CERT-YYYYMMDD-XXXXXXXX 格式编号
// 后缀取自随机 UUID，与证书 URL 中的令牌相互独立
func (s *CertificateService) generateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(s.newToken(), "-", "")[:8])
	return "CERT-" + s.now().UTC().Format("20060102") + "-" + suffix
}

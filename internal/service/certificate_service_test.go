package service

import (
	"regexp"
	"testing"
	"time"

	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var certNumberPattern = regexp.MustCompile(`^CERT-\d{8}-[A-Z0-9]{8}$`)

func newCertificateService(t *testing.T) *CertificateService {
	t.Helper()

	db := setupTestDB(t)
	svc := NewCertificateService(repository.NewCertificateRepository(db), &config.Config{
		Certificate: config.CertificateConfig{
			ValidityYears: 2,
			BaseURL:       "https://learnhub.example.com",
		},
	})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

// stubTokens 让 newToken 依次返回给定值
func stubTokens(svc *CertificateService, tokens ...string) {
	i := 0
	svc.newToken = func() string {
		token := tokens[i]
		i++
		return token
	}
}

func TestIssueCreatesCertificate(t *testing.T) {
	svc := newCertificateService(t)

	cert, err := svc.Issue(7, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(7), cert.UserID)
	assert.Equal(t, uint(3), cert.CourseID)
	assert.Regexp(t, certNumberPattern, cert.CertificateNumber)
	assert.Contains(t, cert.CertificateNumber, "CERT-20260315-")
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), cert.IssuedAt)
	assert.Equal(t, time.Date(2028, 3, 15, 10, 0, 0, 0, time.UTC), cert.ValidUntil)
	assert.Regexp(t, `^https://learnhub\.example\.com/certificates/.+\.pdf$`, cert.CertificateURL)
}

func TestIssueIsIdempotent(t *testing.T) {
	svc := newCertificateService(t)

	first, err := svc.Issue(7, 3)
	require.NoError(t, err)
	second, err := svc.Issue(7, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CertificateNumber, second.CertificateNumber)

	certs, err := svc.GetUserCertificates(7)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

func TestIssueURLTokenIndependentOfNumber(t *testing.T) {
	svc := newCertificateService(t)
	stubTokens(svc, "deadbeef-1111-2222-3333-444444444444", "url-token-value")

	cert, err := svc.Issue(7, 3)
	require.NoError(t, err)
	assert.Equal(t, "CERT-20260315-DEADBEEF", cert.CertificateNumber)
	assert.Equal(t, "https://learnhub.example.com/certificates/url-token-value.pdf", cert.CertificateURL)
}

func TestIssueRetriesOnNumberCollision(t *testing.T) {
	svc := newCertificateService(t)

	// 另一用户已占用第一次尝试会生成的编号
	taken := &model.Certificate{
		UserID:            99,
		CourseID:          99,
		CertificateNumber: "CERT-20260315-DEADBEEF",
		IssuedAt:          time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2028, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CertRepo.Create(taken))

	stubTokens(svc,
		"deadbeef-1111-2222-3333-444444444444",
		"cafe0001-1111-2222-3333-444444444444",
		"url-token-value",
	)

	cert, err := svc.Issue(7, 3)
	require.NoError(t, err)
	assert.Equal(t, "CERT-20260315-CAFE0001", cert.CertificateNumber)
}

func TestIssueGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc := newCertificateService(t)

	taken := &model.Certificate{
		UserID:            99,
		CourseID:          99,
		CertificateNumber: "CERT-20260315-DEADBEEF",
		IssuedAt:          time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2028, 3, 15, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CertRepo.Create(taken))

	svc.newToken = func() string {
		return "deadbeef-1111-2222-3333-444444444444"
	}

	_, err := svc.Issue(7, 3)
	assert.ErrorIs(t, err, util.ErrNumberExhausted)
}

func TestIssueDistinctCoursesGetDistinctNumbers(t *testing.T) {
	svc := newCertificateService(t)

	first, err := svc.Issue(7, 3)
	require.NoError(t, err)
	second, err := svc.Issue(7, 4)
	require.NoError(t, err)

	assert.NotEqual(t, first.CertificateNumber, second.CertificateNumber)
}

func TestVerifyByNumber(t *testing.T) {
	svc := newCertificateService(t)

	issued, err := svc.Issue(7, 3)
	require.NoError(t, err)

	found, err := svc.VerifyByNumber(issued.CertificateNumber)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)
	assert.Equal(t, uint(7), found.UserID)
}

func TestVerifyByNumberNotFound(t *testing.T) {
	svc := newCertificateService(t)

	_, err := svc.VerifyByNumber("CERT-20260315-NOPE0000")
	assert.ErrorIs(t, err, util.ErrCertificateNotFound)
}

package model

import "time"

// Certificate 结课证书，(user_id, course_id) 唯一，证书编号全局唯一
type Certificate struct {
	BaseModel
	UserID            uint      `gorm:"uniqueIndex:idx_certificate_user_course;not null" json:"userId"`
	CourseID          uint      `gorm:"uniqueIndex:idx_certificate_user_course;not null" json:"courseId"`
	CertificateNumber string    `gorm:"size:32;uniqueIndex;not null" json:"certificateNumber"`
	IssuedAt          time.Time `json:"issuedAt"`
	ValidUntil        time.Time `json:"validUntil"`
	CertificateURL    string    `gorm:"size:255" json:"certificateUrl"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}

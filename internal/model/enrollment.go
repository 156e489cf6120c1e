package model

import "time"

// CourseEnrollment 选课记录，(user_id, course_id) 唯一
// 唯一索引保证并发 Enroll 不会产生重复记录
type CourseEnrollment struct {
	BaseModel
	UserID             uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID           uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	EnrolledAt         time.Time  `json:"enrolledAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	Completed          bool       `gorm:"default:false" json:"completed"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}

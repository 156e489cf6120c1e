package model

// Course 课程，由若干按序模块组成
type Course struct {
	BaseModel
	Title           string  `gorm:"size:255;not null" json:"title"`
	Description     string  `gorm:"type:text" json:"description"`
	Category        string  `gorm:"size:100" json:"category"`
	ThumbnailURL    string  `gorm:"size:255" json:"thumbnailUrl"`
	DurationMinutes int     `gorm:"default:0" json:"durationMinutes"`
	Difficulty      float64 `gorm:"default:0" json:"difficulty"`
	Instructor      string  `gorm:"size:100" json:"instructor"`
	Published       bool    `gorm:"default:true" json:"published"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule 课程模块，OrderIndex 决定展示顺序
type CourseModule struct {
	BaseModel
	CourseID        uint   `gorm:"index;not null" json:"courseId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Content         string `gorm:"type:text" json:"content"`
	OrderIndex      int    `gorm:"default:0" json:"orderIndex"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`

	Quizzes []Quiz `gorm:"foreignKey:ModuleID" json:"quizzes,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

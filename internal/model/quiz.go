package model

// Quiz 模块测验，RequiredScore 为及格线（0-100）
// 及格线在测验生命周期内保持稳定，修改不影响历史成绩
type Quiz struct {
	BaseModel
	ModuleID      uint   `gorm:"index;not null" json:"moduleId"`
	Title         string `gorm:"size:255;not null" json:"title"`
	RequiredScore int    `gorm:"default:70" json:"requiredScore"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	BaseModel
	QuizID     uint   `gorm:"index;not null" json:"quizId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Answer struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"size:500;not null" json:"text"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
}

func (Answer) TableName() string {
	return "answers"
}

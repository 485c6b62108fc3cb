package model

type CourseType string

const (
	Guided    CourseType = "guided"
	SelfPaced CourseType = "self_paced"
)

// Course 课程目录实体。报名、审核、进度模块只读引用，不直接修改
// swagger:model Course
type Course struct {
	BaseModel
	Title       string            `gorm:"size:200;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Objectives  string            `gorm:"type:text" json:"objectives"`
	Type        CourseType        `gorm:"size:20;default:'self_paced';index" json:"type"`
	Price       float64           `gorm:"default:0" json:"price"`
	Image       string            `gorm:"size:255" json:"image"`
	Published   bool              `gorm:"default:true" json:"published"`
	Topics      []Topic           `gorm:"constraint:OnDelete:CASCADE" json:"topics,omitempty"`
	Syllabus    []SyllabusSession `gorm:"constraint:OnDelete:CASCADE" json:"syllabus,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Topic 自学课程的章节。Order 是课程内的稳定位置索引，进度记录按它定位
// swagger:model Topic
type Topic struct {
	BaseModel
	CourseID  uint       `gorm:"index:idx_course_topic,unique" json:"courseId"`
	Order     int        `gorm:"column:topic_order;index:idx_course_topic,unique" json:"order"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Duration  string     `gorm:"size:50" json:"duration"`
	Content   string     `gorm:"type:text" json:"content"`
	Subtopics []Subtopic `gorm:"constraint:OnDelete:CASCADE" json:"subtopics,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

// swagger:model Subtopic
type Subtopic struct {
	BaseModel
	TopicID uint   `gorm:"index:idx_topic_subtopic,unique" json:"topicId"`
	Order   int    `gorm:"column:subtopic_order;index:idx_topic_subtopic,unique" json:"order"`
	Title   string `gorm:"size:200;not null" json:"title"`
}

func (Subtopic) TableName() string {
	return "subtopics"
}

// SyllabusSession 带教课程的大纲条目，始终公开可见
// swagger:model SyllabusSession
type SyllabusSession struct {
	BaseModel
	CourseID  uint    `gorm:"index:idx_course_session,unique" json:"courseId"`
	Order     int     `gorm:"column:session_order;index:idx_course_session,unique" json:"order"`
	Title     string  `gorm:"size:200;not null" json:"title"`
	Learnings string  `gorm:"type:text" json:"learnings"`
	Outcomes  string  `gorm:"type:text" json:"outcomes"`
	Hours     float64 `gorm:"default:0" json:"hours"`
}

func (SyllabusSession) TableName() string {
	return "syllabus_sessions"
}

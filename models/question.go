package models

type Question struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	SurveyID    uint     `gorm:"index;not null" json:"survey_id"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Type        string   `gorm:"size:16;not null" json:"type"`
	Required    bool     `gorm:"default:false" json:"required"`
	Min         *int     `json:"min"`
	Max         *int     `json:"max"`
	Position    int      `gorm:"default:0" json:"position"`
	Details     []Detail `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"details"`
}

func (Question) TableName() string {
	return "questions"
}

// Detail là một lựa chọn (option) của câu hỏi RADIO/RANGE.
type Detail struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID    uint   `gorm:"index;not null" json:"question_id"`
	Title         string `gorm:"size:255;not null" json:"title"`
	Explanation   string `gorm:"type:text" json:"explanation"`
	ShortQuestion string `gorm:"size:255" json:"short_question"`
	Point         string `gorm:"size:64" json:"point"`
	Position      int    `gorm:"default:0" json:"position"`
}

func (Detail) TableName() string {
	return "question_details"
}

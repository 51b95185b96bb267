package models

type Question struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	QuizID        uint     `gorm:"not null;index" json:"quiz_id"`
	Text          string   `gorm:"type:text;not null" json:"question_text"`
	OrderNum      int      `gorm:"not null" json:"order_num"`
	Options       []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CorrectAnswer string   `gorm:"size:500;not null" json:"correct_answer,omitempty"`
}

// OptionTexts returns the option strings in stored order.
func (q Question) OptionTexts() []string {
	texts := make([]string, len(q.Options))
	for i, o := range q.Options {
		texts[i] = o.Text
	}
	return texts
}

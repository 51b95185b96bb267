package models

type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
	OrderNum   int    `gorm:"not null;default:0" json:"order_num"`
}

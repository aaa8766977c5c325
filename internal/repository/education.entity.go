package repository

import (
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
)

type EducationalContentEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Title     string    `db:"title"      gorm:"column:title;not null"`
	Content   string    `db:"content"    gorm:"column:content;not null"`
	Tips      string    `db:"tips"       gorm:"column:tips"`
	VideoURL  string    `db:"video_url"  gorm:"column:video_url"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (EducationalContentEntity) TableName() string {
	return "educational_contents"
}

func toEducationEntity(m *model.EducationalContent) *EducationalContentEntity {
	if m == nil {
		return nil
	}
	return &EducationalContentEntity{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Tips:      m.Tips,
		VideoURL:  m.VideoURL,
		CreatedAt: m.CreatedAt,
	}
}

func toEducationModel(e *EducationalContentEntity) *model.EducationalContent {
	if e == nil {
		return nil
	}
	return &model.EducationalContent{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Tips:      e.Tips,
		VideoURL:  e.VideoURL,
		CreatedAt: e.CreatedAt,
	}
}

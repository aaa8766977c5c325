package repository

import (
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
)

type TemplateEntity struct {
	ID          int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `db:"name"         gorm:"column:name;not null"`
	Subject     string    `db:"subject"      gorm:"column:subject;not null"`
	Body        string    `db:"body"         gorm:"column:body;not null"`
	LandingPage string    `db:"landing_page" gorm:"column:landing_page;not null"`
	Category    string    `db:"category"     gorm:"column:category"`
	Difficulty  string    `db:"difficulty"   gorm:"column:difficulty;default:medium"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (TemplateEntity) TableName() string {
	return "templates"
}

func toTemplateEntity(m *model.Template) *TemplateEntity {
	if m == nil {
		return nil
	}
	return &TemplateEntity{
		ID:          m.ID,
		Name:        m.Name,
		Subject:     m.Subject,
		Body:        m.Body,
		LandingPage: m.LandingPage,
		Category:    m.Category,
		Difficulty:  m.Difficulty,
		CreatedAt:   m.CreatedAt,
	}
}

func toTemplateModel(e *TemplateEntity) *model.Template {
	if e == nil {
		return nil
	}
	return &model.Template{
		ID:          e.ID,
		Name:        e.Name,
		Subject:     e.Subject,
		Body:        e.Body,
		LandingPage: e.LandingPage,
		Category:    e.Category,
		Difficulty:  e.Difficulty,
		CreatedAt:   e.CreatedAt,
	}
}

func toTemplateModels(entities []*TemplateEntity) []*model.Template {
	if entities == nil {
		return nil
	}
	models := make([]*model.Template, len(entities))
	for i, e := range entities {
		models[i] = toTemplateModel(e)
	}
	return models
}

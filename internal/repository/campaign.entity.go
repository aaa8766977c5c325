package repository

import (
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
)

type CampaignEntity struct {
	ID          int64           `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Name        string          `db:"name"        gorm:"column:name;not null"`
	Description string          `db:"description" gorm:"column:description"`
	TemplateID  int64           `db:"template_id" gorm:"column:template_id;index"`
	Status      string          `db:"status"      gorm:"column:status;not null;default:draft"`
	CreatedAt   time.Time       `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	LaunchedAt  *time.Time      `db:"launched_at" gorm:"column:launched_at"`
	Targets     []*TargetEntity `gorm:"foreignKey:CampaignID"`
}

func (CampaignEntity) TableName() string {
	return "campaigns"
}

func toCampaignEntity(m *model.Campaign) *CampaignEntity {
	if m == nil {
		return nil
	}
	return &CampaignEntity{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		TemplateID:  m.TemplateID,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		LaunchedAt:  m.LaunchedAt,
	}
}

func toCampaignModel(e *CampaignEntity) *model.Campaign {
	if e == nil {
		return nil
	}
	return &model.Campaign{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		TemplateID:  e.TemplateID,
		Status:      model.CampaignStatus(e.Status),
		CreatedAt:   e.CreatedAt,
		LaunchedAt:  e.LaunchedAt,
	}
}

func toCampaignModels(entities []*CampaignEntity) []*model.Campaign {
	if entities == nil {
		return nil
	}
	models := make([]*model.Campaign, len(entities))
	for i, e := range entities {
		models[i] = toCampaignModel(e)
	}
	return models
}

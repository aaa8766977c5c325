package repository

import (
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
)

type TargetEntity struct {
	ID         int64  `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Email      string `db:"email"       gorm:"column:email;not null;index:idx_targets_campaign_email"`
	Name       string `db:"name"        gorm:"column:name"`
	Department string `db:"department"  gorm:"column:department"`
	CampaignID int64  `db:"campaign_id" gorm:"column:campaign_id;not null;index:idx_targets_campaign_email"`
	Token      string `db:"token"       gorm:"column:token;not null;uniqueIndex"`

	SentAt      *time.Time `db:"sent_at"      gorm:"column:sent_at"`
	OpenedAt    *time.Time `db:"opened_at"    gorm:"column:opened_at"`
	ClickedAt   *time.Time `db:"clicked_at"   gorm:"column:clicked_at"`
	SubmittedAt *time.Time `db:"submitted_at" gorm:"column:submitted_at"`

	SubmittedData string `db:"submitted_data" gorm:"column:submitted_data"`
	IPAddress     string `db:"ip_address"     gorm:"column:ip_address"`
	UserAgent     string `db:"user_agent"     gorm:"column:user_agent"`
}

func (TargetEntity) TableName() string {
	return "targets"
}

func toTargetEntity(m *model.Target) *TargetEntity {
	if m == nil {
		return nil
	}
	return &TargetEntity{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Department:    m.Department,
		CampaignID:    m.CampaignID,
		Token:         m.Token,
		SentAt:        m.SentAt,
		OpenedAt:      m.OpenedAt,
		ClickedAt:     m.ClickedAt,
		SubmittedAt:   m.SubmittedAt,
		SubmittedData: m.SubmittedData,
		IPAddress:     m.IPAddress,
		UserAgent:     m.UserAgent,
	}
}

func toTargetModel(e *TargetEntity) *model.Target {
	if e == nil {
		return nil
	}
	return &model.Target{
		ID:            e.ID,
		Email:         e.Email,
		Name:          e.Name,
		Department:    e.Department,
		CampaignID:    e.CampaignID,
		Token:         e.Token,
		SentAt:        e.SentAt,
		OpenedAt:      e.OpenedAt,
		ClickedAt:     e.ClickedAt,
		SubmittedAt:   e.SubmittedAt,
		SubmittedData: e.SubmittedData,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
	}
}

func toTargetModels(entities []*TargetEntity) []*model.Target {
	if entities == nil {
		return nil
	}
	models := make([]*model.Target, len(entities))
	for i, e := range entities {
		models[i] = toTargetModel(e)
	}
	return models
}

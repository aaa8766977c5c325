package repository

import (
	"context"
	"errors"
	"time"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrTargetNotFound is returned when no target carries the given token.
	ErrTargetNotFound = errors.New("target not found")
)

type TargetRepository struct {
	*pg.DB
}

func NewTargetRepository(db *pg.DB) *TargetRepository {
	return &TargetRepository{
		db,
	}
}

func (r *TargetRepository) Create(ctx context.Context, t *model.Target) (*model.Target, error) {
	entity := toTargetEntity(t)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTargetModel(entity), nil
}

func (r *TargetRepository) GetByToken(ctx context.Context, token string) (*model.Target, error) {
	var entity TargetEntity
	err := r.Read(ctx).Where("token = ?", token).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	return toTargetModel(&entity), nil
}

// ExistsInCampaign reports whether the (email, campaign) pair is already
// present. Used to skip duplicate lines on bulk add.
func (r *TargetRepository) ExistsInCampaign(ctx context.Context, campaignID int64, email string) (bool, error) {
	var count int64
	err := r.Read(ctx).Model(&TargetEntity{}).
		Where("campaign_id = ? AND email = ?", campaignID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TargetRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]*model.Target, error) {
	var entities []*TargetEntity
	err := r.Read(ctx).
		Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toTargetModels(entities), nil
}

func (r *TargetRepository) ListAll(ctx context.Context) ([]*model.Target, error) {
	var entities []*TargetEntity
	if err := r.Read(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toTargetModels(entities), nil
}

func (r *TargetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).Model(&TargetEntity{}).Count(&count).Error
	return count, err
}

// MarkSent stamps sent_at once. The WHERE sent_at IS NULL guard makes the
// call idempotent under row-level isolation: only the first stamp wins.
func (r *TargetRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	return r.Write(ctx).Model(&TargetEntity{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at).Error
}

// MarkOpened stamps opened_at once and records the requester. Returns true
// when this call was the first occurrence.
func (r *TargetRepository) MarkOpened(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error) {
	res := r.Write(ctx).Model(&TargetEntity{}).
		Where("token = ? AND opened_at IS NULL", token).
		Updates(map[string]interface{}{
			"opened_at":  at,
			"ip_address": ip,
			"user_agent": userAgent,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkClicked stamps clicked_at once and records the requester.
func (r *TargetRepository) MarkClicked(ctx context.Context, token string, at time.Time, ip, userAgent string) (bool, error) {
	res := r.Write(ctx).Model(&TargetEntity{}).
		Where("token = ? AND clicked_at IS NULL", token).
		Updates(map[string]interface{}{
			"clicked_at": at,
			"ip_address": ip,
			"user_agent": userAgent,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkSubmitted stamps submitted_at once and stores the raw form body
// verbatim. A second submission never overwrites the first.
func (r *TargetRepository) MarkSubmitted(ctx context.Context, token string, at time.Time, data string) (bool, error) {
	res := r.Write(ctx).Model(&TargetEntity{}).
		Where("token = ? AND submitted_at IS NULL", token).
		Updates(map[string]interface{}{
			"submitted_at":   at,
			"submitted_data": data,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

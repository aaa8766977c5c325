package repository

import (
	"context"
	"errors"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

type TemplateRepository struct {
	*pg.DB
}

func NewTemplateRepository(db *pg.DB) *TemplateRepository {
	return &TemplateRepository{
		db,
	}
}

func (r *TemplateRepository) Create(ctx context.Context, t *model.Template) (*model.Template, error) {
	entity := toTemplateEntity(t)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTemplateModel(entity), nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*model.Template, error) {
	var entity TemplateEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return toTemplateModel(&entity), nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]*model.Template, error) {
	var entities []*TemplateEntity
	if err := r.Read(ctx).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toTemplateModels(entities), nil
}

func (r *TemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.Read(ctx).Model(&TemplateEntity{}).Count(&count).Error
	return count, err
}

package repository

import (
	"context"
	"errors"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrEducationNotFound = errors.New("educational content not found")
)

type EducationRepository struct {
	*pg.DB
}

func NewEducationRepository(db *pg.DB) *EducationRepository {
	return &EducationRepository{
		db,
	}
}

// First returns the singleton content row.
func (r *EducationRepository) First(ctx context.Context) (*model.EducationalContent, error) {
	var entity EducationalContentEntity
	err := r.Read(ctx).Order("id ASC").First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEducationNotFound
		}
		return nil, err
	}
	return toEducationModel(&entity), nil
}

func (r *EducationRepository) Create(ctx context.Context, c *model.EducationalContent) (*model.EducationalContent, error) {
	entity := toEducationEntity(c)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toEducationModel(entity), nil
}

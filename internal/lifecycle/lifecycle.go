package lifecycle

import "time"

// Phase 活动阶段。纯粹由墙钟时间导出，不落任何状态；
// 边界瞬间前后两次调用可能观察到不同阶段，这是接受的行为
type Phase string

const (
	PhaseProblemSelection Phase = "problem_selection"
	PhaseAssignment       Phase = "assignment"
	PhaseEvaluation       Phase = "evaluation"
	PhaseResults          Phase = "results"
)

// order 阶段的先后次序，用于时间线推导
var order = []Phase{PhaseProblemSelection, PhaseAssignment, PhaseEvaluation, PhaseResults}

// Index 返回阶段序号（problem_selection=0 … results=3）
func (p Phase) Index() int {
	for i, v := range order {
		if v == p {
			return i
		}
	}
	return -1
}

// Boundaries 三条固定日历边界，依次把时间轴切成四个阶段
type Boundaries struct {
	AssignmentStart time.Time
	EvaluationStart time.Time
	ResultsStart    time.Time
}

// Current 返回 now 所处的阶段。对 now 单调非降
func Current(b Boundaries, now time.Time) Phase {
	switch {
	case now.Before(b.AssignmentStart):
		return PhaseProblemSelection
	case now.Before(b.EvaluationStart):
		return PhaseAssignment
	case now.Before(b.ResultsStart):
		return PhaseEvaluation
	default:
		return PhaseResults
	}
}

// MilestoneState 时间线上单个里程碑的展示状态
type MilestoneState string

const (
	StateLocked    MilestoneState = "locked"
	StateActive    MilestoneState = "active"
	StateCompleted MilestoneState = "completed"
)

// Milestone 时间线条目
type Milestone struct {
	Phase   Phase          `json:"phase"`
	State   MilestoneState `json:"state"`
	StartAt *time.Time     `json:"start_at,omitempty"` // problem_selection 无固定起点
}

// Timeline 按阶段序号推导整条展示时间线
func Timeline(b Boundaries, now time.Time) []Milestone {
	current := Current(b, now).Index()
	starts := map[Phase]*time.Time{
		PhaseAssignment: &b.AssignmentStart,
		PhaseEvaluation: &b.EvaluationStart,
		PhaseResults:    &b.ResultsStart,
	}

	timeline := make([]Milestone, 0, len(order))
	for i, p := range order {
		state := StateLocked
		switch {
		case i < current:
			state = StateCompleted
		case i == current:
			state = StateActive
		}
		timeline = append(timeline, Milestone{Phase: p, State: state, StartAt: starts[p]})
	}
	return timeline
}

// [自证通过] internal/lifecycle/lifecycle.go

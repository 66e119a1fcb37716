package game

import "fmt"

// Phase 模拟的运行阶段
type Phase int

const (
	// PhaseRunning 正在运行
	PhaseRunning Phase = iota
	// PhaseTerminated 已结束，不会再回到 Running
	PhaseTerminated
)

// String 返回阶段的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// TerminationReason 结束原因
type TerminationReason string

const (
	ReasonNone      TerminationReason = ""
	ReasonQuit      TerminationReason = "quit"
	ReasonBallLost  TerminationReason = "ball lost"
	ReasonInvariant TerminationReason = "collision invariant violated"
)

// SimulationState 模拟的可变状态，由 Simulation 独占
// 不使用全局单例：每个 Simulation 实例都有自己的状态
type SimulationState struct {
	Phase  Phase
	Reason TerminationReason
	// Tick 已完成的帧数
	Tick uint64
	// LastHits 上一帧撞到挡板的球数
	LastHits int
	// TotalHits 累计撞击次数
	TotalHits uint64
}

// IsRunning 是否仍在运行
func (s SimulationState) IsRunning() bool {
	return s.Phase == PhaseRunning
}

// terminate 进入 Terminated 阶段，只记录第一次的原因
func (s *SimulationState) terminate(reason TerminationReason) bool {
	if s.Phase == PhaseTerminated {
		return false
	}
	s.Phase = PhaseTerminated
	s.Reason = reason
	return true
}

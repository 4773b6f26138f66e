package ai

// Status is the result of a behavior tree node tick.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusRunning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusRunning:
		return "running"
	}
	return "unknown"
}

// Node is a single node in a behavior tree over a blackboard of type C.
type Node[C any] interface {
	Tick(ctx C) Status
}

// ---- Composite nodes ----

// Selector succeeds as soon as one child succeeds (logical OR).
type Selector[C any] struct {
	Children []Node[C]
}

func (s *Selector[C]) Tick(ctx C) Status {
	for _, c := range s.Children {
		switch c.Tick(ctx) {
		case StatusSuccess:
			return StatusSuccess
		case StatusRunning:
			return StatusRunning
		}
	}
	return StatusFailure
}

// Sequence succeeds only when all children succeed (logical AND).
type Sequence[C any] struct {
	Children []Node[C]
}

func (s *Sequence[C]) Tick(ctx C) Status {
	for _, c := range s.Children {
		switch c.Tick(ctx) {
		case StatusFailure:
			return StatusFailure
		case StatusRunning:
			return StatusRunning
		}
	}
	return StatusSuccess
}

// ---- Leaf nodes ----

// Condition evaluates a boolean predicate.
type Condition[C any] struct {
	Fn func(C) bool
}

func (cn *Condition[C]) Tick(ctx C) Status {
	if cn.Fn(ctx) {
		return StatusSuccess
	}
	return StatusFailure
}

// Action executes an action and returns its status.
type Action[C any] struct {
	Fn func(C) Status
}

func (an *Action[C]) Tick(ctx C) Status {
	return an.Fn(ctx)
}

// ---- Decorator nodes ----

// Inverter negates the result of its child.
type Inverter[C any] struct {
	Child Node[C]
}

func (i *Inverter[C]) Tick(ctx C) Status {
	switch i.Child.Tick(ctx) {
	case StatusSuccess:
		return StatusFailure
	case StatusFailure:
		return StatusSuccess
	default:
		return StatusRunning
	}
}

// ---- Builders ----

// If is shorthand for a Condition leaf.
func If[C any](fn func(C) bool) Node[C] { return &Condition[C]{Fn: fn} }

// Do is shorthand for an Action leaf.
func Do[C any](fn func(C) Status) Node[C] { return &Action[C]{Fn: fn} }

// AnyOf builds a Selector.
func AnyOf[C any](children ...Node[C]) Node[C] { return &Selector[C]{Children: children} }

// AllOf builds a Sequence.
func AllOf[C any](children ...Node[C]) Node[C] { return &Sequence[C]{Children: children} }

// ---- BehaviorTree root ----

// BehaviorTree wraps the root node.
type BehaviorTree[C any] struct {
	Root Node[C]
}

// Tick runs one frame of the behavior tree.
func (bt *BehaviorTree[C]) Tick(ctx C) Status {
	if bt.Root == nil {
		return StatusFailure
	}
	return bt.Root.Tick(ctx)
}

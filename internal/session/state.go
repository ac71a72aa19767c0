package session

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the adaptation state a session owns. It is replaced wholesale at
// the end of each turn so a failed turn leaves it untouched.
type State struct {
	Plan       TopicPlan
	TopicIndex int
	Difficulty Difficulty
	Streaks    Streaks

	LastTopic  string
	LastIntent string

	// AskedQuestions and AskedTopics are in asking order, repeats included.
	AskedQuestions []string
	AskedTopics    []string

	Turn  int
	Phase Phase
}

// Topic returns the committed current topic.
func (s *State) Topic() string {
	if len(s.Plan) == 0 {
		return ""
	}
	return s.Plan[s.TopicIndex]
}

// clone returns a copy whose slices can be appended to independently.
func (s State) clone() State {
	s.AskedQuestions = append([]string(nil), s.AskedQuestions...)
	s.AskedTopics = append([]string(nil), s.AskedTopics...)
	return s
}

func (s *State) recordAsked(topic, question string) {
	s.AskedTopics = append(s.AskedTopics, topic)
	s.AskedQuestions = append(s.AskedQuestions, question)
}

// Status is a read-only summary for display.
type Status struct {
	SessionID  string
	Phase      Phase
	Turn       int
	Topic      string
	TopicIndex int
	TopicCount int
	Difficulty Difficulty
	StreakGood int
	StreakPoor int
}

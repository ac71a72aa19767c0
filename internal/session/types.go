package session

// Difficulty is the question difficulty tier. Ordered easy < medium < hard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyOrder = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) rank() int {
	for i, v := range difficultyOrder {
		if v == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the three tiers.
func (d Difficulty) Valid() bool { return d.rank() >= 0 }

// Harder returns the next tier up, clamped at hard.
func (d Difficulty) Harder() Difficulty {
	r := d.rank()
	if r < 0 {
		return DifficultyEasy
	}
	if r < len(difficultyOrder)-1 {
		r++
	}
	return difficultyOrder[r]
}

// Easier returns the next tier down, clamped at easy.
func (d Difficulty) Easier() Difficulty {
	r := d.rank()
	if r <= 0 {
		return DifficultyEasy
	}
	return difficultyOrder[r-1]
}

// Quality is the evaluator's categorical judgment of an answer.
type Quality string

const (
	QualityGood    Quality = "good"
	QualityPartial Quality = "partial"
	QualityPoor    Quality = "poor"
	QualityUnknown Quality = "unknown"
)

// Level rates a soft skill.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Role identifies the speaker of a history message.
type Role string

const (
	RoleInterviewer Role = "assistant"
	RoleCandidate   Role = "user"
)

// Message is one entry of the conversation history.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// Profile describes the candidate and the interview being run.
type Profile struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Grade      string `json:"grade"`
	Experience string `json:"experience"`
	Language   string `json:"language"`
}

// Evaluation is the structured judgment of the candidate's last answer.
// NextTopic is a recommendation only; membership in the plan is enforced
// by the session.
type Evaluation struct {
	Quality        Quality
	Score          int
	OffTopic       bool
	Hallucination  bool
	NextDifficulty Difficulty
	NextTopic      string
	Intent         string
	// ShouldMoveOn false means stay on the current topic.
	ShouldMoveOn   bool
	NeedHint       bool
	Acknowledgment string
	// Notes are internal diagnostics and never shown to the candidate.
	Notes string
	// Fallback is set when the evaluation replaced unusable model output.
	Fallback bool
}

// QuestionDraft is a generated question with optional hint and the short
// reference answer used for grading and feedback.
type QuestionDraft struct {
	Question    string
	Hint        string
	IdealAnswer string
	Fallback    bool
}

// Verdict is the outcome of a topic consistency check.
type Verdict struct {
	Mismatch bool
	Reason   string
}

// TurnRecord is the write-once log entry of one committed turn.
type TurnRecord struct {
	Turn           int        `json:"turn_id"`
	Topic          string     `json:"topic"`
	Difficulty     Difficulty `json:"difficulty"`
	Score          int        `json:"score_0_100"`
	IdealAnswer    string     `json:"ideal_answer_short"`
	VisibleMessage string     `json:"agent_visible_message"`
	UserMessage    string     `json:"user_message"`
	InternalNotes  string     `json:"internal_thoughts"`
}

// SoftSkills rates communication traits observed during the interview.
type SoftSkills struct {
	Clarity    Level `json:"clarity"`
	Honesty    Level `json:"honesty"`
	Engagement Level `json:"engagement"`
}

// FinalReport is the hiring summary produced once at session end.
type FinalReport struct {
	Grade                string     `json:"grade"`
	HiringRecommendation string     `json:"hiring_recommendation"`
	Confidence           int        `json:"confidence_score_0_100"`
	ConfirmedSkills      []string   `json:"confirmed_skills"`
	KnowledgeGaps        []string   `json:"knowledge_gaps"`
	Corrections          []string   `json:"corrections"`
	SoftSkills           SoftSkills `json:"soft_skills"`
	Roadmap              []string   `json:"roadmap"`
	Fallback             bool       `json:"-"`
}

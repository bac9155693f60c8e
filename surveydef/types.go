package surveydef

// QuestionType quyết định luật validate và hình dạng của câu hỏi.
type QuestionType string

const (
	TypeRange    QuestionType = "RANGE"
	TypeRadio    QuestionType = "RADIO"
	TypeTextarea QuestionType = "TEXTAREA"
)

const (
	MinQuestions = 1
	MaxQuestions = 20
)

// Thẻ validate là luật chung mọi loại câu hỏi; luật theo loại nằm ở validate.go.
type Survey struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title" validate:"notblank,max=120"`
	Description string     `json:"description" validate:"max=500"`
	Questions   []Question `json:"questions" validate:"question_count,dive"`
}

type Question struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title" validate:"notblank,max=120"`
	Description string       `json:"description" validate:"max=300"`
	Required    bool         `json:"required"`
	Type        QuestionType `json:"type" validate:"oneof=RANGE RADIO TEXTAREA"`
	Min         *int         `json:"min,omitempty" validate:"required_if=Type RANGE,excluded_unless=Type RANGE,omitempty,gte=0,lte=100"`
	Max         *int         `json:"max,omitempty" validate:"required_if=Type RANGE,excluded_unless=Type RANGE,omitempty,gte=0,lte=100"`
	Options     []Option     `json:"options" validate:"dive"`
}

// Option là một "detail" của câu hỏi, mang điểm số point.
type Option struct {
	ID            ID     `json:"id"`
	Title         string `json:"title" validate:"notblank,max=120"`
	Explanation   string `json:"explanation"`
	ShortQuestion string `json:"shortQuestion,omitempty" validate:"max=120"`
	Point         string `json:"point"`
}

// Clone returns a deep copy; drafts and baselines never share slices or bounds.
func (s Survey) Clone() Survey {
	out := s
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

func (q Question) Clone() Question {
	out := q
	out.Min = cloneInt(q.Min)
	out.Max = cloneInt(q.Max)
	out.Options = make([]Option, len(q.Options))
	copy(out.Options, q.Options)
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intPtr(v int) *int { return &v }

package surveydef

import "unicode/utf8"

// TypeChangeMode tells SetQuestionType whether the author picked the type
// or the type is being re-applied while loading a persisted survey.
type TypeChangeMode int

const (
	UserEdit TypeChangeMode = iota
	Hydration
)

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Draft is the editable copy of a survey. It is not safe for concurrent use.
type Draft struct {
	survey Survey
}

// NewDraft tạo bản nháp rỗng, id Pending, chưa có câu hỏi.
func NewDraft() *Draft {
	return &Draft{survey: Survey{ID: NewPendingID(), Questions: []Question{}}}
}

// Hydrate builds a draft from a persisted snapshot. Each question's own type is
// re-applied in Hydration mode, so existing options are kept and only clamped.
func Hydrate(snapshot Survey) *Draft {
	d := &Draft{survey: snapshot.Clone()}
	d.assignMissingIDs()
	d.survey.Title = truncate(d.survey.Title, SurveyTitleLimit)
	d.survey.Description = truncate(d.survey.Description, SurveyDescriptionLimit)
	for i := range d.survey.Questions {
		d.SetQuestionType(i, d.survey.Questions[i].Type, Hydration)
	}
	return d
}

// assignMissingIDs cấp id Pending mới cho entity thiếu id (ví dụ JSON không có "id").
func (d *Draft) assignMissingIDs() {
	if d.survey.ID == (ID{}) {
		d.survey.ID = NewPendingID()
	}
	for i := range d.survey.Questions {
		q := &d.survey.Questions[i]
		if q.ID == (ID{}) {
			q.ID = NewPendingID()
		}
		for j := range q.Options {
			if q.Options[j].ID == (ID{}) {
				q.Options[j].ID = NewPendingID()
			}
		}
	}
}

// Survey trả về bản sao sâu, dùng cho validate và diff.
func (d *Draft) Survey() Survey {
	return d.survey.Clone()
}

func (d *Draft) ID() ID             { return d.survey.ID }
func (d *Draft) QuestionCount() int { return len(d.survey.Questions) }

func (d *Draft) OptionCount(qi int) int {
	if !d.hasQuestion(qi) {
		return 0
	}
	return len(d.survey.Questions[qi].Options)
}

func (d *Draft) SetTitle(v string) {
	d.survey.Title = truncate(v, SurveyTitleLimit)
}

func (d *Draft) SetDescription(v string) {
	d.survey.Description = truncate(v, SurveyDescriptionLimit)
}

/* ========== Câu hỏi ========== */

// AddQuestion appends a TEXTAREA question with a Pending id. No-op at MaxQuestions.
func (d *Draft) AddQuestion() bool {
	if len(d.survey.Questions) >= MaxQuestions {
		return false
	}
	d.survey.Questions = append(d.survey.Questions, Question{
		ID:      NewPendingID(),
		Type:    TypeTextarea,
		Options: []Option{},
	})
	return true
}

func (d *Draft) RemoveQuestion(i int) bool {
	if !d.hasQuestion(i) {
		return false
	}
	qs := d.survey.Questions
	d.survey.Questions = append(qs[:i:i], qs[i+1:]...)
	return true
}

// MoveQuestion swaps question i with its neighbour; moving past either end is a no-op.
func (d *Draft) MoveQuestion(i int, dir Direction) bool {
	j := i + int(dir)
	if !d.hasQuestion(i) || !d.hasQuestion(j) || (dir != Up && dir != Down) {
		return false
	}
	qs := d.survey.Questions
	qs[i], qs[j] = qs[j], qs[i]
	return true
}

func (d *Draft) SetQuestionTitle(qi int, v string) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	q.Title = truncate(v, limitsOf(q.Type).Title)
	return true
}

func (d *Draft) SetQuestionDescription(qi int, v string) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	q.Description = truncate(v, limitsOf(q.Type).Description)
	return true
}

func (d *Draft) SetQuestionRequired(qi int, v bool) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	q.Required = v
	return true
}

// SetQuestionBounds gán min/max nguyên trạng; sai phạm (min > max, ngoài 0–100)
// để Validate báo lỗi, không chặn khi đang gõ.
func (d *Draft) SetQuestionBounds(qi int, min, max *int) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	q.Min = cloneInt(min)
	q.Max = cloneInt(max)
	return true
}

// SetQuestionType switches the question to policy t.
//
// In UserEdit mode a real change resets min/max to the type defaults and clears
// the options; picking the current type again is a no-op. In Hydration mode the
// options are preserved and the data is clamped in place.
func (d *Draft) SetQuestionType(qi int, t QuestionType, mode TypeChangeMode) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	p, ok := PolicyFor(t)
	if !ok {
		return false
	}

	switch mode {
	case UserEdit:
		if q.Type == t {
			return false
		}
		q.Type = t
		q.Min = cloneInt(p.DefaultMin)
		q.Max = cloneInt(p.DefaultMax)
		q.Options = []Option{}
	case Hydration:
		q.Type = t
		if p.MinMaxRequired {
			q.Min = clampBound(q.Min)
			q.Max = clampBound(q.Max)
		} else {
			q.Min, q.Max = nil, nil
		}
		if q.Options == nil {
			q.Options = []Option{}
		}
	default:
		return false
	}

	clampQuestion(q, p.Limits)
	return true
}

/* ========== Lựa chọn (detail) ========== */

// AddOption appends an option with a Pending id, up to the policy cap of the question type.
func (d *Draft) AddOption(qi int) bool {
	q := d.question(qi)
	if q == nil {
		return false
	}
	p, ok := PolicyFor(q.Type)
	if !ok || len(q.Options) >= p.MaxOptions {
		return false
	}
	q.Options = append(q.Options, Option{ID: NewPendingID()})
	return true
}

func (d *Draft) RemoveOption(qi, oi int) bool {
	q := d.question(qi)
	if q == nil || oi < 0 || oi >= len(q.Options) {
		return false
	}
	q.Options = append(q.Options[:oi:oi], q.Options[oi+1:]...)
	return true
}

func (d *Draft) SetOptionTitle(qi, oi int, v string) bool {
	return d.editOption(qi, oi, func(o *Option, l Limits) { o.Title = truncate(v, l.OptionTitle) })
}

func (d *Draft) SetOptionExplanation(qi, oi int, v string) bool {
	return d.editOption(qi, oi, func(o *Option, l Limits) { o.Explanation = truncate(v, l.Explanation) })
}

func (d *Draft) SetOptionShortQuestion(qi, oi int, v string) bool {
	return d.editOption(qi, oi, func(o *Option, l Limits) { o.ShortQuestion = truncate(v, l.ShortQuestion) })
}

func (d *Draft) SetOptionPoint(qi, oi int, v string) bool {
	return d.editOption(qi, oi, func(o *Option, l Limits) { o.Point = truncate(v, l.Point) })
}

func (d *Draft) editOption(qi, oi int, fn func(*Option, Limits)) bool {
	q := d.question(qi)
	if q == nil || oi < 0 || oi >= len(q.Options) {
		return false
	}
	fn(&q.Options[oi], limitsOf(q.Type))
	return true
}

func (d *Draft) hasQuestion(i int) bool {
	return i >= 0 && i < len(d.survey.Questions)
}

func (d *Draft) question(i int) *Question {
	if !d.hasQuestion(i) {
		return nil
	}
	return &d.survey.Questions[i]
}

func limitsOf(t QuestionType) Limits {
	if p, ok := PolicyFor(t); ok {
		return p.Limits
	}
	// loại lạ: dùng giới hạn rộng nhất để không cắt mất dữ liệu
	return policies[TypeRange].Limits
}

func clampQuestion(q *Question, l Limits) {
	q.Title = truncate(q.Title, l.Title)
	q.Description = truncate(q.Description, l.Description)
	for i := range q.Options {
		o := &q.Options[i]
		o.Title = truncate(o.Title, l.OptionTitle)
		o.ShortQuestion = truncate(o.ShortQuestion, l.ShortQuestion)
		o.Explanation = truncate(o.Explanation, l.Explanation)
		o.Point = truncate(o.Point, l.Point)
	}
}

func clampBound(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v < PointFloor {
		v = PointFloor
	}
	if v > PointCeiling {
		v = PointCeiling
	}
	return &v
}

// truncate cuts s to at most n runes. n <= 0 means the field is not carried by the type.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

package models

import (
	"strconv"

	"github.com/vnkhanh/eval-survey-server/surveydef"
)

func wireID(id uint) surveydef.ID {
	return surveydef.PersistedID(strconv.FormatUint(uint64(id), 10))
}

// ToDefinition converts a survey loaded with its questions and details
// (already ordered by position) into the snapshot shape editors work on.
func (s Survey) ToDefinition() surveydef.Survey {
	out := surveydef.Survey{
		ID:          wireID(s.ID),
		Title:       s.Title,
		Description: s.Description,
		Questions:   make([]surveydef.Question, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		out.Questions = append(out.Questions, q.ToDefinition())
	}
	return out
}

func (q Question) ToDefinition() surveydef.Question {
	out := surveydef.Question{
		ID:          wireID(q.ID),
		Title:       q.Title,
		Description: q.Description,
		Required:    q.Required,
		Type:        surveydef.QuestionType(q.Type),
		Options:     make([]surveydef.Option, 0, len(q.Details)),
	}
	if out.Type == surveydef.TypeRange {
		out.Min, out.Max = copyInt(q.Min), copyInt(q.Max)
	}
	for _, d := range q.Details {
		out.Options = append(out.Options, surveydef.Option{
			ID:            wireID(d.ID),
			Title:         d.Title,
			Explanation:   d.Explanation,
			ShortQuestion: d.ShortQuestion,
			Point:         d.Point,
		})
	}
	return out
}

// NewSurvey dựng cây Survey/Question/Detail từ payload tạo mới; Create một lần là đủ.
func NewSurvey(dto surveydef.CreateSurveyDTO) Survey {
	s := Survey{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      StatusActive,
		Version:     1,
		Questions:   make([]Question, 0, len(dto.Questions)),
	}
	for i, qd := range dto.Questions {
		q := Question{
			Title:       qd.Title,
			Description: qd.Description,
			Type:        string(qd.Type),
			Required:    qd.Required,
			Position:    i,
		}
		if qd.Type == surveydef.TypeRange {
			q.Min, q.Max = copyInt(qd.Min), copyInt(qd.Max)
		}
		if qd.Type != surveydef.TypeTextarea {
			for j, od := range qd.Options {
				q.Details = append(q.Details, Detail{
					Title:         od.Title,
					Explanation:   od.Explanation,
					ShortQuestion: od.ShortQuestion,
					Point:         od.Point,
					Position:      j,
				})
			}
		}
		s.Questions = append(s.Questions, q)
	}
	return s
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

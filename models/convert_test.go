package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/eval-survey-server/surveydef"
)

func intp(v int) *int { return &v }

func TestNewSurveyFromCreationPayload(t *testing.T) {
	dto := surveydef.CreateSurveyDTO{
		Title: "Tháng 10",
		Questions: []surveydef.CreateQuestionDTO{
			{Type: surveydef.TypeRange, Title: "Điểm", Min: intp(0), Max: intp(10),
				Options: []surveydef.CreateOptionDTO{{Title: "Thấp", Point: "0-5"}, {Title: "Cao", Point: "6-10"}}},
			// min/max và options lạc loại bị bỏ qua
			{Type: surveydef.TypeTextarea, Title: "Góp ý", Min: intp(1),
				Options: []surveydef.CreateOptionDTO{{Title: "x"}}},
		},
	}

	s := NewSurvey(dto)
	assert.Equal(t, StatusActive, s.Status)
	require.Len(t, s.Questions, 2)
	assert.Equal(t, 1, s.Questions[1].Position)
	assert.Nil(t, s.Questions[1].Min)
	assert.Empty(t, s.Questions[1].Details)
	require.Len(t, s.Questions[0].Details, 2)
	assert.Equal(t, 1, s.Questions[0].Details[1].Position)

	// the caller's bounds are not aliased
	*dto.Questions[0].Min = 7
	assert.Equal(t, 0, *s.Questions[0].Min)
}

func TestToDefinition(t *testing.T) {
	s := Survey{
		ID:    12,
		Title: "Tháng 10",
		Questions: []Question{
			{ID: 3, Type: "RADIO", Title: "Thái độ", Min: intp(1), Details: []Detail{
				{ID: 40, Title: "Tốt", ShortQuestion: "T", Point: "5"},
			}},
			{ID: 4, Type: "TEXTAREA", Title: "Góp ý"},
		},
	}

	def := s.ToDefinition()
	assert.Equal(t, "12", def.ID.Remote())
	assert.Equal(t, "3", def.Questions[0].ID.Remote())
	assert.Nil(t, def.Questions[0].Min)
	assert.Equal(t, "40", def.Questions[0].Options[0].ID.Remote())
	assert.Equal(t, []surveydef.Option{}, def.Questions[1].Options)
	assert.True(t, surveydef.Validate(def).Valid)
}

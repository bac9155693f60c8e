package surveydef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedRadio(id string, optionIDs ...string) Question {
	q := Question{
		ID:      PersistedID(id),
		Title:   "Thái độ làm việc",
		Type:    TypeRadio,
		Options: []Option{},
	}
	for _, oid := range optionIDs {
		q.Options = append(q.Options, Option{
			ID:            PersistedID(oid),
			Title:         "Mức " + oid,
			ShortQuestion: "Q" + oid,
			Point:         "1",
		})
	}
	return q
}

func TestAddQuestionDefaultsAndCap(t *testing.T) {
	d := NewDraft()
	require.True(t, d.AddQuestion())

	q := d.Survey().Questions[0]
	assert.True(t, q.ID.IsPending())
	assert.Equal(t, TypeTextarea, q.Type)
	assert.Nil(t, q.Min)
	assert.Empty(t, q.Options)

	for d.QuestionCount() < MaxQuestions {
		require.True(t, d.AddQuestion())
	}
	assert.False(t, d.AddQuestion())
	assert.Equal(t, MaxQuestions, d.QuestionCount())
}

func TestRemoveAndMoveQuestion(t *testing.T) {
	d := NewDraft()
	for i := 0; i < 3; i++ {
		d.AddQuestion()
		d.SetQuestionTitle(i, string(rune('A'+i)))
	}

	assert.False(t, d.MoveQuestion(0, Up))
	assert.False(t, d.MoveQuestion(2, Down))
	assert.False(t, d.MoveQuestion(5, Up))

	require.True(t, d.MoveQuestion(0, Down))
	assert.Equal(t, []string{"B", "A", "C"}, titles(d.Survey()))

	require.True(t, d.MoveQuestion(2, Up))
	assert.Equal(t, []string{"B", "C", "A"}, titles(d.Survey()))

	assert.False(t, d.RemoveQuestion(-1))
	assert.False(t, d.RemoveQuestion(3))
	require.True(t, d.RemoveQuestion(1))
	assert.Equal(t, []string{"B", "A"}, titles(d.Survey()))
}

func TestAddOptionFollowsPolicyCap(t *testing.T) {
	d := NewDraft()
	d.AddQuestion()

	// TEXTAREA carries no options
	assert.False(t, d.AddOption(0))

	d.SetQuestionType(0, TypeRadio, UserEdit)
	for i := 0; i < 10; i++ {
		require.True(t, d.AddOption(0))
	}
	assert.False(t, d.AddOption(0))
	assert.Equal(t, 10, d.OptionCount(0))

	for _, o := range d.Survey().Questions[0].Options {
		assert.True(t, o.ID.IsPending())
	}

	require.True(t, d.RemoveOption(0, 3))
	assert.Equal(t, 9, d.OptionCount(0))
	assert.False(t, d.RemoveOption(0, 9))
	assert.False(t, d.AddOption(4))
}

func TestSetQuestionTypeUserEditResets(t *testing.T) {
	d := Hydrate(Survey{
		ID:        PersistedID("1"),
		Title:     "Đánh giá tháng",
		Questions: []Question{persistedRadio("q1", "d1", "d2", "d3")},
	})

	require.True(t, d.SetQuestionType(0, TypeRange, UserEdit))
	q := d.Survey().Questions[0]
	assert.Equal(t, TypeRange, q.Type)
	assert.Empty(t, q.Options)
	require.NotNil(t, q.Min)
	require.NotNil(t, q.Max)
	assert.Equal(t, 0, *q.Min)
	assert.Equal(t, 100, *q.Max)

	require.True(t, d.SetQuestionType(0, TypeTextarea, UserEdit))
	q = d.Survey().Questions[0]
	assert.Nil(t, q.Min)
	assert.Nil(t, q.Max)
	assert.Empty(t, q.Options)

	// re-selecting the current type changes nothing
	assert.False(t, d.SetQuestionType(0, TypeTextarea, UserEdit))
	assert.False(t, d.SetQuestionType(0, "CHECKBOX", UserEdit))
}

func TestHydrationPreservesOptionsThenUserEditClears(t *testing.T) {
	snapshot := Survey{
		ID:        PersistedID("1"),
		Title:     "Đánh giá tháng",
		Questions: []Question{persistedRadio("q1", "d1", "d2", "d3")},
	}
	d := Hydrate(snapshot)
	require.True(t, d.SetQuestionType(0, TypeRadio, Hydration))
	assert.Len(t, d.Survey().Questions[0].Options, 3)

	require.True(t, d.SetQuestionType(0, TypeTextarea, UserEdit))
	assert.Empty(t, d.Survey().Questions[0].Options)

	// snapshot is untouched
	assert.Len(t, snapshot.Questions[0].Options, 3)
}

func TestHydrationClampsInPlace(t *testing.T) {
	lo, hi := -5, 250
	zero := 0
	long := strings.Repeat("đ", 900)
	d := Hydrate(Survey{
		ID:    PersistedID("1"),
		Title: strings.Repeat("x", 200),
		Questions: []Question{
			{
				ID: PersistedID("q1"), Title: "Range", Type: TypeRange, Min: &lo, Max: &hi,
				Options: []Option{{ID: PersistedID("d1"), Title: "A", Explanation: long, Point: "0-5"}},
			},
			{ID: PersistedID("q2"), Title: "Text", Type: TypeTextarea, Min: &zero},
		},
	})
	s := d.Survey()
	assert.Len(t, []rune(s.Title), SurveyTitleLimit)

	assert.Equal(t, 0, *s.Questions[0].Min)
	assert.Equal(t, 100, *s.Questions[0].Max)
	assert.Len(t, []rune(s.Questions[0].Options[0].Explanation), 800)
	assert.Len(t, s.Questions[0].Options, 1)

	assert.Nil(t, s.Questions[1].Min)
	assert.True(t, Validate(s).Valid)
}

func TestSettersTruncateOnWrite(t *testing.T) {
	d := NewDraft()
	d.AddQuestion()
	d.SetQuestionType(0, TypeRadio, UserEdit)
	d.AddOption(0)

	d.SetTitle(strings.Repeat("a", 130))
	d.SetDescription(strings.Repeat("b", 600))
	d.SetQuestionTitle(0, strings.Repeat("c", 121))
	d.SetQuestionDescription(0, strings.Repeat("d", 301))
	d.SetOptionExplanation(0, 0, strings.Repeat("e", 301))
	d.SetOptionPoint(0, 0, "123456789")
	d.SetOptionShortQuestion(0, 0, strings.Repeat("ư", 130))

	s := d.Survey()
	assert.Len(t, s.Title, 120)
	assert.Len(t, s.Description, 500)
	assert.Len(t, s.Questions[0].Title, 120)
	assert.Len(t, s.Questions[0].Description, 300)
	assert.Len(t, s.Questions[0].Options[0].Explanation, 300)
	assert.Equal(t, "1234567", s.Questions[0].Options[0].Point)
	assert.Len(t, []rune(s.Questions[0].Options[0].ShortQuestion), 120)

	assert.False(t, d.SetOptionTitle(0, 1, "x"))
	assert.False(t, d.SetQuestionRequired(3, true))
}

func TestSurveyReturnsCopy(t *testing.T) {
	d := NewDraft()
	d.AddQuestion()
	d.SetQuestionType(0, TypeRange, UserEdit)

	s := d.Survey()
	*s.Questions[0].Min = 99
	s.Questions[0].Title = "changed"

	again := d.Survey()
	assert.Equal(t, 0, *again.Questions[0].Min)
	assert.Empty(t, again.Questions[0].Title)
}

func titles(s Survey) []string {
	out := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = q.Title
	}
	return out
}

func TestHydrateGivesMissingIDsFreshPendingIDs(t *testing.T) {
	doc := Survey{
		Title: "Nhập từ file",
		Questions: []Question{
			{Title: "Câu 1", Type: TypeTextarea},
			{Title: "Câu 2", Type: TypeRadio, Options: []Option{{Title: "A", ShortQuestion: "A", Point: "1"}}},
		},
	}
	s := Hydrate(doc).Survey()

	assert.True(t, s.ID.IsPending())
	assert.NotEqual(t, ID{}, s.ID)
	q0, q1 := s.Questions[0].ID, s.Questions[1].ID
	assert.NotEqual(t, ID{}, q0)
	assert.NotEqual(t, q0, q1)
	assert.NotEqual(t, ID{}, s.Questions[1].Options[0].ID)

	// id đã có giữ nguyên
	kept := Hydrate(Survey{ID: PersistedID("9"), Questions: []Question{persistedRadio("q1", "d1")}}).Survey()
	assert.Equal(t, PersistedID("9"), kept.ID)
	assert.Equal(t, PersistedID("d1"), kept.Questions[0].Options[0].ID)
}

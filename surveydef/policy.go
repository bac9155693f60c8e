package surveydef

// Limits are the hard caps applied to text fields; values over a cap are truncated on write.
type Limits struct {
	Title         int
	Description   int
	OptionTitle   int
	ShortQuestion int
	Explanation   int
	Point         int
}

const (
	SurveyTitleLimit       = 120
	SurveyDescriptionLimit = 500
)

// Policy gom toàn bộ luật theo loại câu hỏi, mọi thành phần khác đều tra bảng này.
type Policy struct {
	Type                  QuestionType
	MinMaxRequired        bool
	MinOptions            int
	MaxOptions            int
	ShortQuestionRequired bool
	ValidPoint            func(string) bool
	Limits                Limits
	// bounds mặc định khi người dùng đổi loại câu hỏi
	DefaultMin *int
	DefaultMax *int
}

// AllowsOptions reports whether the type carries options at all.
func (p Policy) AllowsOptions() bool { return p.MaxOptions > 0 }

var policies = map[QuestionType]Policy{
	TypeTextarea: {
		Type:       TypeTextarea,
		MinOptions: 0,
		MaxOptions: 0,
		ValidPoint: func(string) bool { return false },
		Limits: Limits{
			Title:       120,
			Description: 300,
		},
	},
	TypeRadio: {
		Type:                  TypeRadio,
		MinOptions:            1,
		MaxOptions:            10,
		ShortQuestionRequired: true,
		ValidPoint:            validRadioPoint,
		Limits: Limits{
			Title:         120,
			Description:   300,
			OptionTitle:   120,
			ShortQuestion: 120,
			Explanation:   300,
			Point:         7,
		},
	},
	TypeRange: {
		Type:           TypeRange,
		MinMaxRequired: true,
		MinOptions:     0,
		MaxOptions:     10,
		ValidPoint:     validRangePoint,
		Limits: Limits{
			Title:         120,
			Description:   300,
			OptionTitle:   120,
			ShortQuestion: 120,
			Explanation:   800,
			Point:         60,
		},
		DefaultMin: intPtr(PointFloor),
		DefaultMax: intPtr(PointCeiling),
	},
}

// PolicyFor returns the rules for t; ok is false for an unknown type.
func PolicyFor(t QuestionType) (Policy, bool) {
	p, ok := policies[t]
	return p, ok
}

// QuestionTypes lists the supported types in a stable order.
func QuestionTypes() []QuestionType {
	return []QuestionType{TypeRange, TypeRadio, TypeTextarea}
}

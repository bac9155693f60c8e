package surveydef

// Wire shapes exchanged with storage. Field presence is part of the contract:
// min/max only appear for RANGE, options and removal lists are always arrays.

type CreateSurveyDTO struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Questions   []CreateQuestionDTO `json:"questions" binding:"required,dive"`
}

type CreateQuestionDTO struct {
	Type        QuestionType      `json:"type" binding:"required"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Required    bool              `json:"required"`
	Min         *int              `json:"min,omitempty"`
	Max         *int              `json:"max,omitempty"`
	Options     []CreateOptionDTO `json:"options"`
}

type CreateOptionDTO struct {
	Title         string `json:"title"`
	Explanation   string `json:"explanation"`
	ShortQuestion string `json:"shortQuestion,omitempty"`
	Point         string `json:"point"`
}

type UpdateSurveyDTO struct {
	Title             string              `json:"title" binding:"required"`
	Description       string              `json:"description"`
	Questions         []UpdateQuestionDTO `json:"questions" binding:"required,dive"`
	RemoveQuestionIDs []string            `json:"removeQuestionIds"`
}

type UpdateQuestionDTO struct {
	ID              string            `json:"id,omitempty"`
	Type            QuestionType      `json:"type" binding:"required"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Required        bool              `json:"required"`
	Min             *int              `json:"min,omitempty"`
	Max             *int              `json:"max,omitempty"`
	Options         []UpdateOptionDTO `json:"options"`
	RemoveDetailIDs []string          `json:"removeDetailIds"`
}

type UpdateOptionDTO struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Explanation   string `json:"explanation"`
	ShortQuestion string `json:"shortQuestion,omitempty"`
	Point         string `json:"point"`
}

// FromCreationPayload dựng lại Survey (toàn id Pending) để phía storage validate payload.
func FromCreationPayload(dto CreateSurveyDTO) Survey {
	s := Survey{
		ID:          NewPendingID(),
		Title:       dto.Title,
		Description: dto.Description,
		Questions:   make([]Question, 0, len(dto.Questions)),
	}
	for _, qd := range dto.Questions {
		q := Question{
			ID:          NewPendingID(),
			Title:       qd.Title,
			Description: qd.Description,
			Required:    qd.Required,
			Type:        qd.Type,
			Min:         cloneInt(qd.Min),
			Max:         cloneInt(qd.Max),
			Options:     make([]Option, 0, len(qd.Options)),
		}
		for _, od := range qd.Options {
			q.Options = append(q.Options, Option{
				ID:            NewPendingID(),
				Title:         od.Title,
				Explanation:   od.Explanation,
				ShortQuestion: od.ShortQuestion,
				Point:         od.Point,
			})
		}
		s.Questions = append(s.Questions, q)
	}
	return s
}

// FromUpdatePayload mirrors FromCreationPayload; entries carrying an id become Persisted.
func FromUpdatePayload(id ID, dto UpdateSurveyDTO) Survey {
	s := Survey{
		ID:          id,
		Title:       dto.Title,
		Description: dto.Description,
		Questions:   make([]Question, 0, len(dto.Questions)),
	}
	for _, qd := range dto.Questions {
		q := Question{
			ID:          wireID(qd.ID),
			Title:       qd.Title,
			Description: qd.Description,
			Required:    qd.Required,
			Type:        qd.Type,
			Min:         cloneInt(qd.Min),
			Max:         cloneInt(qd.Max),
			Options:     make([]Option, 0, len(qd.Options)),
		}
		for _, od := range qd.Options {
			q.Options = append(q.Options, Option{
				ID:            wireID(od.ID),
				Title:         od.Title,
				Explanation:   od.Explanation,
				ShortQuestion: od.ShortQuestion,
				Point:         od.Point,
			})
		}
		s.Questions = append(s.Questions, q)
	}
	return s
}

func wireID(v string) ID {
	if v == "" {
		return NewPendingID()
	}
	return PersistedID(v)
}

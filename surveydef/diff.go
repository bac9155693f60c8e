package surveydef

import "fmt"

// BuildCreationPayload converts a never-saved draft into the creation shape.
// No ids are emitted.
func BuildCreationPayload(s Survey) CreateSurveyDTO {
	out := CreateSurveyDTO{
		Title:       s.Title,
		Description: s.Description,
		Questions:   make([]CreateQuestionDTO, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		qd := CreateQuestionDTO{
			Type:        q.Type,
			Title:       q.Title,
			Description: q.Description,
			Required:    q.Required,
			Options:     []CreateOptionDTO{},
		}
		if q.Type == TypeRange {
			qd.Min, qd.Max = cloneInt(q.Min), cloneInt(q.Max)
		}
		if carriesOptions(q.Type) {
			for _, o := range q.Options {
				qd.Options = append(qd.Options, CreateOptionDTO{
					Title:         o.Title,
					Explanation:   o.Explanation,
					ShortQuestion: o.ShortQuestion,
					Point:         o.Point,
				})
			}
		}
		out.Questions = append(out.Questions, qd)
	}
	return out
}

// BuildUpdatePayload computes the instructions that turn original into current.
//
// Only Persisted ids take part in the removal sets, so Pending ids never reach
// removeQuestionIds or removeDetailIds. Input that fails CheckConsistency is a
// programming error and panics.
func BuildUpdatePayload(original, current Survey) UpdateSurveyDTO {
	if err := CheckConsistency(original, current); err != nil {
		panic(err)
	}

	origQuestions := make(map[string]Question, len(original.Questions))
	for _, q := range original.Questions {
		if q.ID.IsPersisted() {
			origQuestions[q.ID.Remote()] = q
		}
	}

	out := UpdateSurveyDTO{
		Title:             current.Title,
		Description:       current.Description,
		Questions:         make([]UpdateQuestionDTO, 0, len(current.Questions)),
		RemoveQuestionIDs: removedIDs(questionIDs(original.Questions), questionIDs(current.Questions)),
	}

	for _, q := range current.Questions {
		qd := UpdateQuestionDTO{
			ID:              q.ID.Remote(),
			Type:            q.Type,
			Title:           q.Title,
			Description:     q.Description,
			Required:        q.Required,
			Options:         []UpdateOptionDTO{},
			RemoveDetailIDs: []string{},
		}
		if q.Type == TypeRange {
			qd.Min, qd.Max = cloneInt(q.Min), cloneInt(q.Max)
		}
		if carriesOptions(q.Type) {
			for _, o := range q.Options {
				qd.Options = append(qd.Options, UpdateOptionDTO{
					ID:            o.ID.Remote(),
					Title:         o.Title,
					Explanation:   o.Explanation,
					ShortQuestion: o.ShortQuestion,
					Point:         o.Point,
				})
			}
			if orig, ok := origQuestions[q.ID.Remote()]; ok && q.ID.IsPersisted() {
				qd.RemoveDetailIDs = removedIDs(optionIDs(orig.Options), optionIDs(q.Options))
			}
		}
		out.Questions = append(out.Questions, qd)
	}
	return out
}

// CheckConsistency reports input BuildUpdatePayload cannot diff: a Persisted
// question or option in current that does not exist in original.
func CheckConsistency(original, current Survey) error {
	origQuestions := make(map[string]Question, len(original.Questions))
	for _, q := range original.Questions {
		if q.ID.IsPersisted() {
			origQuestions[q.ID.Remote()] = q
		}
	}
	for i, q := range current.Questions {
		if !q.ID.IsPersisted() {
			for j, o := range q.Options {
				if o.ID.IsPersisted() {
					return fmt.Errorf("surveydef: questions[%d].options[%d]: persisted option %q under a new question", i, j, o.ID.Remote())
				}
			}
			continue
		}
		orig, ok := origQuestions[q.ID.Remote()]
		if !ok {
			return fmt.Errorf("surveydef: questions[%d]: persisted question %q not in original", i, q.ID.Remote())
		}
		known := make(map[string]bool, len(orig.Options))
		for _, id := range optionIDs(orig.Options) {
			known[id] = true
		}
		for j, o := range q.Options {
			if o.ID.IsPersisted() && !known[o.ID.Remote()] {
				return fmt.Errorf("surveydef: questions[%d].options[%d]: persisted option %q not in original", i, j, o.ID.Remote())
			}
		}
	}
	return nil
}

func carriesOptions(t QuestionType) bool {
	p, ok := PolicyFor(t)
	return ok && p.AllowsOptions()
}

func questionIDs(qs []Question) []string {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		if q.ID.IsPersisted() {
			ids = append(ids, q.ID.Remote())
		}
	}
	return ids
}

func optionIDs(opts []Option) []string {
	ids := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.ID.IsPersisted() {
			ids = append(ids, o.ID.Remote())
		}
	}
	return ids
}

// removedIDs = before \ after, giữ thứ tự của before.
func removedIDs(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, id := range after {
		keep[id] = true
	}
	out := []string{}
	for _, id := range before {
		if !keep[id] {
			out = append(out, id)
			keep[id] = true
		}
	}
	return out
}

package surveydef

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type ViolationKind string

const (
	KindRequired              ViolationKind = "required"
	KindTooLong               ViolationKind = "too_long"
	KindQuestionCount         ViolationKind = "question_count"
	KindUnknownType           ViolationKind = "unknown_type"
	KindOptionCount           ViolationKind = "option_count"
	KindBoundsRequired        ViolationKind = "bounds_required"
	KindBoundsForbidden       ViolationKind = "bounds_forbidden"
	KindBoundsOutOfRange      ViolationKind = "bounds_out_of_range"
	KindBoundsOrder           ViolationKind = "bounds_order"
	KindShortQuestionRequired ViolationKind = "short_question_required"
	KindPointFormat           ViolationKind = "point_format"
	KindDuplicateID           ViolationKind = "duplicate_id"
)

// Violation chỉ ra trường bị lỗi, ví dụ "questions[2].options[0].point".
type Violation struct {
	Path string        `json:"path"`
	Kind ViolationKind `json:"kind"`
}

func (v Violation) String() string { return v.Path + ": " + string(v.Kind) }

type Result struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// Has reports whether a violation of kind exists at path.
func (r Result) Has(path string, kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v.Path == path && v.Kind == kind {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// path theo tên json: "questions[2].options[0].point"
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("question_count", fmt.Sprintf("min=%d,max=%d", MinQuestions, MaxQuestions))
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(surveyRules, Survey{})
	v.RegisterStructValidation(questionRules, Question{})
	return v
}

// tagKinds maps a failed validator tag to its violation kind. Struct level
// rules report the kind name directly as the tag.
var tagKinds = map[string]ViolationKind{
	"notblank":        KindRequired,
	"max":             KindTooLong,
	"question_count":  KindQuestionCount,
	"oneof":           KindUnknownType,
	"required_if":     KindBoundsRequired,
	"excluded_unless": KindBoundsForbidden,
	"gte":             KindBoundsOutOfRange,
	"lte":             KindBoundsOutOfRange,
}

// Validate checks s against the field, question and survey level rules.
// It never modifies s.
func Validate(s Survey) Result {
	err := validate.Struct(s)
	if err == nil {
		return Result{Valid: true, Violations: []Violation{}}
	}

	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		// chỉ xảy ra khi truyền sai kiểu vào validator
		panic(err)
	}
	out := make([]Violation, 0, len(fes))
	for _, fe := range fes {
		out = append(out, toViolation(fe))
	}
	return Result{Valid: false, Violations: out}
}

func toViolation(fe validator.FieldError) Violation {
	path := fe.Namespace()
	// bỏ tiền tố tên kiểu "Survey."
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	kind, ok := tagKinds[fe.Tag()]
	if !ok {
		kind = ViolationKind(fe.Tag())
	}
	return Violation{Path: path, Kind: kind}
}

func surveyRules(sl validator.StructLevel) {
	s := sl.Current().Interface().(Survey)
	seen := map[string]bool{}
	for i, q := range s.Questions {
		id := q.ID.Remote()
		if id == "" {
			continue
		}
		if seen[id] {
			report(sl, fmt.Sprintf("questions[%d].id", i), KindDuplicateID)
		}
		seen[id] = true
	}
}

// questionRules applies the per-type rules read from the policy table.
func questionRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	p, ok := PolicyFor(q.Type)
	if !ok {
		return
	}

	if p.MinMaxRequired && q.Min != nil && q.Max != nil && *q.Min > *q.Max {
		report(sl, "min", KindBoundsOrder)
	}
	if n := len(q.Options); n < p.MinOptions || n > p.MaxOptions {
		report(sl, "options", KindOptionCount)
	}
	if !p.AllowsOptions() {
		return
	}

	seen := map[string]bool{}
	for j, o := range q.Options {
		op := fmt.Sprintf("options[%d]", j)
		if id := o.ID.Remote(); id != "" {
			if seen[id] {
				report(sl, op+".id", KindDuplicateID)
			}
			seen[id] = true
		}
		if utf8.RuneCountInString(o.Explanation) > p.Limits.Explanation {
			report(sl, op+".explanation", KindTooLong)
		}
		if p.ShortQuestionRequired && strings.TrimSpace(o.ShortQuestion) == "" {
			report(sl, op+".shortQuestion", KindShortQuestionRequired)
		}
		switch {
		case utf8.RuneCountInString(o.Point) > p.Limits.Point:
			report(sl, op+".point", KindTooLong)
		case !p.ValidPoint(o.Point):
			report(sl, op+".point", KindPointFormat)
		}
	}
}

func report(sl validator.StructLevel, path string, kind ViolationKind) {
	sl.ReportError(nil, path, path, string(kind), "")
}

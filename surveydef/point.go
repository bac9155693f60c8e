package surveydef

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	reRadioPoint  = regexp.MustCompile(`^[0-9]{1,7}$`)
	reRangeSingle = regexp.MustCompile(`^[0-9]{1,3}$`)
	reRangePair   = regexp.MustCompile(`^\s*(\d{1,3})\s*-\s*(\d{1,3})\s*$`)
)

const (
	PointFloor   = 0
	PointCeiling = 100
)

var ErrPointFormat = errors.New("invalid point format")

// Point is the typed reading of an option's point string.
// For a single value From == To and IsRange is false.
type Point struct {
	From    int
	To      int
	IsRange bool
}

// ParsePoint đọc point theo luật của loại câu hỏi.
func ParsePoint(t QuestionType, raw string) (Point, error) {
	switch t {
	case TypeRadio:
		if !reRadioPoint.MatchString(raw) {
			return Point{}, ErrPointFormat
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Point{}, ErrPointFormat
		}
		return Point{From: v, To: v}, nil
	case TypeRange:
		if reRangeSingle.MatchString(raw) {
			v, _ := strconv.Atoi(raw)
			return Point{From: v, To: v}, nil
		}
		m := reRangePair.FindStringSubmatch(raw)
		if m == nil {
			return Point{}, ErrPointFormat
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		if a < PointFloor || b > PointCeiling || a > b {
			return Point{}, ErrPointFormat
		}
		return Point{From: a, To: b, IsRange: true}, nil
	}
	return Point{}, ErrPointFormat
}

func validRadioPoint(raw string) bool {
	_, err := ParsePoint(TypeRadio, raw)
	return err == nil
}

func validRangePoint(raw string) bool {
	_, err := ParsePoint(TypeRange, raw)
	return err == nil
}

func (p Point) String() string {
	if !p.IsRange {
		return strconv.Itoa(p.From)
	}
	return strconv.Itoa(p.From) + "-" + strconv.Itoa(p.To)
}

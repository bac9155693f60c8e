package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/vnkhanh/eval-survey-server/models"
	"github.com/vnkhanh/eval-survey-server/surveydef"
)

var errNotFound = errors.New("survey not found")

// payloadError: payload tham chiếu id không thuộc survey, hoặc bỏ sót entity đã lưu.
type payloadError struct {
	msg string
}

func (e *payloadError) Error() string { return e.msg }

func foreign(kind, raw string) error {
	return &payloadError{msg: fmt.Sprintf("%s %q không thuộc khảo sát này", kind, raw)}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// loadSnapshot nạp survey cùng câu hỏi và lựa chọn theo đúng thứ tự position.
func loadSnapshot(db *gorm.DB, id uint) (models.Survey, error) {
	var s models.Survey
	err := db.
		Where("id = ? AND status <> ?", id, models.StatusDeleted).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Questions.Details", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Survey{}, errNotFound
	}
	return s, err
}

// applyUpdate áp dụng UpdateSurveyDTO trong transaction tx. Mọi câu hỏi và lựa chọn
// đã lưu phải được payload giữ lại hoặc liệt kê trong danh sách xoá.
func applyUpdate(tx *gorm.DB, surveyID uint, dto surveydef.UpdateSurveyDTO) error {
	var existing []models.Question
	if err := tx.Where("survey_id = ?", surveyID).Preload("Details").Find(&existing).Error; err != nil {
		return err
	}
	byID := make(map[uint]*models.Question, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	removed := map[uint]bool{}
	for _, raw := range dto.RemoveQuestionIDs {
		id, ok := parseID(raw)
		if !ok || byID[id] == nil {
			return foreign("câu hỏi", raw)
		}
		removed[id] = true
	}
	if len(removed) > 0 {
		ids := make([]uint, 0, len(removed))
		for id := range removed {
			ids = append(ids, id)
		}
		if err := tx.Where("question_id IN ?", ids).Delete(&models.Detail{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ? AND id IN ?", surveyID, ids).Delete(&models.Question{}).Error; err != nil {
			return err
		}
	}

	kept := map[uint]bool{}
	for i, qd := range dto.Questions {
		var prev *models.Question
		if qd.ID != "" {
			id, ok := parseID(qd.ID)
			if !ok || byID[id] == nil || removed[id] || kept[id] {
				return foreign("câu hỏi", qd.ID)
			}
			prev = byID[id]
			kept[id] = true
		}
		qid, err := saveQuestion(tx, surveyID, prev, i, qd)
		if err != nil {
			return err
		}
		if err := applyDetails(tx, qid, prev, qd); err != nil {
			return err
		}
	}

	for id := range byID {
		if !removed[id] && !kept[id] {
			return &payloadError{msg: fmt.Sprintf("payload bỏ sót câu hỏi %d", id)}
		}
	}

	return tx.Model(&models.Survey{}).Where("id = ?", surveyID).Updates(map[string]interface{}{
		"title":       dto.Title,
		"description": dto.Description,
		"version":     gorm.Expr("version + 1"),
	}).Error
}

func saveQuestion(tx *gorm.DB, surveyID uint, prev *models.Question, pos int, qd surveydef.UpdateQuestionDTO) (uint, error) {
	var lo, hi *int
	if qd.Type == surveydef.TypeRange {
		lo, hi = qd.Min, qd.Max
	}

	if prev == nil {
		q := models.Question{
			SurveyID:    surveyID,
			Title:       qd.Title,
			Description: qd.Description,
			Type:        string(qd.Type),
			Required:    qd.Required,
			Min:         lo,
			Max:         hi,
			Position:    pos,
		}
		if err := tx.Omit("Details").Create(&q).Error; err != nil {
			return 0, err
		}
		return q.ID, nil
	}

	// map để min/max = nil được ghi thành NULL
	err := tx.Model(&models.Question{}).Where("id = ?", prev.ID).Updates(map[string]interface{}{
		"title":       qd.Title,
		"description": qd.Description,
		"type":        string(qd.Type),
		"required":    qd.Required,
		"min":         lo,
		"max":         hi,
		"position":    pos,
	}).Error
	return prev.ID, err
}

func applyDetails(tx *gorm.DB, questionID uint, prev *models.Question, qd surveydef.UpdateQuestionDTO) error {
	// TEXTAREA không có lựa chọn: xoá sạch
	if qd.Type == surveydef.TypeTextarea {
		return tx.Where("question_id = ?", questionID).Delete(&models.Detail{}).Error
	}

	owned := map[uint]bool{}
	if prev != nil {
		for _, d := range prev.Details {
			owned[d.ID] = true
		}
	}

	removed := map[uint]bool{}
	for _, raw := range qd.RemoveDetailIDs {
		id, ok := parseID(raw)
		if !ok || !owned[id] {
			return foreign("lựa chọn", raw)
		}
		removed[id] = true
	}
	if len(removed) > 0 {
		ids := make([]uint, 0, len(removed))
		for id := range removed {
			ids = append(ids, id)
		}
		if err := tx.Where("question_id = ? AND id IN ?", questionID, ids).Delete(&models.Detail{}).Error; err != nil {
			return err
		}
	}

	kept := map[uint]bool{}
	for j, od := range qd.Options {
		if od.ID == "" {
			d := models.Detail{
				QuestionID:    questionID,
				Title:         od.Title,
				Explanation:   od.Explanation,
				ShortQuestion: od.ShortQuestion,
				Point:         od.Point,
				Position:      j,
			}
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
			continue
		}

		id, ok := parseID(od.ID)
		if !ok || !owned[id] || removed[id] || kept[id] {
			return foreign("lựa chọn", od.ID)
		}
		kept[id] = true
		if err := tx.Model(&models.Detail{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":          od.Title,
			"explanation":    od.Explanation,
			"short_question": od.ShortQuestion,
			"point":          od.Point,
			"position":       j,
		}).Error; err != nil {
			return err
		}
	}

	for id := range owned {
		if !removed[id] && !kept[id] {
			return &payloadError{msg: fmt.Sprintf("payload bỏ sót lựa chọn %d", id)}
		}
	}
	return nil
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/eval-survey-server/config"
	"github.com/vnkhanh/eval-survey-server/middleware"
	"github.com/vnkhanh/eval-survey-server/models"
	"github.com/vnkhanh/eval-survey-server/surveydef"
	"github.com/vnkhanh/eval-survey-server/utils"
)

const clonePrefix = "Bản sao - "

/* ========== Danh sách khảo sát ========== */

// GET /api/surveys?status=active|archived&search=&page=&limit=
func ListSurveys(c *gin.Context) {
	status := c.DefaultQuery("status", models.StatusActive)
	if status != models.StatusActive && status != models.StatusArchived {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status không hợp lệ"})
		return
	}
	query := config.DB.Model(&models.Survey{}).Where("status = ?", status)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	// phân trang
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	// Session để dùng lại query cho cả Count và Find
	query = query.Session(&gorm.Session{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		logInternalError(c, "surveys.list", err, "Không lấy được danh sách khảo sát")
		return
	}

	var surveys []models.Survey
	if err := query.Order("updated_at DESC, id DESC").Offset((page - 1) * limit).Limit(limit).Find(&surveys).Error; err != nil {
		logInternalError(c, "surveys.list", err, "Không lấy được danh sách khảo sát")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  surveys,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

/* ========== Xem snapshot ========== */

func GetSurvey(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s, err := loadSnapshot(config.DB, id)
	if errors.Is(err, errNotFound) {
		logNotFound(c, "surveys.get", id)
		return
	}
	if err != nil {
		logInternalError(c, "surveys.get", err, "Không thể lấy khảo sát")
		return
	}
	c.JSON(http.StatusOK, s.ToDefinition())
}

/* ========== Tạo mới ========== */

func CreateSurvey(c *gin.Context) {
	var req surveydef.CreateSurveyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	createFrom(c, req, "surveys.create")
}

// POST /api/surveys/:id/clone: sao chép định nghĩa, survey mới có token sửa riêng.
func CloneSurvey(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	src, err := loadSnapshot(config.DB, id)
	if errors.Is(err, errNotFound) {
		logNotFound(c, "surveys.clone", id)
		return
	}
	if err != nil {
		logInternalError(c, "surveys.clone", err, "Không thể đọc khảo sát")
		return
	}

	d := surveydef.Hydrate(src.ToDefinition())
	d.SetTitle(clonePrefix + src.Title)
	createFrom(c, surveydef.BuildCreationPayload(d.Survey()), "surveys.clone")
}

func createFrom(c *gin.Context, req surveydef.CreateSurveyDTO, code string) {
	if r := surveydef.Validate(surveydef.FromCreationPayload(req)); !r.Valid {
		invalidDefinition(c, r)
		return
	}

	token, hash, err := utils.IssueEditToken()
	if err != nil {
		logInternalError(c, code, err, "Không thể tạo edit token")
		return
	}

	s := models.NewSurvey(req)
	s.EditTokenHash = hash
	if claims := middleware.ClaimsFrom(c); claims != nil {
		s.CreatedBy = claims.Subject
	}
	if err := config.DB.Create(&s).Error; err != nil {
		logInternalError(c, code, err, "Không thể tạo khảo sát")
		return
	}

	snapshot, err := loadSnapshot(config.DB, s.ID)
	if err != nil {
		logInternalError(c, code, err, "Không thể đọc khảo sát vừa tạo")
		return
	}
	c.Header(middleware.HeaderEditToken, token)
	c.JSON(http.StatusCreated, snapshot.ToDefinition())
}

/* ========== Cập nhật (editor) ========== */

// PUT /api/surveys/:id: áp dụng UpdateSurveyDTO trọn vẹn trong một transaction.
func UpdateSurvey(c *gin.Context) {
	f := c.MustGet(middleware.CtxSurvey).(models.Survey)

	var req surveydef.UpdateSurveyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	def := surveydef.FromUpdatePayload(surveydef.PersistedID(strconv.FormatUint(uint64(f.ID), 10)), req)
	if r := surveydef.Validate(def); !r.Valid {
		invalidDefinition(c, r)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		return applyUpdate(tx, f.ID, req)
	})
	var perr *payloadError
	if errors.As(err, &perr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload không khớp với khảo sát", "error": perr.Error()})
		return
	}
	if err != nil {
		logInternalError(c, "surveys.update", err, "Cập nhật thất bại")
		return
	}

	snapshot, err := loadSnapshot(config.DB, f.ID)
	if err != nil {
		logInternalError(c, "surveys.update", err, "Không thể đọc khảo sát")
		return
	}
	c.JSON(http.StatusOK, snapshot.ToDefinition())
}

/* ========== Xoá mềm / Archive / Restore ========== */

func DeleteSurvey(c *gin.Context) {
	setStatus(c, models.StatusDeleted, "deleted")
}

func ArchiveSurvey(c *gin.Context) {
	setStatus(c, models.StatusArchived, "archived")
}

func RestoreSurvey(c *gin.Context) {
	setStatus(c, models.StatusActive, "restored")
}

func setStatus(c *gin.Context, status, msg string) {
	f := c.MustGet(middleware.CtxSurvey).(models.Survey)
	if err := config.DB.Model(&models.Survey{}).
		Where("id = ?", f.ID).
		Update("status", status).Error; err != nil {
		logInternalError(c, "surveys."+msg, err, "Cập nhật trạng thái thất bại")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

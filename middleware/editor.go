package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/eval-survey-server/config"
	"github.com/vnkhanh/eval-survey-server/models"
	"github.com/vnkhanh/eval-survey-server/utils"
)

const (
	HeaderEditToken = "X-Survey-Edit-Token"
	CtxSurvey       = "surveyObj" // survey đã nạp sẵn
)

// CheckSurveyEditor: cho phép nếu (1) JWT có role admin, hoặc (2) có edit token hợp lệ.
func CheckSurveyEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadSurvey(c)
		if !ok {
			return
		}

		// 1) JWT admin
		if ClaimsFrom(c).IsAdmin() {
			c.Next()
			return
		}

		// 2) Kiểm tra edit token
		token := c.GetHeader(HeaderEditToken)
		if token != "" && utils.VerifyEditToken(s.EditTokenHash, token) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Thiếu hoặc sai quyền chỉnh sửa khảo sát"})
	}
}

func loadSurvey(c *gin.Context) (models.Survey, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return models.Survey{}, false
	}

	var s models.Survey
	if e := config.DB.Where("id = ? AND status <> ?", id, models.StatusDeleted).First(&s).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Khảo sát không tồn tại"})
			return models.Survey{}, false
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc khảo sát"})
		return models.Survey{}, false
	}
	c.Set(CtxSurvey, s)
	return s, true
}

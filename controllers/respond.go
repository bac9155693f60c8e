package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/surveydef"
)

// logInternalError ghi log lỗi và trả 500 với message chung.
func logInternalError(c *gin.Context, code string, err error, msg string) {
	logger.Errorf("%s: %v", code, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": msg})
}

func logNotFound(c *gin.Context, code string, id any) {
	logger.Debugf("%s: not found (%v)", code, id)
	c.JSON(http.StatusNotFound, gin.H{"message": "Khảo sát không tồn tại"})
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
}

func invalidDefinition(c *gin.Context, r surveydef.Result) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message":    "Khảo sát không hợp lệ",
		"violations": r.Violations,
	})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return 0, false
	}
	return uint(id), true
}

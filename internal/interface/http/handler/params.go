package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
	"github.com/xiebiao/aptcare/pkg/response"
)

// bindError 参数绑定或校验失败
func bindError(c *gin.Context, err error) {
	response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
}

// pathID 解析路径中的ID参数，失败时已写入响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// parseDate 解析YYYY-MM-DD（本地时区），空字符串返回nil
// 格式已由binding的datetime规则校验
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(appchecklist.DateLayout, s, time.Local)
	if err != nil {
		return nil, apperrors.Invalid("日期格式必须是YYYY-MM-DD")
	}
	return &t, nil
}

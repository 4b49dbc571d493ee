package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"casemall_v1_202608/internal/service"
)

// ==================== 错误映射 ====================

// respondError 业务错误到 HTTP 状态码的统一映射
// 404: 记录不存在; 401: 凭证/Token 错误; 400: 冲突类; 其余 500
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrAdminExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseIDParam 解析路径里的数字 ID，非法时响应 400 并返回 false
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法的 " + name})
		return 0, false
	}
	return id, true
}

// ==================== 上传文件 ====================

// readFormFile 读取 multipart 文件字段到内存
// required 为 false 且字段缺失时返回 (nil, nil)
func readFormFile(c *gin.Context, field string, required bool) (*service.UploadedFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.UploadedFile{
		Data:        data,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

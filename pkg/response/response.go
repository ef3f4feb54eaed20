// Package response 提供统一的 HTTP 响应封装
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success 返回 200 成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

// SuccessWithStatus 返回指定状态码的成功响应
func SuccessWithStatus(c *gin.Context, status int, data any) {
	c.JSON(status, Response{
		Code:    "OK",
		Message: "success",
		Data:    data,
	})
}

// Error 返回 500 错误响应
func Error(c *gin.Context, err error) {
	ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
}

// ErrorWithStatus 返回指定状态码的错误响应，code 为空时使用状态码文本
func ErrorWithStatus(c *gin.Context, status int, message string, code string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

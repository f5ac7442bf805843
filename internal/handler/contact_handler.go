package handler

import (
	"errors"
	"net/http"

	"github.com/casalista/internal/service"
	"github.com/gin-gonic/gin"
)

type contactRequest struct {
	PropertyID *uint  `json:"propertyId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// SubmitContact 处理前台联系表单提交。
// 该路由套用更严格的限流策略，防止表单被滥用。
func (a *API) SubmitContact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req, "表单数据格式错误") {
		return
	}

	_, err := a.contacts.Submit(service.ContactInput{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	})
	switch {
	case errors.Is(err, service.ErrContactNameMissing):
		respondValidation(c, "name")
	case errors.Is(err, service.ErrContactEmailInvalid):
		respondValidation(c, "email")
	case errors.Is(err, service.ErrContactMessageMissing):
		respondValidation(c, "message")
	case err != nil:
		respondError(c, http.StatusInternalServerError, "留言提交失败")
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

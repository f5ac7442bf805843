package handler

import (
	"errors"
	"net/http"

	"github.com/casalista/internal/service"
	"github.com/gin-gonic/gin"
)

type storefrontRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	LogoURL     string `json:"logoUrl"`
	AccentColor string `json:"accentColor"`
	Sort        *int   `json:"sort"`
	Visible     *bool  `json:"visible"`
}

// GetStorefronts 获取全部品牌站点配置（后台，含隐藏项）
func (a *API) GetStorefronts(c *gin.Context) {
	items, err := a.storefronts.List(true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取品牌站点失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"storefronts": items})
}

// UpsertStorefront 按品牌代号创建或更新站点配置
func (a *API) UpsertStorefront(c *gin.Context) {
	var req storefrontRequest
	if !bindJSON(c, &req, "品牌站点数据格式错误") {
		return
	}

	item, err := a.storefronts.Upsert(service.StorefrontInput{
		Code:        req.Code,
		Name:        req.Name,
		Domain:      req.Domain,
		LogoURL:     req.LogoURL,
		AccentColor: req.AccentColor,
		Sort:        req.Sort,
		Visible:     req.Visible,
	})
	if err != nil {
		if errors.Is(err, service.ErrStorefrontInvalidInput) {
			respondError(c, http.StatusBadRequest, "品牌代号与名称不能为空")
			return
		}
		respondError(c, http.StatusInternalServerError, "品牌站点保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "品牌站点已保存", "storefront": item})
}

// DeleteStorefront 删除品牌站点配置
func (a *API) DeleteStorefront(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "品牌站点 ID 无效")
		return
	}

	if err := a.storefronts.Delete(id); err != nil {
		if errors.Is(err, service.ErrStorefrontNotFound) {
			respondError(c, http.StatusNotFound, "品牌站点不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "品牌站点删除失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "品牌站点删除成功"})
}

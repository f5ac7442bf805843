package handler

import (
	"errors"
	"net/http"

	"github.com/casalista/internal/service"
	"github.com/gin-gonic/gin"
)

type propertyRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	City          string  `json:"city"`
	Bedrooms      int     `json:"bedrooms"`
	AreaSqm       float64 `json:"areaSqm"`
	CoverImageURL string  `json:"coverImageUrl"`
	Status        string  `json:"status"`
	Sort          int     `json:"sort"`
}

func (r propertyRequest) toInput() service.PropertyInput {
	return service.PropertyInput{
		Title:         r.Title,
		Slug:          r.Slug,
		Description:   r.Description,
		Price:         r.Price,
		Currency:      r.Currency,
		City:          r.City,
		Bedrooms:      r.Bedrooms,
		AreaSqm:       r.AreaSqm,
		CoverImageURL: r.CoverImageURL,
		Status:        r.Status,
		Sort:          r.Sort,
	}
}

func respondPropertyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPropertyNotFound):
		respondError(c, http.StatusNotFound, "房源不存在")
	case errors.Is(err, service.ErrPropertyTitleMissing):
		respondError(c, http.StatusBadRequest, "房源标题不能为空")
	case errors.Is(err, service.ErrPropertySlugTaken):
		respondError(c, http.StatusBadRequest, "房源 slug 已被占用")
	case errors.Is(err, service.ErrPropertyStatusInvalid):
		respondError(c, http.StatusBadRequest, "房源状态无效")
	default:
		respondError(c, http.StatusInternalServerError, "房源操作失败")
	}
}

// GetProperties 获取房源列表（后台，含草稿与下架）
func (a *API) GetProperties(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := a.properties.List(service.PropertyFilter{
		Search:  c.Query("search"),
		Status:  c.Query("status"),
		City:    c.Query("city"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取房源列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// GetProperty 获取单个房源
func (a *API) GetProperty(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "房源 ID 无效")
		return
	}

	property, err := a.properties.Get(id)
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}

// CreateProperty 创建房源
func (a *API) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if !bindJSON(c, &req, "房源数据格式错误") {
		return
	}

	property, err := a.properties.Create(req.toInput())
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房源创建成功", "property": property})
}

// UpdateProperty 更新房源
func (a *API) UpdateProperty(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "房源 ID 无效")
		return
	}

	var req propertyRequest
	if !bindJSON(c, &req, "房源数据格式错误") {
		return
	}

	property, err := a.properties.Update(id, req.toInput())
	if err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房源更新成功", "property": property})
}

// ArchiveProperty 下架房源，历史统计数据保留
func (a *API) ArchiveProperty(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "房源 ID 无效")
		return
	}

	if err := a.properties.Archive(id); err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房源已下架"})
}

// DeleteProperty 删除房源
func (a *API) DeleteProperty(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "房源 ID 无效")
		return
	}

	if err := a.properties.Delete(id); err != nil {
		respondPropertyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "房源删除成功"})
}

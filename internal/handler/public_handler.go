package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/casalista/internal/db"
	"github.com/casalista/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 把房源描述的 Markdown 渲染成净化后的 HTML。
func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// ListPublishedProperties 返回前台可见的房源列表，各品牌站点共用。
func (a *API) ListPublishedProperties(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := a.properties.ListPublished(page, perPage)
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

// ShowProperty 返回房源详情，Description 渲染为净化后的 HTML。
func (a *API) ShowProperty(c *gin.Context) {
	property, err := a.properties.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			respondError(c, http.StatusNotFound, "房源不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取房源失败")
		return
	}

	// 草稿和已下架房源不对前台暴露
	if property.Status != db.PropertyStatusPublished {
		respondError(c, http.StatusNotFound, "房源不存在")
		return
	}

	descriptionHTML, err := renderMarkdown(property.Description)
	if err != nil {
		descriptionHTML = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"property":        property,
		"descriptionHtml": descriptionHTML,
		"trackPath":       service.PropertyPath(property.Slug),
	})
}

// ListStorefronts 返回前台可见的品牌站点配置。
func (a *API) ListStorefronts(c *gin.Context) {
	items, err := a.storefronts.List(false)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取品牌站点失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"storefronts": items})
}

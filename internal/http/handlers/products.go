package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/http/middleware"
	"github.com/iamlekside2/QuickGift/internal/modules/products"
	"github.com/iamlekside2/QuickGift/pkg/view"
)

type ProductsHandler struct {
	Repo *products.Repo
}

func NewProductsHandler(repo *products.Repo) *ProductsHandler {
	return &ProductsHandler{Repo: repo}
}

// GET /api/categories
func (h *ProductsHandler) Categories(c *gin.Context) {
	items, err := h.Repo.ListCategories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": view.FromCategories(items)})
}

// GET /api/products
func (h *ProductsHandler) List(c *gin.Context) {
	params := products.ListParams{
		CategoryID: c.Query("category_id"),
		City:       c.Query("city"),
		Search:     c.Query("q"),
		Sort:       c.Query("sort"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		params.Featured = &featured
	}

	res, err := h.Repo.List(c.Request.Context(), params)
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": view.FromProducts(res.Items),
		"total": res.Total,
		"page":  params.Page,
	})
}

// GET /api/products/:id
func (h *ProductsHandler) Get(c *gin.Context) {
	p, err := h.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, translate(err))
		return
	}
	c.JSON(http.StatusOK, view.FromProduct(p))
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"charmforge-be/internal/catalog"

	"github.com/gin-gonic/gin"
)

// GetCatalog returns the static reference data the storefront needs to
// render customization forms: categories, selectable colors, and the
// customization definitions scoped to each category.
func (h *handlers) GetCatalog(c *gin.Context) {
	cats := h.deps.Ref.Categories()

	defs := make(map[string][]catalog.CustomizationDefinition, len(cats))
	for _, cat := range cats {
		defs[cat.ID] = h.deps.Ref.DefinitionsForCategory(cat.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":     cats,
		"colors":         h.deps.Ref.AvailableColors(),
		"customizations": defs,
	})
}

func (h *handlers) ListProducts(c *gin.Context) {
	opts := catalog.ListOptions{
		CategoryID: c.Query("category"),
		Limit:      queryInt32(c, "limit", 20),
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	page := queryInt32(c, "page", 1)
	if page < 1 {
		page = 1
	}
	opts.Offset = (page - 1) * opts.Limit

	products, err := h.deps.Catalog.ListProducts(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) GetProduct(c *gin.Context) {
	p, err := h.deps.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) CreateProduct(c *gin.Context) {
	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deps.Catalog.CreateProduct(c.Request.Context(), &p); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrUnknownCategory) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) UpdateProduct(c *gin.Context) {
	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p.ID = c.Param("id")

	if err := h.deps.Catalog.UpdateProduct(c.Request.Context(), &p); err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, catalog.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) SetProductAvailability(c *gin.Context) {
	var req struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deps.Catalog.SetAvailability(c.Request.Context(), c.Param("id"), req.Available); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "available": req.Available})
}

func queryInt32(c *gin.Context, key string, def int32) int32 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}

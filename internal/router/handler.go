package router

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"ghorerbazar.top/organic/storefront/pkg/catalog"
	"ghorerbazar.top/organic/storefront/pkg/global"
	"ghorerbazar.top/organic/storefront/pkg/models"
)

func (a *API) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{
		"status":  "OK",
		"catalog": a.Catalog.BaseURL(),
	}))
}

func (a *API) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, global.ErrorResponse("পৃষ্ঠা পাওয়া যায়নি", []global.ValidationError{
		{Field: "path", Message: "আপনার চাওয়া পৃষ্ঠাটি খুঁজে পাওয়া যায়নি।", Code: "not_found"},
	}))
}

// renderCatalogError maps the client's error taxonomy onto user-visible
// responses: unreachable and timed-out get distinct retryable messages,
// 404s a distinct not-found page, 400s the flattened field list.
func renderCatalogError(c *gin.Context, err error) {
	var notFound *catalog.NotFoundError
	var badRequest *catalog.BadRequestError

	switch {
	case errors.Is(err, catalog.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, global.ErrorResponse("সার্ভার সাড়া দিচ্ছে না, একটু পরে আবার চেষ্টা করুন", nil))
	case errors.Is(err, catalog.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("সার্ভারের সাথে সংযোগ করা যাচ্ছে না", nil))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, global.ErrorResponse(notFound.Error(), nil))
	case errors.As(err, &badRequest):
		errs := make([]global.ValidationError, 0, len(badRequest.Messages))
		for _, message := range badRequest.Messages {
			errs = append(errs, global.ValidationError{Field: "request", Message: message, Code: "validation_error"})
		}
		c.JSON(http.StatusBadRequest, global.ErrorResponse("ত্রুটি", errs))
	default:
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("কিছু একটা সমস্যা হয়েছে", nil))
	}
}

// Home fetches products and categories concurrently and joins them before
// rendering. An optional tab narrows the product list.
func (a *API) Home(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg          sync.WaitGroup
		products    []models.Product
		categories  []models.Category
		prodErr     error
		categoryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, prodErr = a.Catalog.ListProducts(ctx, 0, "")
	}()
	go func() {
		defer wg.Done()
		categories, categoryErr = a.Catalog.ListCategories(ctx)
	}()
	wg.Wait()

	if prodErr != nil {
		renderCatalogError(c, prodErr)
		return
	}
	if categoryErr != nil {
		renderCatalogError(c, categoryErr)
		return
	}

	tab := c.DefaultQuery("tab", "all")
	switch tab {
	case "featured":
		products = filterProducts(products, func(p *models.Product) bool { return p.Featured })
	case "discount":
		products = filterProducts(products, func(p *models.Product) bool { return p.HasDiscount() })
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"products":   products,
		"categories": categories,
		"tab":        tab,
	}))
}

func filterProducts(products []models.Product, keep func(*models.Product) bool) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}

func (a *API) Products(c *gin.Context) {
	sortKey := c.DefaultQuery("sort", catalog.SortDefault)

	products, err := a.Catalog.ListProducts(c.Request.Context(), 0, catalog.NativeOrdering(sortKey))
	if err != nil {
		renderCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"products": products,
		"sort":     sortKey,
	}))
}

// ProductDetail serves one product, cache first, plus a handful of related
// products from the same category.
func (a *API) ProductDetail(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil || productID < 1 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "id", Message: "Product id must be a positive integer", Code: "invalid_format"},
		}))
		return
	}

	ctx := c.Request.Context()

	if a.Cache != nil {
		if product, err := a.Cache.GetCachedProduct(ctx, productID); err == nil {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"product": product}))
			return
		}
	}

	product, err := a.Catalog.GetProduct(ctx, productID)
	if err != nil {
		renderCatalogError(c, err)
		return
	}

	if a.Cache != nil {
		if cacheErr := a.Cache.CacheProduct(ctx, product); cacheErr != nil {
			log.Printf("Warning: failed to cache product %d: %v", productID, cacheErr)
		}
	}

	related := a.relatedProducts(c, product)

	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"product": product,
		"related": related,
	}))
}

// relatedProducts is best effort; a failure just means an empty shelf.
func (a *API) relatedProducts(c *gin.Context, product *models.Product) []models.Product {
	if product.Category == nil || product.Category.ID == 0 {
		return nil
	}
	siblings, err := a.Catalog.ListProducts(c.Request.Context(), product.Category.ID, "")
	if err != nil {
		log.Printf("Warning: failed to fetch related products: %v", err)
		return nil
	}

	related := make([]models.Product, 0, 4)
	for _, sibling := range siblings {
		if sibling.ID == product.ID {
			continue
		}
		related = append(related, sibling)
		if len(related) == 4 {
			break
		}
	}
	return related
}

func (a *API) Categories(c *gin.Context) {
	categories, err := a.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"categories": categories}))
}

// CategoryProducts resolves the slug, fetches its products with the API's
// native ordering when the sort key supports it, and falls back to a
// client-side sort otherwise. An empty category is a distinct state, not
// an error.
func (a *API) CategoryProducts(c *gin.Context) {
	slug := c.Param("slug")
	sortKey := c.DefaultQuery("sort", catalog.SortDefault)
	ctx := c.Request.Context()

	category, err := a.Catalog.FindCategoryBySlug(ctx, slug)
	if err != nil {
		renderCatalogError(c, err)
		return
	}

	products, err := a.Catalog.ListProducts(ctx, category.ID, catalog.NativeOrdering(sortKey))
	if err != nil {
		renderCatalogError(c, err)
		return
	}
	if catalog.NativeOrdering(sortKey) == "" {
		products = catalog.SortProducts(products, sortKey)
	}

	response := gin.H{
		"category": category,
		"products": products,
		"sort":     sortKey,
	}
	if len(products) == 0 {
		response["message"] = "এই ক্যাটাগরিতে কোনো পণ্য পাওয়া যায়নি"
	}
	c.JSON(http.StatusOK, global.SuccessResponse(response))
}

// Search proxies the free-text search. The API ranks by relevance; price
// and date orders are applied here because the endpoint does not take an
// ordering parameter.
func (a *API) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("সার্চ করতে কিছু লিখুন", []global.ValidationError{
			{Field: "q", Message: "Search query is required", Code: "required"},
		}))
		return
	}

	filters := catalog.SearchFilters{
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 1 {
		filters.Page = page
	}

	result, err := a.Catalog.Search(c.Request.Context(), query, filters)
	if err != nil {
		renderCatalogError(c, err)
		return
	}

	sortKey := c.DefaultQuery("sort_by", catalog.SortRelevance)
	if sortKey != catalog.SortRelevance {
		result.Products = catalog.SortProducts(result.Products, sortKey)
	}

	response := gin.H{
		"query":         query,
		"products":      result.Products,
		"total_results": result.TotalResults,
		"total_pages":   result.TotalPages,
		"current_page":  result.CurrentPage,
		"sort_by":       sortKey,
	}
	if len(result.Products) == 0 {
		response["message"] = "কোনো পণ্য খুঁজে পাওয়া যায়নি"
	}
	c.JSON(http.StatusOK, global.SuccessResponse(response))
}

func (a *API) Autocomplete(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"suggestions": []catalog.Suggestion{}}))
		return
	}

	result, err := a.Catalog.Autocomplete(c.Request.Context(), query)
	if err != nil {
		renderCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"suggestions": result.Suggestions}))
}

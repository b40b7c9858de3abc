package router

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ghorerbazar.top/organic/storefront/pkg/cart"
	"ghorerbazar.top/organic/storefront/pkg/checkout"
	"ghorerbazar.top/organic/storefront/pkg/global"
	"ghorerbazar.top/organic/storefront/pkg/models"
)

func (a *API) loadCart(c *gin.Context) *cart.Cart {
	return cart.Load(c.Request.Context(), a.Store, sessionID(c))
}

func cartCity(c *gin.Context) string {
	return c.DefaultQuery("city", models.DhakaCity)
}

func (a *API) GetCart(c *gin.Context) {
	view := a.loadCart(c).View(cartCity(c))
	c.JSON(http.StatusOK, global.SuccessResponse(view))
}

// AddToCart fetches the product from the catalog so the cart line carries
// its current price, then merges it into the session's cart.
func (a *API) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	product, err := a.Catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		renderCatalogError(c, err)
		return
	}
	if !product.Available || product.Stock <= 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("পণ্যটি এখন স্টকে নেই", []global.ValidationError{
			{Field: "product_id", Message: "Product is out of stock", Code: "out_of_stock"},
		}))
		return
	}
	if req.Quantity > product.Stock {
		c.JSON(http.StatusBadRequest, global.ErrorResponse(
			fmt.Sprintf("দুঃখিত! স্টক এ মাত্র %d টি আছে।", product.Stock), []global.ValidationError{
				{Field: "quantity", Message: "Requested quantity exceeds stock", Code: "insufficient_stock"},
			}))
		return
	}

	shoppingCart := a.loadCart(c)
	shoppingCart.Add(c.Request.Context(), product, req.Quantity)
	c.JSON(http.StatusOK, global.SuccessResponse(shoppingCart.View(cartCity(c))))
}

func (a *API) UpdateCartLine(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "id", Message: "Product id must be an integer", Code: "invalid_format"},
		}))
		return
	}

	var req models.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	shoppingCart := a.loadCart(c)
	shoppingCart.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
	c.JSON(http.StatusOK, global.SuccessResponse(shoppingCart.View(cartCity(c))))
}

func (a *API) RemoveCartLine(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "id", Message: "Product id must be an integer", Code: "invalid_format"},
		}))
		return
	}

	shoppingCart := a.loadCart(c)
	shoppingCart.Remove(c.Request.Context(), productID)
	c.JSON(http.StatusOK, global.SuccessResponse(shoppingCart.View(cartCity(c))))
}

func (a *API) ClearCart(c *gin.Context) {
	shoppingCart := a.loadCart(c)
	shoppingCart.Clear(c.Request.Context())
	c.JSON(http.StatusOK, global.SuccessResponse(shoppingCart.View(cartCity(c))))
}

// BeginCheckout opens the customer form. A session whose previous order
// already confirmed gets a fresh workflow first.
func (a *API) BeginCheckout(c *gin.Context) {
	id := sessionID(c)
	session := a.Checkout.Session(id)
	if session.State() == checkout.StateConfirmed {
		a.Checkout.Drop(id)
		session = a.Checkout.Session(id)
	}

	if err := session.Begin(a.loadCart(c)); err != nil {
		renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"state": session.State()}))
}

func (a *API) SubmitCustomerInfo(c *gin.Context) {
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}
	if info.City == "" {
		info.City = models.DhakaCity
	}
	if info.PaymentMethod == "" {
		info.PaymentMethod = models.PaymentCOD
	}

	session := a.Checkout.Session(sessionID(c))
	shoppingCart := a.loadCart(c)
	if err := session.SubmitCustomerInfo(c.Request.Context(), shoppingCart, info); err != nil {
		renderCheckoutError(c, err)
		return
	}

	response := gin.H{"state": session.State()}
	switch session.State() {
	case checkout.StateConfirmed:
		response["confirmation"] = session.Confirmation()
	case checkout.StateAwaitingPayment:
		if instructions, err := session.PaymentInstructions(); err == nil {
			response["payment_instructions"] = instructions
		}
	}
	c.JSON(http.StatusOK, global.SuccessResponse(response))
}

func (a *API) PaymentInstructions(c *gin.Context) {
	session := a.Checkout.Session(sessionID(c))
	instructions, err := session.PaymentInstructions()
	if err != nil {
		renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(instructions))
}

func (a *API) ConfirmPayment(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transaction_id"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	session := a.Checkout.Session(sessionID(c))
	shoppingCart := a.loadCart(c)
	if err := session.ConfirmPayment(c.Request.Context(), shoppingCart, req.TransactionID, req.PaymentMethod); err != nil {
		renderCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"state":        session.State(),
		"confirmation": session.Confirmation(),
	}))
}

func (a *API) CancelCheckout(c *gin.Context) {
	session := a.Checkout.Session(sessionID(c))
	if err := session.Cancel(); err != nil {
		renderCheckoutError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"state": session.State()}))
}

// Confirmation serves the receipt: the live workflow's snapshot when one
// exists, otherwise whatever the store remembers for this session.
func (a *API) Confirmation(c *gin.Context) {
	session := a.Checkout.Session(sessionID(c))
	if confirmation := session.Confirmation(); confirmation != nil {
		c.JSON(http.StatusOK, global.SuccessResponse(confirmation))
		return
	}

	confirmation, err := a.Store.LoadLastOrder(c.Request.Context(), sessionID(c))
	if err != nil || confirmation == nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse("কোনো অর্ডার পাওয়া যায়নি", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(confirmation))
}

func renderCheckoutError(c *gin.Context, err error) {
	var validation *checkout.ValidationFailedError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), nil))
	case errors.Is(err, checkout.ErrMissingTransactionID):
		c.JSON(http.StatusBadRequest, global.ErrorResponse(err.Error(), nil))
	case errors.As(err, &validation):
		errs := make([]global.ValidationError, 0, len(validation.Messages))
		for _, message := range validation.Messages {
			errs = append(errs, global.ValidationError{Field: "customer", Message: message, Code: "validation_error"})
		}
		c.JSON(http.StatusBadRequest, global.ErrorResponse("ত্রুটি", errs))
	case errors.Is(err, checkout.ErrInvalidTransition):
		c.JSON(http.StatusConflict, global.ErrorResponse(err.Error(), nil))
	default:
		renderCatalogError(c, err)
	}
}

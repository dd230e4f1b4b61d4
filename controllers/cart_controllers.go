package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alessioferri/trattoria-app/services"
	"github.com/alessioferri/trattoria-app/utils"
)

type CartController struct {
	Carts    *services.CartService
	Checkout *services.CheckoutService
}

func NewCartController(carts *services.CartService, checkout *services.CheckoutService) *CartController {
	return &CartController{Carts: carts, Checkout: checkout}
}

func (cc *CartController) respondCart(c *gin.Context, code int, message string, ident services.Identity) {
	cart, err := cc.Carts.GetCart(c.Request.Context(), ident)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	items, total := cc.Carts.Totals(cart)
	utils.RespondJSON(c, code, message, gin.H{
		"items": items,
		"total": total,
	})
}

func (cc *CartController) GetCart(c *gin.Context) {
	cc.respondCart(c, http.StatusOK, "Cart", identityFromContext(c))
}

func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		MenuItemID string `json:"menu_item_id" binding:"required"`
		VariantID  string `json:"variant_id" binding:"required"`
		Qty        int    `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ident := identityFromContext(c)
	if err := cc.Carts.AddItem(c.Request.Context(), ident, req.MenuItemID, req.VariantID, req.Qty); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("item_not_found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Item added", ident)
}

func (cc *CartController) UpdateLine(c *gin.Context) {
	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ident := identityFromContext(c)
	if err := cc.Carts.UpdateLine(c.Request.Context(), ident, c.Param("line_id"), req.Qty); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Cart updated", ident)
}

func (cc *CartController) RemoveLine(c *gin.Context) {
	ident := identityFromContext(c)
	if err := cc.Carts.RemoveLine(c.Request.Context(), ident, c.Param("line_id")); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Line removed", ident)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	ident := identityFromContext(c)
	if err := cc.Carts.Clear(c.Request.Context(), ident); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cc.respondCart(c, http.StatusOK, "Cart cleared", ident)
}

// CheckoutCart converts the caller's cart into an order.
func (cc *CartController) CheckoutCart(c *gin.Context) {
	ident := identityFromContext(c)

	orderID, err := cc.Checkout.Checkout(c.Request.Context(), ident)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginRequired):
			utils.RespondError(c, http.StatusUnauthorized, err)
		case errors.Is(err, services.ErrEmptyCart):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed", gin.H{
		"ok":       true,
		"order_id": orderID,
	})
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	ItemID string `json:"itemId"`
	Size   string `json:"size"`
}

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := svc.AddItem(c.Request.Context(), ident.UserID, req.ItemID, req.Size); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Added To Cart")
	}
}

func updateCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req struct {
			ItemID   string `json:"itemId"`
			Size     string `json:"size"`
			Quantity *int   `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Quantity == nil {
			respondFailure(c, http.StatusBadRequest, "quantity required")
			return
		}
		if err := svc.SetQuantity(c.Request.Context(), ident.UserID, req.ItemID, req.Size, *req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Cart Updated")
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		cart, err := svc.Get(c.Request.Context(), ident.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"cartData": cart})
	}
}

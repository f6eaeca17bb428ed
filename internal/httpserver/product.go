package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productsvc "storefront-api/internal/service/product"
)

func listProductsHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"products": products})
	}
}

func singleProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"productId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		product, err := svc.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"product": product})
	}
}

func addProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productsvc.AddInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if _, err := svc.Add(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Product Added")
	}
}

func removeProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := svc.Remove(c.Request.Context(), req.ID); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Product Removed")
	}
}

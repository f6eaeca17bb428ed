package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "storefront-api/internal/service/order"
)

func placeOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if _, err := svc.PlaceCOD(c.Request.Context(), ident.UserID, req); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Order Placed")
	}
}

func checkoutHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req struct {
			ordersvc.PlaceInput
			Origin string `json:"origin"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		origin := req.Origin
		if origin == "" {
			origin = c.GetHeader("Origin")
		}
		if origin == "" {
			respondFailure(c, http.StatusBadRequest, "origin required")
			return
		}
		url, err := svc.PlaceCheckout(c.Request.Context(), ident.UserID, req.PlaceInput, origin)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"session_url": url})
	}
}

func verifyCheckoutHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req struct {
			OrderID string `json:"orderId"`
			Success string `json:"success"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		success := req.Success == "true"
		if err := svc.VerifyCheckout(c.Request.Context(), ident.UserID, req.OrderID, success); err != nil {
			respondError(c, err)
			return
		}
		if success {
			respondOK(c, nil)
			return
		}
		respondFailure(c, http.StatusOK, "Payment Failed")
	}
}

func intentHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		res, err := svc.PlaceIntent(c.Request.Context(), ident.UserID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"order": res.Intent, "name": res.UserName, "email": res.UserEmail})
	}
}

func verifyIntentHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		var req struct {
			IntentID string `json:"intentId"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		paid, err := svc.VerifyIntent(c.Request.Context(), ident.UserID, req.IntentID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !paid {
			respondFailure(c, http.StatusOK, "Payment Failed")
			return
		}
		respondMessage(c, "Payment Successful")
	}
}

func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"orders": orders})
	}
}

func userOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := identityFrom(c)
		orders, err := svc.ListByUser(c.Request.Context(), ident.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"orders": orders})
	}
}

func orderStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			OrderID string `json:"orderId"`
			Status  string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondFailure(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), req.OrderID, req.Status); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Status Updated")
	}
}

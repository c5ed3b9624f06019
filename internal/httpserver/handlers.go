package httpserver

import (
	"net/http"
	"strings"
	"time"

	"aguagas/internal/domain"
	"aguagas/internal/pricing"
	"aguagas/internal/service/cart"
	"aguagas/internal/service/catalog"
	"aguagas/internal/service/chat"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type handlers struct {
	deps   Deps
	logger *zap.Logger
	now    func() time.Time
}

func (h *handlers) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

type supplierRequest struct {
	SupplierID string `json:"supplierId" binding:"required"`
}

type advanceRequest struct {
	Status string `json:"status" binding:"required"`
}

type cartUpdateRequest struct {
	Version int                 `json:"version"`
	Actions []cart.UpdateAction `json:"actions"`
}

func (h *handlers) createSession(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "role is required")
		return
	}
	sess, err := h.deps.Sessions.Create(domain.Role(strings.ToLower(req.Role)))
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("session created", zap.String("session_id", sess.ID), zap.String("role", string(sess.Role)))
	c.JSON(http.StatusCreated, toSessionResponse(sess))
}

func (h *handlers) getSession(c *gin.Context) {
	sess, _ := sessionFromContext(c.Request.Context())
	c.JSON(http.StatusOK, toSessionResponse(sess))
}

func (h *handlers) setRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "role is required")
		return
	}
	sess, err := h.deps.Sessions.SetRole(c.Param("sessionID"), domain.Role(strings.ToLower(req.Role)))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess))
}

func (h *handlers) selectSupplier(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "supplierId is required")
		return
	}
	view, err := h.deps.Cart.SelectSupplier(c.Request.Context(), c.Param("sessionID"), req.SupplierID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) listSuppliers(c *gin.Context) {
	suppliers, err := h.deps.Catalog.List(c.Request.Context(), catalog.Filter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	results := make([]supplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		results = append(results, toSupplierResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"total":   len(results),
		"results": results,
	})
}

// getSupplier returns a supplier with its products. With X-Session-ID the
// response also carries that session's loyalty progress at the supplier.
func (h *handlers) getSupplier(c *gin.Context) {
	sup, err := h.deps.Catalog.GetSupplier(c.Request.Context(), c.Param("supplierID"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := toSupplierResponse(*sup)
	if id := strings.TrimSpace(c.GetHeader(sessionHeader)); id != "" {
		sess, err := h.deps.Sessions.Get(id)
		if err != nil {
			writeError(c, err)
			return
		}
		stamps := sess.Stamps[sup.ID]
		next := pricing.StampsToNext(stamps)
		resp.Stamps = &stamps
		resp.StampsToNext = &next
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getCart(c *gin.Context) {
	view, err := h.deps.Cart.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid cart update body")
		return
	}
	view, err := h.deps.Cart.Update(c.Request.Context(), c.Param("sessionID"), cart.UpdateInput{Version: req.Version, Actions: req.Actions})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(view))
}

func (h *handlers) createOrder(c *gin.Context) {
	o, err := h.deps.Orders.Create(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(trackingAt(*o, h.clock())))
}

func (h *handlers) listOrders(c *gin.Context) {
	tracked, err := h.deps.Orders.List(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		writeError(c, err)
		return
	}
	results := make([]orderResponse, 0, len(tracked))
	for _, t := range tracked {
		results = append(results, toOrderResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"total":   len(results),
		"results": results,
	})
}

func (h *handlers) getOrder(c *gin.Context) {
	t, err := h.deps.Orders.Get(c.Request.Context(), c.Param("sessionID"), c.Param("orderID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*t))
}

func (h *handlers) cancelOrder(c *gin.Context) {
	o, err := h.deps.Orders.Cancel(c.Request.Context(), c.Param("sessionID"), c.Param("orderID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(trackingAt(*o, h.clock())))
}

func (h *handlers) advanceOrder(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	status := domain.OrderStatus(strings.ToLower(req.Status))
	if !status.Valid() {
		badRequest(c, "unknown status "+req.Status)
		return
	}
	o, err := h.deps.Orders.Advance(c.Request.Context(), c.Param("sessionID"), c.Param("orderID"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(trackingAt(*o, h.clock())))
}

func (h *handlers) listMessages(c *gin.Context) {
	msgs, err := h.deps.Chat.List(c.Request.Context(), c.Param("sessionID"), c.Param("orderID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(msgs),
		"results": msgs,
	})
}

func (h *handlers) sendMessage(c *gin.Context) {
	var req chat.SendInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid message body")
		return
	}
	msg, err := h.deps.Chat.Send(c.Request.Context(), c.Param("sessionID"), c.Param("orderID"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *handlers) dashboard(c *gin.Context) {
	sum, err := h.deps.Dashboard.Summary(c.Request.Context(), c.Param("sessionID"), c.Param("supplierID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(sum))
}

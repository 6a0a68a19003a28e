package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/services"
	"github.com/lamji/crud-api-mern-sub001/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.Orders.Create(c.Request.Context(), &req)
	if err != nil {
		resp.FromError(c, err)
		return
	}

	body := gin.H{"order": out.Order}
	if out.PaymentLink != nil {
		body["paymentLink"] = out.PaymentLink
	}
	resp.Created(c, body)
}

// GET /orders/:orderId
func (oc *OrderController) Get(c *gin.Context) {
	order, source, err := oc.Orders.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"order": order, "source": source})
}

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	q := services.ListQuery{
		Page:      page,
		Limit:     limit,
		Status:    c.Query("status"),
		Customer:  c.Query("customer"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	out, err := oc.Orders.ListOrders(c.Request.Context(), q)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": out.Orders, "pagination": out.Pagination})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH|PUT /orders/:orderId/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p := utils.CurrentPrincipal(c)
	order, err := oc.Orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status, p.UserName)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"order": order})
}

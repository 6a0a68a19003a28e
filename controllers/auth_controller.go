package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/services"
	"github.com/lamji/crud-api-mern-sub001/utils"
)

type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForceLogoutRequest struct {
	UserName string `json:"userName"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := a.Auth.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": out.Token, "cashier": out.Cashier})
}

// POST /logout — ends the calling cashier's own session.
func (a *AuthController) Logout(c *gin.Context) {
	p := utils.CurrentPrincipal(c)
	if err := a.Auth.Logout(c.Request.Context(), p.UserName); err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "logged out"})
}

// POST /force-logout — admin ends another cashier's session.
func (a *AuthController) ForceLogout(c *gin.Context) {
	var req ForceLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := a.Auth.ForceLogout(c.Request.Context(), req.UserName)
	if err != nil {
		resp.FromError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"cashierName":     out.CashierName,
		"userName":        out.UserName,
		"previousSession": out.PreviousSession,
	})
}

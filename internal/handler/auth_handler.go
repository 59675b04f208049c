package handler

import (
	"github.com/Kohryu26/SoleCast/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, result)
}

// Register 创建账号（管理员）
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, err := h.svc.Register(req.Username, req.Password, req.Role)
	if err != nil {
		WriteError(c, err)
		return
	}
	Created(c, u)
}

// ChangePassword 重置密码（管理员）
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.ChangePassword(req.Username, req.NewPassword); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

// UpdateRole 调整角色（管理员）
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.UpdateRole(id, req.Role); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

// ListUsers 账号列表（管理员）
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		WriteError(c, err)
		return
	}
	Success(c, gin.H{"users": users})
}

// DeleteUser 删除账号（管理员）
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Param("id")); err != nil {
		WriteError(c, err)
		return
	}
	Success(c, nil)
}

package controller

import (
	"jaagrmind_backend/internal/service"
	"jaagrmind_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body adminLoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req adminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

type schoolLoginRequest struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary School login
// @Description Authenticates a school dashboard account by its JM code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body schoolLoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /school/login [post]
func (c *AuthController) SchoolLogin(ctx *gin.Context) {
	var req schoolLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, school, err := c.AuthService.LoginSchool(req.Code, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token, "school": school})
}

type studentLoginRequest struct {
	AccessID string `json:"accessId" binding:"required"`
}

// @Summary Student login
// @Description Authenticates a student by access ID
// @Tags auth
// @Accept json
// @Produce json
// @Param body body studentLoginRequest true "Access ID"
// @Success 200 {object} util.Response
// @Router /student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req studentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, student, err := c.AuthService.LoginStudent(req.AccessID)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token, "student": student})
}

// @Summary Current account profile
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.UserID == 0 {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, user)
}

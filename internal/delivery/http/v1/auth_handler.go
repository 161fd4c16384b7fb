package v1

import (
	"net/http"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, limit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth", limit)
	{
		publicAuth.POST("/register/student", handler.RegisterStudent)
		publicAuth.POST("/register/company", handler.RegisterCompany)
		publicAuth.POST("/login", handler.Login)
	}

	protected.GET("/auth/me", handler.Me)
}

type StudentAuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Student `json:"user"`
}

type CompanyAuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Company *domain.Company `json:"company"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    domain.Role `json:"role"`
	User    interface{} `json:"user"`
}

type MeResponse struct {
	User interface{} `json:"user"`
	Role domain.Role `json:"role"`
}

// RegisterStudent godoc
// @Summary      Register a student
// @Description  Creates a student account and returns a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterStudentInput  true  "Student details"
// @Success      201   {object}  StudentAuthResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      429   {object}  response.ErrorBody
// @Router       /auth/register/student [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req domain.RegisterStudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	res, err := h.authUC.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, StudentAuthResponse{
		Message: "Student registered successfully",
		Token:   res.Token,
		User:    res.Account.Student,
	})
}

// RegisterCompany godoc
// @Summary      Register a company
// @Description  Creates a company account in Pending status and returns a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.RegisterCompanyInput  true  "Company details"
// @Success      201   {object}  CompanyAuthResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      429   {object}  response.ErrorBody
// @Router       /auth/register/company [post]
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req domain.RegisterCompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	res, err := h.authUC.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, CompanyAuthResponse{
		Message: "Company registered successfully. Your account is pending approval.",
		Token:   res.Token,
		Company: res.Account.Company,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates a student, company or admin by email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.LoginInput  true  "Credentials"
// @Success      200   {object}  LoginResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      429   {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Please provide email and password"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.authUC.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		Role:    res.Role,
		User:    res.Account.Public(),
	})
}

// Me godoc
// @Summary      Current account
// @Description  Returns the authenticated account and its role
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MeResponse
// @Failure      401  {object}  response.ErrorBody
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id := domain.IdentityFrom(c.Request.Context())
	if id == nil {
		c.Error(apperror.Unauthenticated("Not authenticated", nil))
		return
	}
	response.JSON(c, http.StatusOK, MeResponse{User: id.Account.Public(), Role: id.Role})
}

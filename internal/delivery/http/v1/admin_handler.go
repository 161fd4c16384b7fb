package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/middleware"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", handler.GetStats)

		// Company review
		admin.GET("/companies/pending", handler.ListPendingCompanies)
		admin.GET("/companies", handler.ListCompanies)
		admin.PUT("/companies/approve/:id", handler.ApproveCompany)
		admin.PUT("/companies/reject/:id", handler.RejectCompany)
	}
}

type CompanyDecisionResponse struct {
	Message string          `json:"message"`
	Company *domain.Company `json:"company"`
}

type RejectCompanyRequest struct {
	Reason string `json:"reason"`
}

// GetStats godoc
// @Summary      Get admin dashboard statistics
// @Description  Returns counts for students, companies, internships, and applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AdminStats
// @Failure      403  {object}  response.ErrorBody
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// ListPendingCompanies godoc
// @Summary      List pending companies
// @Description  Companies awaiting review, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CompanyList
// @Failure      403  {object}  response.ErrorBody
// @Router       /admin/companies/pending [get]
func (h *AdminHandler) ListPendingCompanies(c *gin.Context) {
	list, err := h.adminUC.ListPendingCompanies(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// ListCompanies godoc
// @Summary      List companies
// @Description  All companies newest first, optionally filtered by status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pending, Approved or Rejected"
// @Success      200     {object}  domain.CompanyList
// @Failure      400     {object}  response.ErrorBody
// @Failure      403     {object}  response.ErrorBody
// @Router       /admin/companies [get]
func (h *AdminHandler) ListCompanies(c *gin.Context) {
	list, err := h.adminUC.ListCompanies(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// ApproveCompany godoc
// @Summary      Approve a company
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  CompanyDecisionResponse
// @Failure      400  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /admin/companies/approve/{id} [put]
func (h *AdminHandler) ApproveCompany(c *gin.Context) {
	company, err := h.adminUC.ApproveCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, CompanyDecisionResponse{Message: "Company approved successfully", Company: company})
}

// RejectCompany godoc
// @Summary      Reject a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true   "Company ID"
// @Param        body  body      RejectCompanyRequest  false  "Optional reason"
// @Success      200   {object}  CompanyDecisionResponse
// @Failure      404   {object}  response.ErrorBody
// @Router       /admin/companies/reject/{id} [put]
func (h *AdminHandler) RejectCompany(c *gin.Context) {
	var req RejectCompanyRequest
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	company, err := h.adminUC.RejectCompany(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, CompanyDecisionResponse{Message: "Company rejected", Company: company})
}

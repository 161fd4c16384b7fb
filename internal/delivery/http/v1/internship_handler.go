package v1

import (
	"net/http"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/middleware"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	internshipUC  domain.InternshipUsecase
	applicationUC domain.ApplicationUsecase
}

func NewInternshipHandler(protected *gin.RouterGroup, internshipUC domain.InternshipUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &InternshipHandler{internshipUC: internshipUC, applicationUC: applicationUC}

	internships := protected.Group("/internships")
	{
		internships.GET("", handler.ListOpen)
		internships.GET("/mine", middleware.RequireRole(domain.RoleCompany), handler.ListMine)
		internships.GET("/:id", handler.Get)

		approved := internships.Group("", middleware.RequireRole(domain.RoleCompany), middleware.RequireApprovedCompany())
		approved.POST("", handler.Create)
		approved.PUT("/:id", handler.Update)
		approved.PUT("/:id/close", handler.Close)
		approved.GET("/:id/applications", handler.ListApplications)

		internships.POST("/:id/applications", middleware.RequireRole(domain.RoleStudent), handler.Apply)
	}
}

type InternshipResponse struct {
	Message    string             `json:"message,omitempty"`
	Internship *domain.Internship `json:"internship"`
}

// ListOpen godoc
// @Summary      List open internships
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        programme  query     string  false  "Only internships targeting this programme"
// @Success      200        {object}  domain.InternshipList
// @Failure      400        {object}  response.ErrorBody
// @Router       /internships [get]
func (h *InternshipHandler) ListOpen(c *gin.Context) {
	list, err := h.internshipUC.ListOpen(c.Request.Context(), c.Query("programme"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// ListMine godoc
// @Summary      List the calling company's internships
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.InternshipList
// @Failure      403  {object}  response.ErrorBody
// @Router       /internships/mine [get]
func (h *InternshipHandler) ListMine(c *gin.Context) {
	list, err := h.internshipUC.ListMine(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary      Get an internship
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Internship ID"
// @Success      200  {object}  InternshipResponse
// @Failure      404  {object}  response.ErrorBody
// @Router       /internships/{id} [get]
func (h *InternshipHandler) Get(c *gin.Context) {
	internship, err := h.internshipUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, InternshipResponse{Internship: internship})
}

// Create godoc
// @Summary      Post an internship
// @Description  Approved companies only
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.InternshipInput  true  "Internship"
// @Success      201   {object}  InternshipResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      403   {object}  response.ErrorBody
// @Router       /internships [post]
func (h *InternshipHandler) Create(c *gin.Context) {
	var req domain.InternshipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	internship, err := h.internshipUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, InternshipResponse{Message: "Internship created successfully", Internship: internship})
}

// Update godoc
// @Summary      Update an internship
// @Tags         internships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Internship ID"
// @Param        body  body      domain.InternshipInput  true  "Internship"
// @Success      200   {object}  InternshipResponse
// @Failure      403   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /internships/{id} [put]
func (h *InternshipHandler) Update(c *gin.Context) {
	var req domain.InternshipInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	internship, err := h.internshipUC.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, InternshipResponse{Message: "Internship updated successfully", Internship: internship})
}

// Close godoc
// @Summary      Close an internship
// @Tags         internships
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Internship ID"
// @Success      200  {object}  InternshipResponse
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /internships/{id}/close [put]
func (h *InternshipHandler) Close(c *gin.Context) {
	internship, err := h.internshipUC.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, InternshipResponse{Message: "Internship closed", Internship: internship})
}

// Apply godoc
// @Summary      Apply to an internship
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true   "Internship ID"
// @Param        body  body      domain.ApplyInput  false  "Cover letter and resume"
// @Success      201   {object}  ApplicationResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /internships/{id}/applications [post]
func (h *InternshipHandler) Apply(c *gin.Context) {
	var req domain.ApplyInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.Validation("Invalid request body"))
			return
		}
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusCreated, ApplicationResponse{Message: "Application submitted successfully", Application: app})
}

// ListApplications godoc
// @Summary      List applications for an internship
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Internship ID"
// @Success      200  {object}  domain.ApplicationList
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /internships/{id}/applications [get]
func (h *InternshipHandler) ListApplications(c *gin.Context) {
	list, err := h.applicationUC.ListForInternship(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

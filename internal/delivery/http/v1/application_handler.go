package v1

import (
	"net/http"

	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/middleware"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/response"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/domain"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles HTTP requests for applications
type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := protected.Group("/applications")
	{
		apps.GET("/mine", middleware.RequireRole(domain.RoleStudent), handler.ListMine)
		apps.GET("/:id", middleware.RequireRole(domain.RoleStudent, domain.RoleCompany), handler.Get)
		apps.PUT("/:id/status",
			middleware.RequireRole(domain.RoleCompany),
			middleware.RequireApprovedCompany(),
			handler.UpdateStatus,
		)
	}
}

type ApplicationResponse struct {
	Message     string              `json:"message,omitempty"`
	Application *domain.Application `json:"application"`
}

// ListMine godoc
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ApplicationList
// @Failure      403  {object}  response.ErrorBody
// @Router       /applications/mine [get]
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	list, err := h.appUC.ListMine(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary      Get an application
// @Description  Visible to the applying student and the owning company
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  ApplicationResponse
// @Failure      403  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.appUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ApplicationResponse{Application: app})
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Any of Applied, Under Review, Interviewing, Offered, Rejected
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      domain.StatusUpdateInput  true  "New status"
// @Success      200   {object}  ApplicationResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      403   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req domain.StatusUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	app, err := h.appUC.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, ApplicationResponse{Message: "Application status updated", Application: app})
}

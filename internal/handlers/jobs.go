package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/models"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/types"
	"github.com/signingconnect/signingconnect-api/internal/utils"
	"gorm.io/gorm"
)

// JobHandler handles job posting and bidding routes
type JobHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type updateJobStatusRequest struct {
	Status          string  `json:"status"`
	AssignedAgentID *uint64 `json:"assignedAgentId"`
}

// Create handles POST /api/jobs
// @Summary Post a signing job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateJobInput true "Job posting"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	var in services.CreateJobInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	job, err := services.CreateJob(h.DB, user.ID, in)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Job posted successfully", fiber.Map{
		"job": job,
	})
}

// List handles GET /api/jobs
// @Summary List jobs
// @Description Companies see their own postings; agents see the open job board
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (companies only)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	user := utils.CurrentUser(c)

	if user.UserType == types.UserAgent {
		jobs, err := services.ListOpenJobs(h.DB, c.QueryInt("limit", 50))
		if err != nil {
			return handleServiceError(c, err, h.Cfg.IsProduction())
		}
		return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
			"jobs": jobs,
		})
	}

	page, limit := parsePagination(c)
	jobs, pagination, err := services.ListCompanyJobs(h.DB, user.ID, c.Query("status"), page, limit)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

// Get handles GET /api/jobs/:id
// @Summary Get one job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid job id")
	}

	job, err := services.GetJob(h.DB, id)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	if !canViewJob(utils.CurrentUser(c), job) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Insufficient permissions")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"job": job,
	})
}

// UpdateStatus handles PATCH /api/jobs/:id/status
// @Summary Update a job's status
// @Description Owning company only; may assign an agent alongside the status change
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Param body body updateJobStatusRequest true "New status and optional agent assignment"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid job id")
	}

	var in updateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	user := utils.CurrentUser(c)
	job, err := services.UpdateJobStatus(h.DB, id, user.ID, types.JobStatus(in.Status), in.AssignedAgentID)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Job status updated", fiber.Map{
		"job": job,
	})
}

// Apply handles POST /api/jobs/:id/apply
// @Summary Bid on an open job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Param body body services.BidInput true "Bid details"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid job id")
	}

	var in services.BidInput
	if err := c.BodyParser(&in); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	user := utils.CurrentUser(c)
	bid, err := services.ApplyToJob(h.DB, id, user.ID, in)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Application submitted", fiber.Map{
		"jobApplication": bid,
	})
}

// ListBids handles GET /api/jobs/:id/applications
// @Summary List bids on a job
// @Description Owning company only
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /jobs/{id}/applications [get]
func (h *JobHandler) ListBids(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ValidationErrorResponse(c, "Invalid job id")
	}

	user := utils.CurrentUser(c)
	bids, err := services.ListJobBids(h.DB, id, user.ID)
	if err != nil {
		return handleServiceError(c, err, h.Cfg.IsProduction())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "", fiber.Map{
		"jobApplications": bids,
	})
}

// canViewJob checks per-role access to a single job record: admins see
// everything, companies their own postings, agents open jobs and their
// own assignments.
func canViewJob(user *models.User, job *models.Job) bool {
	switch user.UserType {
	case types.UserAdmin:
		return true
	case types.UserCompany:
		return job.CompanyID == user.ID
	case types.UserAgent:
		if job.Status == types.JobOpen {
			return true
		}
		return job.AssignedAgentID != nil && *job.AssignedAgentID == user.ID
	}
	return false
}

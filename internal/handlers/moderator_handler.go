package handlers

import (
	"errors"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/middleware"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/askwellapp/askwell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModeratorHandler struct {
	questions  *services.QuestionService
	content    *services.ContentService
	reports    *services.ReportService
	moderation *services.ModerationService
}

func NewModeratorHandler(questions *services.QuestionService, content *services.ContentService, reports *services.ReportService, moderation *services.ModerationService) *ModeratorHandler {
	return &ModeratorHandler{
		questions:  questions,
		content:    content,
		reports:    reports,
		moderation: moderation,
	}
}

// actorID resolves the acting moderator. RoleRequired stashes the user
// record; the operator-token bypass carries no user, so uuid.Nil stands
// in and moderation stamps record no moderator.
func actorID(c *fiber.Ctx) uuid.UUID {
	if user, ok := c.Locals("actor").(*models.User); ok {
		return user.ID
	}
	if id, err := middleware.UserID(c); err == nil {
		return id
	}
	return uuid.Nil
}

// ReviewQueue lists questions currently under review.
func (h *ModeratorHandler) ReviewQueue(c *fiber.Ctx) error {
	limit, offset := paging(c)

	questions, total, err := h.questions.ListByStatus(models.StatusUnderReview, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load review queue",
		})
	}

	return c.JSON(fiber.Map{"questions": questions, "total": total})
}

// ReportedContent lists reports, newest first, filtered by the optional
// status and type query params.
func (h *ModeratorHandler) ReportedContent(c *fiber.Ctx) error {
	limit, offset := paging(c)
	status := models.ReportStatus(c.Query("status"))
	contentType := models.ContentType(c.Query("type"))

	reports, total, err := h.reports.List(status, contentType, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list reports",
		})
	}

	return c.JSON(fiber.Map{"reports": reports, "total": total})
}

func (h *ModeratorHandler) ModerateQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid question id",
		})
	}

	var req dto.ModerateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	question, err := h.content.ModerateQuestion(questionID, actorID(c), models.Status(req.Status), req.ModerationNote)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(question)
}

func (h *ModeratorHandler) ModerateAnswer(c *fiber.Ctx) error {
	answerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid answer id",
		})
	}

	var req dto.ModerateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	answer, err := h.content.ModerateAnswer(answerID, actorID(c), models.Status(req.Status), req.ModerationNote)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnswerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(answer)
}

// ReportQuestion escalates a question: it is flagged under review and a
// high severity report is opened in one step.
func (h *ModeratorHandler) ReportQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid question id",
		})
	}

	var req dto.ModeratorReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reports.SubmitByModerator(questionID, actorID(c), req.Reason, req.Details)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModeratorHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report id",
		})
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.moderation.ResolveReport(reportID, actorID(c), models.ReportAction(req.Action), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyResolved):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidAction):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(report)
}

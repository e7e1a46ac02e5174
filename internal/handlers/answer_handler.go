package handlers

import (
	"errors"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/middleware"
	"github.com/askwellapp/askwell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AnswerHandler struct {
	answers *services.AnswerService
}

func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

func (h *AnswerHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	answer, err := h.answers.Create(userID, req.QuestionID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

func (h *AnswerHandler) List(c *fiber.Ctx) error {
	limit, offset := paging(c)

	answers, err := h.answers.ListRecent(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list answers",
		})
	}

	return c.JSON(fiber.Map{"answers": answers})
}

func (h *AnswerHandler) ListByQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("questionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid question id",
		})
	}

	answers, err := h.answers.ListByQuestion(questionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list answers",
		})
	}

	return c.JSON(fiber.Map{"answers": answers})
}

func (h *AnswerHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	answers, err := h.answers.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list answers",
		})
	}

	return c.JSON(fiber.Map{"answers": answers})
}

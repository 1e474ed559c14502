package controller

import (
	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/entity"
	"banking-rag-be/internal/pkg/serverutils"
	"banking-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUpdateController interface {
	RegisterRoutes(r fiber.Router)
	GetFeed(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
}

type updateController struct {
	updateService service.IUpdateService
}

func NewUpdateController(updateService service.IUpdateService) IUpdateController {
	return &updateController{
		updateService: updateService,
	}
}

func (c *updateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/updates/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetFeed)

	// Ingestion is reserved for privileged roles.
	h.Post("", serverutils.RequireRoles(
		string(entity.UserRoleAdmin),
		string(entity.UserRoleComplianceExpert),
	), c.Ingest)
}

func (c *updateController) GetFeed(ctx *fiber.Ctx) error {
	var query dto.UpdateFeedQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.updateService.GetFeed(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get updates feed", res))
}

func (c *updateController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.updateService.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest update", res))
}

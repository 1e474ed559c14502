package controller

import (
	"banking-rag-be/internal/dto"
	"banking-rag-be/internal/pkg/serverutils"
	"banking-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IComparativeController interface {
	RegisterRoutes(r fiber.Router)
	GetMatrix(ctx *fiber.Ctx) error
}

type comparativeController struct {
	comparativeService service.IComparativeService
}

func NewComparativeController(comparativeService service.IComparativeService) IComparativeController {
	return &comparativeController{
		comparativeService: comparativeService,
	}
}

func (c *comparativeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/comparatives/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetMatrix)
}

func (c *comparativeController) GetMatrix(ctx *fiber.Ctx) error {
	var query dto.ComparativeQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.comparativeService.GetMatrix(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get comparative matrix", res))
}

package detectionHandler

import (
	"ProjectVision/internal/api/detection"
	contextPkg "ProjectVision/pkg/context"
	"ProjectVision/pkg/handlerUtil"
	"ProjectVision/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *DetectionHandler) ListModels(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)

	result := h.detectionService.ListModels(contextPkg.FromFiberCtx(ctx))
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
}

func (h *DetectionHandler) SwitchModel(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req detection.ModelSwitchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrInvalidModel, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"model":      req.ModelName,
	}).Debug("Processing model switch request")

	result, err := h.detectionService.SwitchModel(c, req.ModelName)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "switch_model")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"model":      req.ModelName,
		}).Info("Model switch handled")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

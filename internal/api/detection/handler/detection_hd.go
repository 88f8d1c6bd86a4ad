package detectionHandler

import (
	contextPkg "ProjectVision/pkg/context"
	"ProjectVision/pkg/handlerUtil"
	"ProjectVision/pkg/log"
	"ProjectVision/pkg/response"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *DetectionHandler) Detect(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	// The reference frontend posts the upload as "file"; "image" is kept
	// for clients of the older detection endpoints.
	file, err := ctx.FormFile("file")
	if err != nil {
		file, err = ctx.FormFile("image")
	}
	if err != nil {
		return errHandler.Handle(ctx, requestID,
			response.NewError(http.StatusBadRequest, "no file uploaded"),
			ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing detection request")

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.Handle(ctx, requestID,
			response.NewError(http.StatusBadRequest, err.Error()),
			ctx.Path(), "validate_image_file")
	}

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	imageData, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	result, err := h.detectionService.Detect(c, imageData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "detect")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"detections": len(result.Detections),
		}).Info("Detection successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

package detectionService

import (
	"ProjectVision/internal/api/detection"
	"ProjectVision/internal/entity"
	"ProjectVision/pkg/annotate"
	contextPkg "ProjectVision/pkg/context"
	"ProjectVision/pkg/log"
	"ProjectVision/pkg/response"
	"ProjectVision/pkg/yolo"
	"bytes"
	"fmt"
	"image"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/net/context"
)

// Detect runs the full pipeline: decode, inference on the active model,
// annotation, JPEG data URI. It never mutates the active-model state;
// any failure aborts the request with no partial result.
func (s *detectionService) Detect(ctx context.Context, imageData []byte) (*detection.DetectionResponse, error) {
	_, detector, loaded := s.models.Current()
	if !loaded {
		return nil, detection.ErrModelNotLoaded
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, response.NewError(http.StatusInternalServerError, fmt.Sprintf("failed to decode image: %v", err))
	}

	detections, err := runInference(ctx, detector, imageData)
	if err != nil {
		return nil, response.NewError(http.StatusInternalServerError, err.Error())
	}
	if detections == nil {
		detections = []entity.Detection{}
	}

	annotated := annotate.Render(img, detections)
	jpegData, err := annotate.EncodeJPEG(annotated)
	if err != nil {
		return nil, response.NewError(http.StatusInternalServerError, err.Error())
	}

	s.log.WithFields(log.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"detections": len(detections),
	}).Debug("Detection pipeline finished")

	return &detection.DetectionResponse{
		Detections: detections,
		Image:      annotate.DataURI(jpegData),
	}, nil
}

// runInference shields the request from engine panics. OpenCV surfaces
// native exceptions as panics; the request must still get a response.
func runInference(ctx context.Context, detector yolo.Detector, imageData []byte) (detections []entity.Detection, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inference failed: %v", r)
		}
	}()

	return detector.Detect(ctx, imageData)
}

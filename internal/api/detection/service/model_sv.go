package detectionService

import (
	"ProjectVision/internal/api/detection"
	contextPkg "ProjectVision/pkg/context"
	"ProjectVision/pkg/log"
	"ProjectVision/pkg/yolo"
	"errors"
	"fmt"

	"golang.org/x/net/context"
)

func (s *detectionService) ListModels(ctx context.Context) *detection.ModelListResponse {
	_ = ctx
	return &detection.ModelListResponse{
		CurrentModel:    s.models.CurrentName(),
		AvailableModels: yolo.Available(),
	}
}

func (s *detectionService) SwitchModel(ctx context.Context, modelName string) (*detection.ModelSwitchResponse, error) {
	already, err := s.models.Switch(ctx, modelName)
	if err != nil {
		if errors.Is(err, yolo.ErrUnknownModel) {
			return nil, detection.ErrInvalidModel
		}

		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"model":      modelName,
			"error":      err.Error(),
		}).Error("Model load failed, previous model kept")
		return nil, detection.ErrModelLoadFailed
	}

	if already {
		return &detection.ModelSwitchResponse{
			Message: fmt.Sprintf("Model is already %s", modelName),
		}, nil
	}

	return &detection.ModelSwitchResponse{
		Message:      fmt.Sprintf("Switched to %s", modelName),
		CurrentModel: s.models.CurrentName(),
	}, nil
}

package detectionService

import (
	"ProjectVision/internal/api/detection"
	"ProjectVision/pkg/yolo"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IDetectionService interface {
	ListModels(ctx context.Context) *detection.ModelListResponse
	SwitchModel(ctx context.Context, modelName string) (*detection.ModelSwitchResponse, error)
	Detect(ctx context.Context, imageData []byte) (*detection.DetectionResponse, error)
}

type detectionService struct {
	log    *logrus.Logger
	models *yolo.Holder
}

func NewDetectionService(
	log *logrus.Logger,
	models *yolo.Holder,
) IDetectionService {
	return &detectionService{
		log:    log,
		models: models,
	}
}

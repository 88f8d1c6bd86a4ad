package detection

import "ProjectVision/internal/entity"

type ModelSwitchRequest struct {
	ModelName string `json:"model_name" validate:"required"`
}

type ModelListResponse struct {
	CurrentModel    string   `json:"current_model"`
	AvailableModels []string `json:"available_models"`
}

type ModelSwitchResponse struct {
	Message      string `json:"message"`
	CurrentModel string `json:"current_model,omitempty"`
}

type DetectionResponse struct {
	Detections []entity.Detection `json:"detections"`
	Image      string             `json:"image"`
}

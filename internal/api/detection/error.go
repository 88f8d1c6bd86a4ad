package detection

import (
	"ProjectVision/pkg/response"
	"net/http"
)

var (
	ErrInvalidModel    = response.NewError(http.StatusBadRequest, "invalid model name")
	ErrModelLoadFailed = response.NewError(http.StatusInternalServerError, "failed to load model")
	ErrModelNotLoaded  = response.NewError(http.StatusInternalServerError, "Model not loaded")
)

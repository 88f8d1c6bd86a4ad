package detectionService

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ProjectVision/internal/api/detection"
	"ProjectVision/pkg/yolo"
)

func TestListModels(t *testing.T) {
	svc, _ := newTestService(t, map[string]*fakeDetector{"yolo11n": {}})

	resp := svc.ListModels(context.Background())
	require.Contains(t, resp.AvailableModels, resp.CurrentModel)
	require.Equal(t, yolo.Available(), resp.AvailableModels)
}

func TestSwitchModel_Invalid(t *testing.T) {
	svc, _ := newTestService(t, map[string]*fakeDetector{"yolo11n": {}})

	before := svc.ListModels(context.Background()).CurrentModel

	_, err := svc.SwitchModel(context.Background(), "not-a-model")
	require.ErrorIs(t, err, detection.ErrInvalidModel)
	require.Equal(t, before, svc.ListModels(context.Background()).CurrentModel)
}

func TestSwitchModel_Success(t *testing.T) {
	svc, _ := newTestService(t, map[string]*fakeDetector{
		"yolo11n": {},
		"yolo11s": {},
	})

	resp, err := svc.SwitchModel(context.Background(), "yolo11s")
	require.NoError(t, err)
	require.Equal(t, "Switched to yolo11s", resp.Message)
	require.Equal(t, "yolo11s", resp.CurrentModel)
	require.Equal(t, "yolo11s", svc.ListModels(context.Background()).CurrentModel)
}

func TestSwitchModel_AlreadyActive(t *testing.T) {
	svc, _ := newTestService(t, map[string]*fakeDetector{"yolo11s": {}})

	_, err := svc.SwitchModel(context.Background(), "yolo11s")
	require.NoError(t, err)

	resp, err := svc.SwitchModel(context.Background(), "yolo11s")
	require.NoError(t, err)
	require.Equal(t, "Model is already yolo11s", resp.Message)
	require.Empty(t, resp.CurrentModel)
}

func TestSwitchModel_LoadFailureKeepsPrevious(t *testing.T) {
	nano := &fakeDetector{}
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": nano})

	_, err := svc.SwitchModel(context.Background(), "yolo11n")
	require.NoError(t, err)

	_, err = svc.SwitchModel(context.Background(), "yolo11x")
	require.ErrorIs(t, err, detection.ErrModelLoadFailed)

	require.Equal(t, "yolo11n", svc.ListModels(context.Background()).CurrentModel)

	// Detection keeps using the previous model.
	_, err = svc.Detect(context.Background(), pngBytes(t, 16, 16))
	require.NoError(t, err)
	require.Equal(t, 1, nano.calls)
	require.Equal(t, "yolo11n", holder.CurrentName())
}

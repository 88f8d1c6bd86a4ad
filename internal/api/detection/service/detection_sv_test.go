package detectionService

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"ProjectVision/internal/api/detection"
	"ProjectVision/internal/entity"
	"ProjectVision/pkg/response"
	"ProjectVision/pkg/yolo"
)

type fakeDetector struct {
	detections []entity.Detection
	err        error
	panicMsg   string
	calls      int
}

func (f *fakeDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	f.calls++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.detections, f.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestService wires a service around a holder whose loader hands out
// the given detectors by model name.
func newTestService(t *testing.T, detectors map[string]*fakeDetector) (IDetectionService, *yolo.Holder) {
	t.Helper()
	holder := yolo.NewHolder("models", func(name, weightsPath string) (yolo.Detector, error) {
		d, ok := detectors[name]
		if !ok {
			return nil, errors.New("weights missing")
		}
		return d, nil
	})
	return NewDetectionService(quietLogger(), holder), holder
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetect_ModelNotLoaded(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Detect(context.Background(), pngBytes(t, 32, 32))
	require.ErrorIs(t, err, detection.ErrModelNotLoaded)
}

func TestDetect_DecodeFailure(t *testing.T) {
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": {}})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	_, err = svc.Detect(context.Background(), []byte("not an image"))
	require.Error(t, err)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, 500, respErr.Code)
	require.NotEmpty(t, respErr.Error())

	// Failure leaves the active model untouched.
	require.Equal(t, "yolo11n", holder.CurrentName())
	_, _, loaded := holder.Current()
	require.True(t, loaded)
}

func TestDetect_EmptyInput(t *testing.T) {
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": {}})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	_, err = svc.Detect(context.Background(), nil)
	require.Error(t, err)
}

func TestDetect_Success(t *testing.T) {
	fake := &fakeDetector{detections: []entity.Detection{
		{Class: "person", Confidence: 0.88, BBox: [4]float64{4, 6, 40, 44}},
	}}
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": fake})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	resp, err := svc.Detect(context.Background(), pngBytes(t, 64, 48))
	require.NoError(t, err)
	require.Len(t, resp.Detections, 1)
	require.Equal(t, "person", resp.Detections[0].Class)
	require.Equal(t, 1, fake.calls)
	require.True(t, strings.HasPrefix(resp.Image, "data:image/jpeg;base64,"))

	box := resp.Detections[0].BBox
	require.LessOrEqual(t, 0.0, box[0])
	require.LessOrEqual(t, box[0], box[2])
	require.LessOrEqual(t, 0.0, box[1])
	require.LessOrEqual(t, box[1], box[3])
	require.LessOrEqual(t, box[2], 64.0)
	require.LessOrEqual(t, box[3], 48.0)
	require.InDelta(t, 0.88, resp.Detections[0].Confidence, 1e-9)
}

func TestDetect_NoObjects(t *testing.T) {
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": {}})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	resp, err := svc.Detect(context.Background(), pngBytes(t, 32, 32))
	require.NoError(t, err)
	require.NotNil(t, resp.Detections)
	require.Empty(t, resp.Detections)
	require.True(t, strings.HasPrefix(resp.Image, "data:image/jpeg;base64,"))
}

func TestDetect_InferencePanic(t *testing.T) {
	fake := &fakeDetector{panicMsg: "cv::Exception: blob dimension mismatch"}
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": fake})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	var resp *detection.DetectionResponse
	require.NotPanics(t, func() {
		resp, err = svc.Detect(context.Background(), pngBytes(t, 32, 32))
	})
	require.Nil(t, resp)
	require.Error(t, err)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, 500, respErr.Code)
	require.Contains(t, respErr.Error(), "blob dimension mismatch")

	// The active model survives the failed request.
	require.Equal(t, "yolo11n", holder.CurrentName())
	_, _, loaded := holder.Current()
	require.True(t, loaded)
}

func TestDetect_InferenceError(t *testing.T) {
	fake := &fakeDetector{err: errors.New("forward pass failed")}
	svc, holder := newTestService(t, map[string]*fakeDetector{"yolo11n": fake})
	_, err := holder.Switch(context.Background(), "yolo11n")
	require.NoError(t, err)

	_, err = svc.Detect(context.Background(), pngBytes(t, 32, 32))
	require.Error(t, err)

	var respErr *response.Error
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, 500, respErr.Code)
	require.Contains(t, respErr.Error(), "forward pass failed")
}

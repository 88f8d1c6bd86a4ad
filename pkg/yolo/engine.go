//go:build gocv
// +build gocv

package yolo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"ProjectVision/internal/entity"
)

const (
	inputSize     = 640
	confThreshold = 0.25
	iouThreshold  = 0.45
)

type onnxDetector struct {
	mu   sync.Mutex
	net  gocv.Net
	name string
}

// LoadDetector reads the ONNX weights for a variant into an OpenCV DNN
// network. OpenCV raises on unreadable or incompatible files; the raise
// is converted to an error so the previously active model stays usable.
func LoadDetector(name, weightsPath string) (detector Detector, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read network %s: %v", weightsPath, r)
		}
	}()

	net := gocv.ReadNetFromONNX(weightsPath)
	if net.Empty() {
		return nil, fmt.Errorf("read network %s: empty network", weightsPath)
	}
	return &onnxDetector{net: net, name: name}, nil
}

func (d *onnxDetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if !mat.Empty() {
			mat.Close()
		}
		return nil, errors.New("failed to decode image")
	}
	defer mat.Close()

	origW := mat.Cols()
	origH := mat.Rows()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	out, err := d.forward(blob)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	return decodeOutput(out, origW, origH)
}

// forward runs one inference pass. The DNN net is stateful across
// SetInput/Forward and must not run two inferences at once. OpenCV
// raises on shape or type mismatches; the raise is converted to an
// error so the caller can answer the request instead of crashing.
func (d *onnxDetector) forward(blob gocv.Mat) (out gocv.Mat, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("inference on %s: %v", d.name, r)
		}
	}()

	d.net.SetInput(blob, "")
	return d.net.Forward(""), nil
}

// decodeOutput parses the [1 x 4+classes x anchors] YOLO11 output head,
// applies the confidence threshold and non-maximum suppression, and maps
// boxes back into the source image's pixel space.
func decodeOutput(out gocv.Mat, origW, origH int) ([]entity.Detection, error) {
	sizes := out.Size()
	if len(sizes) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	channels := sizes[1]
	anchors := sizes[2]

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output tensor: %w", err)
	}

	xScale := float64(origW) / inputSize
	yScale := float64(origH) / inputSize

	var (
		boxes   []image.Rectangle
		scores  []float32
		classes []int
	)
	for j := 0; j < anchors; j++ {
		best := -1
		var bestScore float32
		for c := 4; c < channels; c++ {
			if s := data[c*anchors+j]; s > bestScore {
				bestScore = s
				best = c - 4
			}
		}
		if best < 0 || bestScore < confThreshold {
			continue
		}

		cx := float64(data[0*anchors+j])
		cy := float64(data[1*anchors+j])
		w := float64(data[2*anchors+j])
		h := float64(data[3*anchors+j])

		x1 := int((cx - w/2) * xScale)
		y1 := int((cy - h/2) * yScale)
		x2 := int((cx + w/2) * xScale)
		y2 := int((cy + h/2) * yScale)
		boxes = append(boxes, image.Rect(x1, y1, x2, y2))
		scores = append(scores, bestScore)
		classes = append(classes, best)
	}

	detections := make([]entity.Detection, 0, len(boxes))
	if len(boxes) == 0 {
		return detections, nil
	}

	for _, idx := range gocv.NMSBoxes(boxes, scores, confThreshold, iouThreshold) {
		r := boxes[idx]
		detections = append(detections, entity.Detection{
			Class:      Label(classes[idx]),
			Confidence: float64(scores[idx]),
			BBox: [4]float64{
				clamp(float64(r.Min.X), 0, float64(origW)),
				clamp(float64(r.Min.Y), 0, float64(origH)),
				clamp(float64(r.Max.X), 0, float64(origW)),
				clamp(float64(r.Max.Y), 0, float64(origH)),
			},
		})
	}
	return detections, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

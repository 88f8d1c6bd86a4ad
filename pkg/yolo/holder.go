package yolo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"ProjectVision/internal/entity"
)

var (
	ErrUnknownModel = errors.New("unknown model name")
	ErrNotLoaded    = errors.New("model not loaded")
)

// Detector runs inference on a single encoded image and returns the
// detections in the model's native output order.
type Detector interface {
	Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error)
}

// LoadFunc loads the weights for a registry model into a ready Detector.
type LoadFunc func(name, weightsPath string) (Detector, error)

type active struct {
	name     string
	detector Detector
}

// Holder owns the process-wide active model. The name/detector pair is
// swapped atomically, so a concurrent reader always observes either the
// previous pair or the fully loaded new one, never a torn state.
// Replaced detectors are not closed; they are released at process exit.
type Holder struct {
	modelDir string
	load     LoadFunc
	current  atomic.Pointer[active]
}

// NewHolder creates a holder whose active name is the default variant
// with no detector loaded yet.
func NewHolder(modelDir string, load LoadFunc) *Holder {
	h := &Holder{modelDir: modelDir, load: load}
	h.current.Store(&active{name: DefaultModel})
	return h
}

// CurrentName returns the active model name. It is always a registry key,
// even before the first successful load.
func (h *Holder) CurrentName() string {
	return h.current.Load().name
}

// Current returns the active model name and detector. loaded is false
// when no weights have been loaded yet.
func (h *Holder) Current() (name string, detector Detector, loaded bool) {
	a := h.current.Load()
	return a.name, a.detector, a.detector != nil
}

// Switch makes name the active model. Switching to the loaded active
// name is a no-op reported through already; if the active name never
// loaded (failed startup) the load is retried. A load failure leaves
// the previous pair untouched. Concurrent switches are not serialized;
// the last one to complete wins.
func (h *Holder) Switch(ctx context.Context, name string) (already bool, err error) {
	if !IsKnown(name) {
		return false, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	if cur := h.current.Load(); cur.name == name && cur.detector != nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	path, _ := Resolve(h.modelDir, name)
	detector, err := h.load(name, path)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", name, err)
	}

	h.current.Store(&active{name: name, detector: detector})
	return false, nil
}

//go:build !gocv
// +build !gocv

package yolo

import "errors"

// LoadDetector fails in builds without the gocv tag: the service starts
// with no active model and detection reports it as not loaded.
func LoadDetector(name, weightsPath string) (Detector, error) {
	return nil, errors.New("gocv build tag is not enabled")
}

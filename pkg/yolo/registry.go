package yolo

import "path/filepath"

// DefaultModel is the variant loaded at startup when none is configured.
const DefaultModel = "yolo11n"

type variant struct {
	name    string
	weights string
}

// Fixed for the process lifetime. Order here is the order reported to
// clients, nano through extra-large.
var variants = []variant{
	{"yolo11n", "yolo11n.onnx"},
	{"yolo11s", "yolo11s.onnx"},
	{"yolo11m", "yolo11m.onnx"},
	{"yolo11l", "yolo11l.onnx"},
	{"yolo11x", "yolo11x.onnx"},
}

// Available returns the registry's model names in their fixed order.
func Available() []string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.name)
	}
	return names
}

// IsKnown reports whether name is a registry key.
func IsKnown(name string) bool {
	for _, v := range variants {
		if v.name == name {
			return true
		}
	}
	return false
}

// Resolve maps a model name to its weight-file path under modelDir.
func Resolve(modelDir, name string) (string, bool) {
	for _, v := range variants {
		if v.name == name {
			return filepath.Join(modelDir, v.weights), true
		}
	}
	return "", false
}

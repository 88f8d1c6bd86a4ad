package entity

// Detection is a single predicted object instance. BBox holds pixel
// coordinates in x1,y1,x2,y2 order relative to the original image.
type Detection struct {
	Class      string     `json:"class"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

package spotlight

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/esimov/spotlight/rectset"
	"github.com/esimov/spotlight/utils"
)

// FaceKind is the region kind assigned to detected faces.
const FaceKind = "face"

// FaceDetector finds faces with a pigo cascade classifier. The unpacked
// classifier is only read during detection, so one detector can serve
// several workers.
type FaceDetector struct {
	classifier *pigo.Pigo

	// Angle is the in-plane rotation of the searched faces, 0.0 - 1.0.
	Angle float64
	// MinQuality drops detections scoring below it.
	MinQuality float32
	// MinSize is the smallest face size in pixels.
	MinSize int
	// IoUThreshold is used to cluster overlapping detections.
	IoUThreshold float64
}

// NewFaceDetector unpacks a pigo cascade file.
func NewFaceDetector(cascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %v", err)
	}
	return &FaceDetector{
		classifier:   classifier,
		MinQuality:   5.0,
		MinSize:      20,
		IoUThreshold: 0.2,
	}, nil
}

// LoadFaceDetector reads a cascade file from disk and unpacks it.
func LoadFaceDetector(path string) (*FaceDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %v", err)
	}
	return NewFaceDetector(cascade)
}

// Detect runs the classifier over the image and returns the clustered
// detections.
func (fd *FaceDetector) Detect(img *image.NRGBA) []pigo.Detection {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()

	params := pigo.CascadeParams{
		MinSize:     fd.MinSize,
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// The result contains quadruplets of row, column, scale and detection score.
	faces := fd.classifier.RunCascade(params, fd.Angle)
	return fd.classifier.ClusterDetections(faces, fd.IoUThreshold)
}

// Regions detects the faces of img and returns them as regions, each one
// grown by padding pixels on every side.
func (fd *FaceDetector) Regions(img *image.NRGBA, padding float64) []Region {
	return faceRegions(fd.Detect(img), fd.MinQuality, padding)
}

// faceRegions converts detections to square regions centred on the detected
// face, keeping only those scoring above minQuality. Decoded images always
// start at the origin, so detections are already in image coordinates.
func faceRegions(dets []pigo.Detection, minQuality float32, padding float64) []Region {
	var out []Region
	for _, d := range dets {
		if d.Q <= minQuality {
			continue
		}
		side := float64(d.Scale)
		r := rectset.NewRect(
			float64(d.Row)-side/2,
			float64(d.Col)-side/2,
			side,
			side,
		).Outset(padding)

		out = append(out, Region{
			ID:   fmt.Sprintf("face-%d", len(out)+1),
			Kind: FaceKind,
			Rect: r,
		})
	}
	return out
}

// NewFaceMeasurer detects the faces of img and returns a measurer answering
// "document" or "image" with the image bounds and "face" with the faces.
func NewFaceMeasurer(fd *FaceDetector, img *image.NRGBA, padding float64) *RegionMeasurer {
	return NewRegionMeasurer(img.Bounds(), fd.Regions(img, padding)...)
}

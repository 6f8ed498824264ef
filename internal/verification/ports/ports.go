// Package ports declares the upstream evidence collaborators the verification
// service depends on. Adapters (AWS, caches, breakers) implement them; the
// engine never sees a live service handle, only resolved evidence values.
package ports

import "context"

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// OCR turns a document image into text.
type OCR interface {
	// ExtractText returns all recognized lines, in detection order, joined by
	// line breaks.
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// FaceComparer scores how closely the face in target matches the one in source.
type FaceComparer interface {
	CompareFaces(ctx context.Context, source, target []byte, threshold float64) (*FaceComparison, error)
}

// FaceDetector reports attributes of the most prominent face in an image.
type FaceDetector interface {
	// DetectFaces returns FaceDetected=false, not an error, when the image
	// holds no face.
	DetectFaces(ctx context.Context, image []byte) (*FaceDetection, error)
}

// FaceComparison is the port model of a face comparison.
type FaceComparison struct {
	Similarity float64 // 0-100
	Matched    bool
}

// FaceDetection is the port model of a face attribute detection.
type FaceDetection struct {
	FaceDetected bool
	EyesOpen     bool
	Smiling      bool
	Confidence   float64
}

// Package rekognition implements the face ports on Amazon Rekognition.
package rekognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"idcheck/internal/verification/adapters/awserr"
	"idcheck/internal/verification/ports"
)

const source = "rekognition"

// API is the subset of the Rekognition client used here.
type API interface {
	CompareFaces(ctx context.Context, params *rekognition.CompareFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.CompareFacesOutput, error)
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// Faces compares faces and reads face attributes.
type Faces struct {
	client API
}

func New(client API) *Faces {
	return &Faces{client: client}
}

func NewFromConfig(cfg aws.Config) *Faces {
	return New(rekognition.NewFromConfig(cfg))
}

// CompareFaces reports the best match between the face in source and the
// faces in target. Rekognition omits matches under the threshold, so no match
// reads as similarity 0.
func (f *Faces) CompareFaces(ctx context.Context, sourceImg, targetImg []byte, threshold float64) (*ports.FaceComparison, error) {
	out, err := f.client.CompareFaces(ctx, &rekognition.CompareFacesInput{
		SourceImage:         &types.Image{Bytes: sourceImg},
		TargetImage:         &types.Image{Bytes: targetImg},
		SimilarityThreshold: aws.Float32(float32(threshold)),
	})
	if err != nil {
		return nil, awserr.Classify(source, "CompareFaces", err)
	}

	var best float64
	for _, m := range out.FaceMatches {
		if m.Similarity != nil && float64(*m.Similarity) > best {
			best = float64(*m.Similarity)
		}
	}
	return &ports.FaceComparison{
		Similarity: best,
		Matched:    len(out.FaceMatches) > 0,
	}, nil
}

// DetectFaces reads the attributes of the first detected face.
func (f *Faces) DetectFaces(ctx context.Context, image []byte) (*ports.FaceDetection, error) {
	out, err := f.client.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: image},
		Attributes: []types.Attribute{types.AttributeAll},
	})
	if err != nil {
		return nil, awserr.Classify(source, "DetectFaces", err)
	}
	if len(out.FaceDetails) == 0 {
		return &ports.FaceDetection{}, nil
	}

	face := out.FaceDetails[0]
	det := &ports.FaceDetection{FaceDetected: true}
	if face.EyesOpen != nil {
		det.EyesOpen = face.EyesOpen.Value
	}
	if face.Smile != nil {
		det.Smiling = face.Smile.Value
	}
	if face.Confidence != nil {
		det.Confidence = float64(*face.Confidence)
	}
	return det, nil
}

var (
	_ ports.FaceComparer = (*Faces)(nil)
	_ ports.FaceDetector = (*Faces)(nil)
)

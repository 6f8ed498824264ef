// Package textract implements ports.OCR on Amazon Textract.
package textract

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"idcheck/internal/verification/adapters/awserr"
	"idcheck/internal/verification/ports"
)

const source = "textract"

// API is the subset of the Textract client used here.
type API interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// OCR reads printed text from a single-page document image.
type OCR struct {
	client API
}

// New wraps a Textract client, e.g. textract.NewFromConfig(cfg).
func New(client API) *OCR {
	return &OCR{client: client}
}

// NewFromConfig builds the adapter from a loaded AWS config.
func NewFromConfig(cfg aws.Config) *OCR {
	return New(textract.NewFromConfig(cfg))
}

// ExtractText returns the detected LINE blocks joined by "\n" in detection
// order. A document without text yields "" and no error.
func (o *OCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	out, err := o.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return "", awserr.Classify(source, "DetectDocumentText", err)
	}

	lines := make([]string, 0, len(out.Blocks))
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		lines = append(lines, *block.Text)
	}
	return strings.Join(lines, "\n"), nil
}

var _ ports.OCR = (*OCR)(nil)

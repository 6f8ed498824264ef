// Package awserr maps AWS SDK failures onto evidence error categories.
package awserr

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"

	"idcheck/internal/verification/ports"
)

var codeCategories = map[string]ports.ErrorCategory{
	"ThrottlingException":                    ports.ErrorRateLimited,
	"ProvisionedThroughputExceededException": ports.ErrorRateLimited,
	"LimitExceededException":                 ports.ErrorRateLimited,

	"AccessDeniedException":       ports.ErrorAuthentication,
	"UnrecognizedClientException": ports.ErrorAuthentication,
	"ExpiredTokenException":       ports.ErrorAuthentication,
	"InvalidSignatureException":   ports.ErrorAuthentication,

	"InvalidParameterException":    ports.ErrorBadData,
	"InvalidImageFormatException":  ports.ErrorBadData,
	"ImageTooLargeException":       ports.ErrorBadData,
	"UnsupportedDocumentException": ports.ErrorBadData,
	"BadDocumentException":         ports.ErrorBadData,
	"DocumentTooLargeException":    ports.ErrorBadData,

	"InternalServerError":         ports.ErrorProviderOutage,
	"InternalFailure":             ports.ErrorProviderOutage,
	"ServiceUnavailable":          ports.ErrorProviderOutage,
	"ServiceUnavailableException": ports.ErrorProviderOutage,
}

// Classify wraps err as a categorized evidence error for source.
func Classify(source, op string, err error) error {
	if err == nil {
		return nil
	}
	return ports.NewEvidenceError(category(err), source, op+" failed", err)
}

func category(err error) ports.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ports.ErrorTimeout
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if c, ok := codeCategories[apiErr.ErrorCode()]; ok {
			return c
		}
		if apiErr.ErrorFault() == smithy.FaultServer {
			return ports.ErrorProviderOutage
		}
		return ports.ErrorBadData
	}
	return ports.ErrorInternal
}

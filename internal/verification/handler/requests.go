package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"idcheck/internal/verification"
	"idcheck/internal/verification/names"
	dErrors "idcheck/pkg/domain-errors"
)

// Multipart field names of POST /verifications.
const (
	fieldSelfie    = "selfie"
	fieldDocument  = "document"
	fieldBill      = "bill"
	fieldThreshold = "threshold"
)

// maxMemory is the part of a multipart body kept in memory; the rest spills to
// temporary files.
const maxMemory = 8 << 20

// parseVerifyForm reads the three images and the optional threshold. The
// body is capped at maxBytes.
func parseVerifyForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (verification.Request, error) {
	var req verification.Request

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return req, dErrors.New(dErrors.CodeUnsupportedMedia, "body must be multipart/form-data")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, dErrors.New(dErrors.CodePayloadTooLarge, "upload exceeds "+strconv.FormatInt(maxBytes, 10)+" bytes")
		}
		return req, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart body")
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	var err error
	if req.Selfie, err = readFile(r.MultipartForm, fieldSelfie); err != nil {
		return req, err
	}
	if req.Document, err = readFile(r.MultipartForm, fieldDocument); err != nil {
		return req, err
	}
	if req.Bill, err = readFile(r.MultipartForm, fieldBill); err != nil {
		return req, err
	}

	if raw := strings.TrimSpace(r.FormValue(fieldThreshold)); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, dErrors.New(dErrors.CodeValidation, "threshold must be a number")
		}
		req.Threshold = &t
	}
	return req, nil
}

func readFile(form *multipart.Form, field string) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, field+" image is required")
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "cannot read "+field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "cannot read "+field)
	}
	if len(data) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, field+" image is empty")
	}
	return data, nil
}

// ExtractRequest is the body of POST /names/extract.
type ExtractRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind"`

	parsedKind names.DocumentKind
}

// Validate implements httputil.Validatable.
func (r *ExtractRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	kind, err := names.ParseDocumentKind(r.Kind)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "kind must be identity or billing")
	}
	r.parsedKind = kind
	return nil
}

func (r *ExtractRequest) ParsedKind() names.DocumentKind {
	return r.parsedKind
}

// CompareRequest is the body of POST /names/compare. Empty names count as not
// found.
type CompareRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

func (r *CompareRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	const maxName = 256
	if len(r.A) > maxName || len(r.B) > maxName {
		return dErrors.New(dErrors.CodeValidation, "names must be at most 256 bytes")
	}
	return nil
}

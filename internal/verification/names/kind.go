package names

import (
	"errors"
	"fmt"
	"strings"
)

// DocumentKind selects the extraction rules and stop words for a document.
type DocumentKind string

const (
	KindIdentity DocumentKind = "identity"
	KindBilling  DocumentKind = "billing"
)

// ErrUnknownDocumentKind is returned by ParseDocumentKind.
var ErrUnknownDocumentKind = errors.New("unknown document kind")

// ParseDocumentKind accepts the canonical names plus the short aliases used by
// operators ("id", "doc", "bill").
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity", "id", "doc":
		return KindIdentity, nil
	case "billing", "bill":
		return KindBilling, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocumentKind, s)
}

func (k DocumentKind) String() string {
	return string(k)
}

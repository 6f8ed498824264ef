// Package liveness applies the eyes-open, not-smiling liveness heuristic to
// detected face attributes.
package liveness

// ReasonNoFace is reported when no face was detected.
const ReasonNoFace = "no face detected"

// Attributes are the face flags reported by the detector for a selfie.
type Attributes struct {
	FaceDetected bool `json:"face_detected"`
	EyesOpen     bool `json:"eyes_open"`
	Smiling      bool `json:"smiling"`
}

// NoFace is the attribute set used when detection failed or found nothing.
func NoFace() Attributes {
	return Attributes{}
}

// Verdict is the liveness outcome with a deterministic diagnostic reason.
type Verdict struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Evaluate passes only a detected face with open eyes and a neutral
// expression. A smile fails the check.
func Evaluate(attrs Attributes) Verdict {
	if !attrs.FaceDetected {
		return Verdict{Passed: false, Reason: ReasonNoFace}
	}
	return Verdict{
		Passed: attrs.EyesOpen && !attrs.Smiling,
		Reason: reason(attrs),
	}
}

func reason(attrs Attributes) string {
	eyes := "eyes closed"
	if attrs.EyesOpen {
		eyes = "eyes open"
	}
	expression := "neutral"
	if attrs.Smiling {
		expression = "smiling"
	}
	return eyes + ", " + expression
}

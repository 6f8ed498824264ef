// Package verdict fuses the face, name and liveness gates into the overall
// outcome of a validation run.
package verdict

import (
	"idcheck/internal/verification/face"
	"idcheck/internal/verification/liveness"
	"idcheck/internal/verification/names"
)

// Gate identifies one of the three independent checks.
type Gate string

const (
	GateFace     Gate = "face"
	GateName     Gate = "name"
	GateLiveness Gate = "liveness"
)

// Overall is built once per run and never mutated.
type Overall struct {
	Face     face.MatchVerdict
	Names    names.Comparison
	Liveness liveness.Verdict

	FacePass     bool
	NamePass     bool
	LivenessPass bool
	Success      bool

	// FailedGates lists failing gates in face, name, liveness order.
	FailedGates []Gate
}

// Fuse is a strict conjunction of the three gates. There is no weighting and
// no partial credit.
func Fuse(f face.MatchVerdict, n names.Comparison, l liveness.Verdict) Overall {
	out := Overall{
		Face:         f,
		Names:        n,
		Liveness:     l,
		FacePass:     f.Passed,
		NamePass:     n.Passed(),
		LivenessPass: l.Passed,
		FailedGates:  []Gate{},
	}
	if !out.FacePass {
		out.FailedGates = append(out.FailedGates, GateFace)
	}
	if !out.NamePass {
		out.FailedGates = append(out.FailedGates, GateName)
	}
	if !out.LivenessPass {
		out.FailedGates = append(out.FailedGates, GateLiveness)
	}
	out.Success = len(out.FailedGates) == 0
	return out
}

// Failed reports whether gate g failed.
func (o Overall) Failed(g Gate) bool {
	for _, failed := range o.FailedGates {
		if failed == g {
			return true
		}
	}
	return false
}

// Package contract holds the request/response types shared by the
// service layer, the CLI and the AI proposer client. Core planning
// types are re-exported so callers outside the engine never import
// internal/planning directly.
package contract

import "github.com/piplan-io/piplan/internal/planning"

type Proposed = planning.Proposed

type ValidateOptions = planning.Options

type RejectCode = planning.RejectCode

const (
	RejectUnknownFeature RejectCode = planning.RejectUnknownFeature
	RejectUnknownTeam    RejectCode = planning.RejectUnknownTeam
	RejectInvalidRange   RejectCode = planning.RejectInvalidRange
	RejectDependency     RejectCode = planning.RejectDependency
	RejectOverCapacity   RejectCode = planning.RejectOverCapacity
)

type WarningCode = planning.WarningCode

const (
	WarnSpanMismatch    WarningCode = planning.WarnSpanMismatch
	WarnDependencyCycle WarningCode = planning.WarnDependencyCycle
	WarnOverflowAllowed WarningCode = planning.WarnOverflowAllowed
	WarnBlockerPending  WarningCode = planning.WarnBlockerPending
)

type Warning = planning.Warning

type ValidationResult = planning.Result

type SprintCapacity = planning.SprintCapacity

type ReconcileResult = planning.ReconcileResult

type AcceptedCandidate = planning.AcceptedCandidate

type RejectedCandidate = planning.RejectedCandidate

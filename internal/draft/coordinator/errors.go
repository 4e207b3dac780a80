package coordinator

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation and state errors surface verbatim so the caller can correct
// themselves; none of them are retried automatically.
var (
	ErrNotAGeneralManager = errors.New("you do not manage a team in this season")
	ErrDraftNotConfigured = errors.New("no draft is configured for this season")
	ErrDraftPaused        = errors.New("the draft is paused")
	ErrPickNotFound       = errors.New("current pick record not found")
)

// NotOnTheClockError rejects a pick from a team whose turn it is not and that
// has no skipped picks outstanding.
type NotOnTheClockError struct {
	Overall     int
	OnClockTeam string
}

func (e *NotOnTheClockError) Error() string {
	if e.OnClockTeam != "" {
		return fmt.Sprintf("not your turn: %s is on the clock at pick %d", e.OnClockTeam, e.Overall)
	}
	return fmt.Sprintf("not your turn: pick %d belongs to another team", e.Overall)
}

// PlayerNotFoundError rejects a name that matched nothing in the pool.
type PlayerNotFoundError struct {
	Name string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("no player matches %q", e.Name)
}

// AmbiguousPlayerError rejects a name with several matches and no exact hit,
// surfacing the candidates rather than guessing.
type AmbiguousPlayerError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousPlayerError) Error() string {
	return fmt.Sprintf("%q matches several players: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// PlayerNotAvailableError rejects a player already on a roster.
type PlayerNotAvailableError struct {
	Name string
}

func (e *PlayerNotAvailableError) Error() string {
	return fmt.Sprintf("%s is not a free agent", e.Name)
}

// CapExceededError carries the computed numbers so the caller can decide what
// to cut.
type CapExceededError struct {
	Projected float64
	Limit     float64
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("selection would put the counted roster at %.2f against a cap of %.2f", e.Projected, e.Limit)
}

// PersistenceError aborts the whole operation: the selection write failed and
// nothing was committed.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to record the selection, nothing was committed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// LockHeldError rejects a request while another selection is in flight.
// There is no queueing: the caller retries after the lease runs out.
type LockHeldError struct {
	Holder     string
	RetryAfter time.Duration
}

func (e *LockHeldError) Error() string {
	return fmt.Sprintf("another selection is in progress, retry in %d seconds", int(e.RetryAfter.Seconds()+0.5))
}

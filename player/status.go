// SPDX-License-Identifier: EPL-2.0

package player

// Status is the coarse state of a Player.
type Status int

const (
	NotMounted Status = iota
	MountedUnscanned
	Idle
	Playing
	Paused
	Finished
	Error
)

func (s Status) String() string {
	switch s {
	case NotMounted:
		return "not mounted"
	case MountedUnscanned:
		return "mounted, unscanned"
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

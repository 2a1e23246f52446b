package notice

import (
	"tattler-go/onebot"
)

// Category of a recognized self-affecting administrative event.
type Category int

const (
	Mute Category = iota + 1
	Unmute
	AdminSet
	AdminUnset
	Kicked
	Invited
)

func (c Category) String() string {
	switch c {
	case Mute:
		return "mute"
	case Unmute:
		return "unmute"
	case AdminSet:
		return "admin_set"
	case AdminUnset:
		return "admin_unset"
	case Kicked:
		return "kicked"
	case Invited:
		return "invited"
	}
	return "unknown"
}

// Toggles enables notice categories independently.
type Toggles struct {
	Ban    bool
	Admin  bool
	Member bool
}

// Notice describes one administrative event about the bot account. It only
// lives for the handling of a single raw event.
type Notice struct {
	Category   Category
	GroupID    int64
	OperatorID int64
	// seconds, mute only
	Duration int64
}

// Classify decides whether a raw event is an administrative notice about
// the bot account itself and returns nil for everything else: the bot's own
// chat traffic, notices about other users, disabled categories, and
// unrecognized type combinations. It performs no I/O.
func Classify(ev *onebot.Event, selfID int64, toggles Toggles) *Notice {
	if ev == nil || selfID == 0 {
		return nil
	}
	if ev.PostType() != "notice" || ev.UserID() != selfID {
		return nil
	}

	n := &Notice{
		GroupID:    ev.GroupID(),
		OperatorID: ev.OperatorID(),
	}
	switch ev.NoticeType() {
	case "group_ban":
		if !toggles.Ban {
			return nil
		}
		if d := ev.Duration(); d > 0 {
			n.Category = Mute
			n.Duration = d
		} else {
			n.Category = Unmute
		}
	case "group_admin":
		if !toggles.Admin {
			return nil
		}
		if ev.SubType() == "set" {
			n.Category = AdminSet
		} else {
			n.Category = AdminUnset
		}
	case "group_decrease":
		if !toggles.Member || ev.SubType() != "kick_me" {
			return nil
		}
		n.Category = Kicked
	case "group_increase":
		if !toggles.Member || ev.SubType() != "invite" {
			return nil
		}
		n.Category = Invited
	default:
		return nil
	}
	return n
}

// NeedsOperator reports whether the alert template for c names the
// operator, and therefore whether a member lookup is needed at all.
func NeedsOperator(c Category) bool {
	return c != AdminSet && c != AdminUnset
}

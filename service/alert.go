package service

import (
	"context"

	"tattler-go/notice"
)

// Alerter turns a classified notice into a supervisor alert.
type Alerter struct {
	roster     *Roster
	dispatcher *Dispatcher
}

func NewAlerter(roster *Roster, dispatcher *Dispatcher) *Alerter {
	return &Alerter{
		roster:     roster,
		dispatcher: dispatcher,
	}
}

// Report resolves display names, renders the alert text and delivers it. A
// failed name lookup aborts the alert so a half-filled template never goes
// out.
func (a *Alerter) Report(ctx context.Context, n *notice.Notice) error {
	groupName, err := a.roster.GroupName(ctx, n.GroupID)
	if err != nil {
		return err
	}
	operatorName := ""
	if notice.NeedsOperator(n.Category) {
		operatorName, err = a.roster.MemberName(ctx, n.GroupID, n.OperatorID)
		if err != nil {
			return err
		}
	}
	return a.dispatcher.SendText(ctx, notice.AlertText(n, groupName, operatorName))
}

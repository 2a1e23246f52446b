package service

import (
	"context"
	"fmt"

	"github.com/mdobak/go-xerrors"

	"tattler-go/onebot"
)

type historyAPI interface {
	GetGroupMsgHistory(ctx context.Context, groupID int64, count int) (*onebot.GroupMsgHistory, error)
}

// History pulls recent messages of a group and re-forwards them to the
// supervisor target as one bundle.
type History struct {
	api        historyAPI
	dispatcher *Dispatcher
	limit      int
}

func NewHistory(api historyAPI, dispatcher *Dispatcher, limit int) *History {
	return &History{
		api:        api,
		dispatcher: dispatcher,
		limit:      limit,
	}
}

// SpotCheck fetches one page of recent history and forwards it, preserving
// message order. If the fetch fails nothing is sent.
func (h *History) SpotCheck(ctx context.Context, groupID int64) error {
	res, err := h.api.GetGroupMsgHistory(ctx, groupID, h.limit)
	if err != nil {
		return xerrors.New(fmt.Sprintf("fetch history of group %d", groupID), err)
	}
	nodes := make([]onebot.ForwardNode, 0, len(res.Messages))
	for _, msg := range res.Messages {
		nodes = append(nodes, onebot.NewForwardNode(msg.Sender.Nickname, msg.Sender.UserID, msg.Message))
	}
	return h.dispatcher.SendForward(ctx, nodes)
}

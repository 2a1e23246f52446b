package onebot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mdobak/go-xerrors"
	R "resty.dev/v3"

	cfg "tattler-go/config"
)

// API calls the OneBot HTTP endpoints. Events arrive over the websocket
// stream; all outbound actions go through here.
type API struct {
	httpClient *R.Client
}

// Result is the OneBot response envelope.
type Result struct {
	Status  string          `json:"status"`
	RetCode int             `json:"retcode"`
	Data    json.RawMessage `json:"data"`
}

func prettyBody(body string) string {
	threshold := 1000
	if len(body) > threshold {
		return fmt.Sprintf("%s...", body[:threshold])
	}
	return body
}

func NewAPI(ctx context.Context, c *cfg.OneBotConfig, debug bool) *API {
	httpClient := R.New()
	httpClient.
		SetBaseURL(c.Api).
		SetDebug(debug).
		SetTimeout(30 * time.Second).
		SetContext(ctx).
		SetDebugLogFormatter(func(dl *R.DebugLog) string {
			req := fmt.Sprintf("\n-------------\nRequest:\nURL: %s\nHeader: %v\nBody: %s\n", dl.Request.URI, dl.Request.Header, prettyBody(dl.Request.Body))
			res := fmt.Sprintf("---------------\nResponse:\nStatus: %s\nHeader: %v\nBody: %s\n", dl.Response.Status, dl.Response.Header, prettyBody(dl.Response.Body))
			return fmt.Sprintf("%s\n%s", req, res)
		})
	if c.Token != "" {
		httpClient.SetQueryParam("access_token", c.Token)
	}
	return &API{httpClient: httpClient}
}

func (a *API) call(ctx context.Context, action string, params any, out any) error {
	res := &Result{}
	resp, err := a.httpClient.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(res).
		Post("/" + action)
	if err != nil {
		return xerrors.New(fmt.Sprintf("%s: request failed", action), err)
	}
	if resp.IsError() {
		return xerrors.New(fmt.Sprintf("%s: http %s", action, resp.Status()))
	}
	// retcode 1 means the action was accepted for async handling
	if res.Status == "failed" || (res.RetCode != 0 && res.RetCode != 1) {
		return xerrors.New(fmt.Sprintf("%s: retcode %d", action, res.RetCode))
	}
	if out != nil && len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, out); err != nil {
			return xerrors.New(fmt.Sprintf("%s: decode data", action), err)
		}
	}
	return nil
}

type GroupInfo struct {
	GroupID     int64  `json:"group_id"`
	GroupName   string `json:"group_name"`
	MemberCount int32  `json:"member_count"`
}

func (a *API) GetGroupInfo(ctx context.Context, groupID int64) (*GroupInfo, error) {
	info := &GroupInfo{}
	if err := a.call(ctx, "get_group_info", map[string]any{"group_id": groupID}, info); err != nil {
		return nil, err
	}
	return info, nil
}

type GroupMember struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Card     string `json:"card"`
	Role     string `json:"role"`
}

func (a *API) GetGroupMemberInfo(ctx context.Context, groupID, userID int64) (*GroupMember, error) {
	member := &GroupMember{}
	params := map[string]any{"group_id": groupID, "user_id": userID}
	if err := a.call(ctx, "get_group_member_info", params, member); err != nil {
		return nil, err
	}
	return member, nil
}

type HistorySender struct {
	UserID   int64  `json:"user_id"`
	Nickname string `json:"nickname"`
	Card     string `json:"card"`
}

type HistoryMessage struct {
	MessageID int64         `json:"message_id"`
	Sender    HistorySender `json:"sender"`
	// segment array, passed through untouched
	Message json.RawMessage `json:"message"`
}

type GroupMsgHistory struct {
	Messages []HistoryMessage `json:"messages"`
}

// GetGroupMsgHistory fetches one page of recent messages, newest page only.
// count of 0 leaves the page size to the platform default.
func (a *API) GetGroupMsgHistory(ctx context.Context, groupID int64, count int) (*GroupMsgHistory, error) {
	params := map[string]any{"group_id": groupID}
	if count > 0 {
		params["message_count"] = count
	}
	history := &GroupMsgHistory{}
	if err := a.call(ctx, "get_group_msg_history", params, history); err != nil {
		return nil, err
	}
	return history, nil
}

func (a *API) SendGroupMsg(ctx context.Context, groupID int64, text string) error {
	params := map[string]any{"group_id": groupID, "message": text, "auto_escape": true}
	return a.call(ctx, "send_group_msg", params, nil)
}

func (a *API) SendPrivateMsg(ctx context.Context, userID int64, text string) error {
	params := map[string]any{"user_id": userID, "message": text, "auto_escape": true}
	return a.call(ctx, "send_private_msg", params, nil)
}

func (a *API) SendGroupForwardMsg(ctx context.Context, groupID int64, nodes []ForwardNode) error {
	params := map[string]any{"group_id": groupID, "messages": nodes}
	return a.call(ctx, "send_group_forward_msg", params, nil)
}

func (a *API) SendPrivateForwardMsg(ctx context.Context, userID int64, nodes []ForwardNode) error {
	params := map[string]any{"user_id": userID, "messages": nodes}
	return a.call(ctx, "send_private_forward_msg", params, nil)
}

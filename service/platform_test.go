package service

import (
	"context"

	"tattler-go/config"
	"tattler-go/onebot"
)

type textSend struct {
	target int64
	text   string
}

type forwardSend struct {
	target int64
	nodes  []onebot.ForwardNode
}

// fakePlatform records every outbound call and serves canned lookup data.
// Failed sends are still recorded as attempts.
type fakePlatform struct {
	groupName string
	groupErr  error

	member      *onebot.GroupMember
	memberErr   error
	memberCalls int

	history      *onebot.GroupMsgHistory
	historyErr   error
	historyGroup int64
	historyCount int

	sendGroupErr error
	privateErrs  map[int64]error

	groupTexts      []textSend
	privateTexts    []textSend
	groupForwards   []forwardSend
	privateForwards []forwardSend
}

func (f *fakePlatform) GetGroupInfo(ctx context.Context, groupID int64) (*onebot.GroupInfo, error) {
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return &onebot.GroupInfo{GroupID: groupID, GroupName: f.groupName}, nil
}

func (f *fakePlatform) GetGroupMemberInfo(ctx context.Context, groupID, userID int64) (*onebot.GroupMember, error) {
	f.memberCalls++
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return f.member, nil
}

func (f *fakePlatform) GetGroupMsgHistory(ctx context.Context, groupID int64, count int) (*onebot.GroupMsgHistory, error) {
	f.historyGroup = groupID
	f.historyCount = count
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakePlatform) SendGroupMsg(ctx context.Context, groupID int64, text string) error {
	f.groupTexts = append(f.groupTexts, textSend{groupID, text})
	return f.sendGroupErr
}

func (f *fakePlatform) SendPrivateMsg(ctx context.Context, userID int64, text string) error {
	f.privateTexts = append(f.privateTexts, textSend{userID, text})
	return f.privateErrs[userID]
}

func (f *fakePlatform) SendGroupForwardMsg(ctx context.Context, groupID int64, nodes []onebot.ForwardNode) error {
	f.groupForwards = append(f.groupForwards, forwardSend{groupID, nodes})
	return f.sendGroupErr
}

func (f *fakePlatform) SendPrivateForwardMsg(ctx context.Context, userID int64, nodes []onebot.ForwardNode) error {
	f.privateForwards = append(f.privateForwards, forwardSend{userID, nodes})
	return f.privateErrs[userID]
}

func configFor(manageGroup int64, admins ...string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Admins: admins,
		},
		Notice: config.NoticeConfig{
			ManageGroup:  manageGroup,
			BanNotice:    true,
			AdminNotice:  true,
			MemberNotice: true,
			HistoryLimit: 20,
		},
	}
}

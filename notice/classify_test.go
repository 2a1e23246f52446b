package notice

import (
	"testing"

	"tattler-go/onebot"
)

const selfID = int64(10001)

func event(t *testing.T, payload string) *onebot.Event {
	t.Helper()
	ev := onebot.ParseEvent([]byte(payload))
	if ev == nil {
		t.Fatalf("invalid payload: %s", payload)
	}
	return ev
}

func TestClassify(t *testing.T) {
	all := Toggles{Ban: true, Admin: true, Member: true}

	tests := []struct {
		name    string
		payload string
		toggles Toggles
		want    *Notice
	}{
		{
			name:    "plain message is never a notice",
			payload: `{"post_type":"message","user_id":10001,"group_id":100}`,
			toggles: all,
		},
		{
			name:    "request event",
			payload: `{"post_type":"request","user_id":10001}`,
			toggles: all,
		},
		{
			name:    "notice about someone else",
			payload: `{"post_type":"notice","notice_type":"group_ban","user_id":42,"group_id":100,"operator_id":7,"duration":600}`,
			toggles: all,
		},
		{
			name:    "mute",
			payload: `{"post_type":"notice","notice_type":"group_ban","user_id":10001,"group_id":100,"operator_id":7,"duration":600}`,
			toggles: all,
			want:    &Notice{Category: Mute, GroupID: 100, OperatorID: 7, Duration: 600},
		},
		{
			name:    "zero duration is an unmute",
			payload: `{"post_type":"notice","notice_type":"group_ban","user_id":10001,"group_id":100,"operator_id":7,"duration":0}`,
			toggles: all,
			want:    &Notice{Category: Unmute, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "absent duration is an unmute",
			payload: `{"post_type":"notice","notice_type":"group_ban","user_id":10001,"group_id":100,"operator_id":7}`,
			toggles: all,
			want:    &Notice{Category: Unmute, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "mute with ban notices disabled",
			payload: `{"post_type":"notice","notice_type":"group_ban","user_id":10001,"group_id":100,"operator_id":7,"duration":600}`,
			toggles: Toggles{Admin: true, Member: true},
		},
		{
			name:    "promoted to admin",
			payload: `{"post_type":"notice","notice_type":"group_admin","sub_type":"set","user_id":10001,"group_id":100,"operator_id":7}`,
			toggles: all,
			want:    &Notice{Category: AdminSet, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "demoted from admin",
			payload: `{"post_type":"notice","notice_type":"group_admin","sub_type":"unset","user_id":10001,"group_id":100,"operator_id":7}`,
			toggles: all,
			want:    &Notice{Category: AdminUnset, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "admin change disabled",
			payload: `{"post_type":"notice","notice_type":"group_admin","sub_type":"set","user_id":10001,"group_id":100}`,
			toggles: Toggles{Ban: true, Member: true},
		},
		{
			name:    "kicked",
			payload: `{"post_type":"notice","notice_type":"group_decrease","sub_type":"kick_me","user_id":10001,"group_id":100,"operator_id":7}`,
			toggles: all,
			want:    &Notice{Category: Kicked, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "ordinary member leave is ignored",
			payload: `{"post_type":"notice","notice_type":"group_decrease","sub_type":"leave","user_id":10001,"group_id":100}`,
			toggles: all,
		},
		{
			name:    "invited",
			payload: `{"post_type":"notice","notice_type":"group_increase","sub_type":"invite","user_id":10001,"group_id":100,"operator_id":7}`,
			toggles: all,
			want:    &Notice{Category: Invited, GroupID: 100, OperatorID: 7},
		},
		{
			name:    "join by approval is ignored",
			payload: `{"post_type":"notice","notice_type":"group_increase","sub_type":"approve","user_id":10001,"group_id":100}`,
			toggles: all,
		},
		{
			name:    "membership notices disabled",
			payload: `{"post_type":"notice","notice_type":"group_decrease","sub_type":"kick_me","user_id":10001,"group_id":100}`,
			toggles: Toggles{Ban: true, Admin: true},
		},
		{
			name:    "unrecognized notice type",
			payload: `{"post_type":"notice","notice_type":"group_upload","user_id":10001,"group_id":100}`,
			toggles: all,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(event(t, tt.payload), selfID, tt.toggles)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Classify() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Classify() = nil, want %+v", tt.want)
			}
			if *got != *tt.want {
				t.Errorf("Classify() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifyGuards(t *testing.T) {
	all := Toggles{Ban: true, Admin: true, Member: true}
	if got := Classify(nil, selfID, all); got != nil {
		t.Errorf("Classify(nil) = %+v, want nil", got)
	}
	// a zero self id must never match an event with a missing user_id
	ev := event(t, `{"post_type":"notice","notice_type":"group_ban","group_id":100}`)
	if got := Classify(ev, 0, all); got != nil {
		t.Errorf("Classify() with zero self id = %+v, want nil", got)
	}
}

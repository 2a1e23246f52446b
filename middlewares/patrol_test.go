package middlewares

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"tattler-go/onebot"
)

func patrolCommand(t *testing.T, text string, userID int64) *onebot.Event {
	t.Helper()
	payload := fmt.Sprintf(`{"post_type":"message","message_type":"group","raw_message":%q,"group_id":300,"user_id":%d}`, text, userID)
	return parseEvent(t, payload)
}

func TestPatrolIgnoresNonAdmins(t *testing.T) {
	fp := &fakePlatform{}
	mctx := newTestContext(fp, testConfig())
	mw := NewPatrolMiddleware(mctx)

	if mw.OnEvent(context.Background(), patrolCommand(t, "#巡逻 add 100", 43)) {
		t.Fatal("OnEvent() = true for a non-admin")
	}
	if len(fp.groupTexts) != 0 {
		t.Errorf("replies = %+v, want none", fp.groupTexts)
	}
	if _, ok := mctx.cron.Entry("patrol:100"); ok {
		t.Error("a non-admin scheduled a patrol job")
	}
}

func TestPatrolAddSchedulesJob(t *testing.T) {
	fp := &fakePlatform{history: &onebot.GroupMsgHistory{}}
	mctx := newTestContext(fp, testConfig())
	mw := NewPatrolMiddleware(mctx)

	if !mw.OnEvent(context.Background(), patrolCommand(t, "#巡逻 add 100", 42)) {
		t.Fatal("OnEvent() = false, want handled")
	}
	if len(fp.groupTexts) != 1 || !strings.Contains(fp.groupTexts[0].text, "巡逻群(100)") {
		t.Fatalf("replies = %+v, want confirmation for group 100", fp.groupTexts)
	}
	// the default spec applies when -s is not given
	if !strings.Contains(fp.groupTexts[0].text, "0 * * * *") {
		t.Errorf("reply = %q, want the default spec", fp.groupTexts[0].text)
	}
	entry, ok := mctx.cron.Entry("patrol:100")
	if !ok {
		t.Fatal("no patrol job scheduled")
	}
	// firing the job runs a spot check of the patrolled group
	entry.WrappedJob.Run()
	if fp.historyGroup != 100 {
		t.Errorf("patrol fetched history of group %d, want 100", fp.historyGroup)
	}
	if len(fp.groupForwards) != 1 || fp.groupForwards[0].target != 200 {
		t.Errorf("forwards = %+v, want one to the manage group", fp.groupForwards)
	}
}

func TestPatrolAddWithCustomSpec(t *testing.T) {
	fp := &fakePlatform{}
	mctx := newTestContext(fp, testConfig())
	mw := NewPatrolMiddleware(mctx)

	if !mw.OnEvent(context.Background(), patrolCommand(t, `#巡逻 -s "@every 5m" add 100`, 42)) {
		t.Fatal("OnEvent() = false, want handled")
	}
	if len(fp.groupTexts) != 1 || !strings.Contains(fp.groupTexts[0].text, "@every 5m") {
		t.Errorf("replies = %+v, want the custom spec echoed", fp.groupTexts)
	}
	if _, ok := mctx.cron.Entry("patrol:100"); !ok {
		t.Error("no patrol job scheduled")
	}
}

func TestPatrolDelRemovesJob(t *testing.T) {
	fp := &fakePlatform{}
	mctx := newTestContext(fp, testConfig())
	mw := NewPatrolMiddleware(mctx)

	if !mw.OnEvent(context.Background(), patrolCommand(t, "#巡逻 add 100", 42)) {
		t.Fatal("add: OnEvent() = false")
	}
	if !mw.OnEvent(context.Background(), patrolCommand(t, "#巡逻 del 100", 42)) {
		t.Fatal("del: OnEvent() = false")
	}
	if _, ok := mctx.cron.Entry("patrol:100"); ok {
		t.Error("patrol job still scheduled after del")
	}
	last := fp.groupTexts[len(fp.groupTexts)-1]
	if !strings.Contains(last.text, "已取消") {
		t.Errorf("reply = %q, want cancellation confirmation", last.text)
	}
}

func TestPatrolListWithoutJobs(t *testing.T) {
	fp := &fakePlatform{}
	mw := NewPatrolMiddleware(newTestContext(fp, testConfig()))

	if !mw.OnEvent(context.Background(), patrolCommand(t, "#巡逻 list", 42)) {
		t.Fatal("OnEvent() = false, want handled")
	}
	if len(fp.groupTexts) != 1 || fp.groupTexts[0].text != "没有巡逻任务" {
		t.Errorf("replies = %+v, want the empty-list reply", fp.groupTexts)
	}
}

func TestPatrolBadArguments(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bad group id", "#巡逻 add abc", "无效群号"},
		{"missing group id", "#巡逻 add", "用法"},
		{"unknown verb", "#巡逻 dance", "用法"},
		{"no verb", "#巡逻", "用法"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := &fakePlatform{}
			mctx := newTestContext(fp, testConfig())
			mw := NewPatrolMiddleware(mctx)
			if !mw.OnEvent(context.Background(), patrolCommand(t, tt.text, 42)) {
				t.Fatal("OnEvent() = false, want handled")
			}
			if len(fp.groupTexts) != 1 || !strings.Contains(fp.groupTexts[0].text, tt.want) {
				t.Errorf("replies = %+v, want %q", fp.groupTexts, tt.want)
			}
			if _, ok := mctx.cron.Entry("patrol:100"); ok {
				t.Error("a malformed command scheduled a job")
			}
		})
	}
}

func TestPatrolStartWithoutStoredJobs(t *testing.T) {
	fp := &fakePlatform{}
	mw := NewPatrolMiddleware(newTestContext(fp, testConfig()))
	// without a job store there is nothing to restore
	if err := mw.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

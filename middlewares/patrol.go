package middlewares

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"tattler-go/onebot"
)

const patrolPrefix = "patrol"

// patrolMiddleware keeps per-group cron jobs that run a spot check on a
// schedule. Jobs are persisted in redis and restored on start.
type patrolMiddleware struct {
	*MiddlewareContext
	defaultSpec string
}

func NewPatrolMiddleware(base *MiddlewareContext) Middleware {
	return &patrolMiddleware{
		MiddlewareContext: base,
		defaultSpec:       base.cfg.Patrol.Spec,
	}
}

func (p *patrolMiddleware) Start() error {
	for _, params := range p.cron.Jobs(patrolPrefix + ":*") {
		if err := p.register(params); err != nil {
			logger.Warn("Failed to restore patrol job",
				slog.Any("params", params),
				slog.Any("error", err))
		}
	}
	return nil
}

func patrolName(groupID int64) string {
	return fmt.Sprintf("%s:%d", patrolPrefix, groupID)
}

func (p *patrolMiddleware) register(params map[string]string) error {
	groupID, err := strconv.ParseInt(params["groupId"], 10, 64)
	if err != nil {
		return fmt.Errorf("patrol job: bad group id %q", params["groupId"])
	}
	return p.cron.AddJob(patrolName(groupID), func(map[string]string) {
		if err := p.history.SpotCheck(p.ctx, groupID); err != nil {
			logger.Warn("Patrol spot check failed",
				slog.Int64("GroupId", groupID),
				slog.Any("error", err))
		}
	}, params)
}

func (p *patrolMiddleware) OnEvent(ctx context.Context, ev *onebot.Event) bool {
	fs := onebot.ToFlagSet(ev, "巡逻")
	if fs == nil {
		return false
	}
	if !p.access.IsAdmin(strconv.FormatInt(ev.UserID(), 10)) {
		return false
	}
	var spec string
	fs.StringVar(&spec, "s", p.defaultSpec, "cron表达式")
	if help := fs.Parse(); help != "" {
		p.reply(ctx, ev, help)
		return true
	}

	fields := strings.Fields(fs.Rest())
	verb := ""
	if len(fields) > 0 {
		verb = fields[0]
	}
	switch verb {
	case "list":
		p.reply(ctx, ev, p.listJobs())
	case "add", "del":
		if len(fields) < 2 {
			p.reply(ctx, ev, fmt.Sprintf("用法: #巡逻 %s <群号>", verb))
			return true
		}
		groupID, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			p.reply(ctx, ev, fmt.Sprintf("无效群号: %s", fields[1]))
			return true
		}
		if verb == "del" {
			p.cron.RemoveJob(patrolName(groupID))
			p.reply(ctx, ev, fmt.Sprintf("已取消对群(%d)的巡逻", groupID))
			return true
		}
		params := map[string]string{
			"spec":    spec,
			"groupId": strconv.FormatInt(groupID, 10),
		}
		if err := p.register(params); err != nil {
			p.reply(ctx, ev, fmt.Sprintf("添加巡逻失败: %v", err))
		} else {
			p.reply(ctx, ev, fmt.Sprintf("将按 %s 巡逻群(%d)", spec, groupID))
		}
	default:
		p.reply(ctx, ev, "用法: #巡逻 [-s cron表达式] add|del|list [群号]")
	}
	return true
}

func (p *patrolMiddleware) listJobs() string {
	jobs := p.cron.Jobs(patrolPrefix + ":*")
	if len(jobs) == 0 {
		return "没有巡逻任务"
	}
	var text strings.Builder
	for _, params := range jobs {
		text.WriteString(fmt.Sprintf("📌 群(%s) | %s\n", params["groupId"], params["spec"]))
		if groupID, err := strconv.ParseInt(params["groupId"], 10, 64); err == nil {
			if entry, ok := p.cron.Entry(patrolName(groupID)); ok {
				text.WriteString(fmt.Sprintf("下次执行: %s\n", entry.Next.Format("2006-01-02 15:04:05")))
			}
		}
	}
	return strings.TrimSpace(text.String())
}

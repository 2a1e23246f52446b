package onebot

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/shlex"

	"tattler-go/slogger"
)

var contractLogger = slogger.New("onebot.contract")

type MessageFlagSet struct {
	*flag.FlagSet
	argStr string
}

func (m *MessageFlagSet) SplitParse() error {
	args, err := shlex.Split(m.argStr)
	if err != nil {
		return err
	}
	return m.FlagSet.Parse(args)
}

func (m *MessageFlagSet) Parse() string {
	if err := m.SplitParse(); err != nil {
		if err.Error() == "flag: help requested" {
			var usageBuf strings.Builder
			m.SetOutput(&usageBuf)
			m.Usage()
			return usageBuf.String()
		}
		contractLogger.Error("failed to parse command", slog.Any("error", err))
		return fmt.Sprintf("解析失败，发送`#%s -h` 获得帮助", m.Name())
	}
	return ""
}

func (m *MessageFlagSet) Rest() string {
	return strings.TrimSpace(strings.Join(m.Args(), " "))
}

// ToFlagSet matches a message event against the `#name` command prefix and
// returns a flag set over the rest of the line, or nil when it is not that
// command.
func ToFlagSet(ev *Event, name string) *MessageFlagSet {
	if ev == nil || !ev.IsMessage() {
		return nil
	}
	content := strings.Trim(ev.RawMessage(), " \n")
	if content == "" {
		return nil
	}
	cmdPrefix := fmt.Sprintf("#%s", name)
	if !strings.HasPrefix(content, cmdPrefix) {
		return nil
	}
	if len(content) != len(cmdPrefix) && content[len(cmdPrefix)] != ' ' {
		return nil
	}
	return &MessageFlagSet{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		argStr:  content[len(cmdPrefix):],
	}
}

package repl

import (
	"fmt"
	"strings"

	"github.com/davidesantangelo/nmri"
	"github.com/davidesantangelo/nmri/internal/session"
)

// tailLines is how much of the log "log show" displays.
const tailLines = 20

// Reply is the outcome of one interactive command.
type Reply struct {
	Lines []string
	Quit  bool
	Clear bool
}

// Execute runs line as an interactive command against the calculator state.
// The second return is false when line is not a command; the caller should
// evaluate it as an expression instead.
func Execute(st *nmri.State, logger *session.Logger, history []string, line string) (Reply, bool) {
	cmd := strings.TrimSpace(line)
	switch cmd {
	case "help":
		return Reply{Lines: helpLines()}, true
	case "exit", "quit":
		return Reply{Quit: true}, true
	case "clear", "cls":
		return Reply{Clear: true}, true
	case "history":
		if len(history) == 0 {
			return Reply{Lines: []string{"No history yet."}}, true
		}
		lines := make([]string, len(history))
		for i, h := range history {
			lines[i] = fmt.Sprintf("%3d  %s", i+1, h)
		}
		return Reply{Lines: lines}, true
	case "vars", "variables":
		vars := st.Vars()
		lines := make([]string, len(vars))
		for i, v := range vars {
			lines[i] = fmt.Sprintf("%s = %g", v.Name, v.Value)
		}
		return Reply{Lines: lines}, true
	case "mem", "memory":
		return Reply{Lines: []string{fmt.Sprintf("Memory: %g", st.Memory)}}, true
	case "m+":
		st.Memory += st.LastResult
		logger.Logf("memory += %g -> %g", st.LastResult, st.Memory)
		return Reply{Lines: []string{fmt.Sprintf("Memory = %g (added %g)", st.Memory, st.LastResult)}}, true
	case "m-":
		st.Memory -= st.LastResult
		logger.Logf("memory -= %g -> %g", st.LastResult, st.Memory)
		return Reply{Lines: []string{fmt.Sprintf("Memory = %g (subtracted %g)", st.Memory, st.LastResult)}}, true
	case "mr":
		st.LastResult = st.Memory
		st.Set("ans", st.Memory)
		logger.Logf("memory recall: %g", st.Memory)
		return Reply{Lines: []string{fmt.Sprintf("Recalled from memory: %g", st.Memory)}}, true
	case "mc":
		st.Memory = 0
		logger.Logf("memory cleared")
		return Reply{Lines: []string{"Memory cleared."}}, true
	case "store":
		return storeCommand(st, logger, ""), true
	case "log":
		return Reply{Lines: []string{"Usage: log on|off|show|file [path]"}}, true
	}

	if name, ok := strings.CutPrefix(cmd, "store "); ok {
		return storeCommand(st, logger, strings.TrimSpace(name)), true
	}
	if sub, ok := strings.CutPrefix(cmd, "log "); ok {
		return logCommand(logger, strings.TrimSpace(sub)), true
	}
	return Reply{}, false
}

func storeCommand(st *nmri.State, logger *session.Logger, name string) Reply {
	switch {
	case name == "":
		return Reply{Lines: []string{"Error: missing variable name. Usage: store <name>"}}
	case !nmri.ValidName(name):
		return Reply{Lines: []string{fmt.Sprintf("Error: invalid variable name %q", name)}}
	case nmri.IsReserved(name):
		return Reply{Lines: []string{fmt.Sprintf("Error: %q is a reserved name", name)}}
	}
	if err := st.Set(name, st.LastResult); err != nil {
		logger.Logf("command error: store %q: %v", name, err)
		return Reply{Lines: []string{fmt.Sprintf("Error: %v", err)}}
	}
	logger.Logf("stored %g in variable %q", st.LastResult, name)
	return Reply{Lines: []string{fmt.Sprintf("Stored %g in variable '%s'", st.LastResult, name)}}
}

func logCommand(logger *session.Logger, sub string) Reply {
	switch {
	case sub == "on":
		if logger.Enabled() {
			return Reply{Lines: []string{fmt.Sprintf("Logging is already enabled. Log file: %s", logger.Path())}}
		}
		if err := logger.Enable(); err != nil {
			return Reply{Lines: []string{fmt.Sprintf("Error: %v", err)}}
		}
		return Reply{Lines: []string{fmt.Sprintf("Logging enabled. To file: %s", logger.Path())}}
	case sub == "off":
		if !logger.Enabled() {
			return Reply{Lines: []string{"Logging is already disabled."}}
		}
		logger.Disable()
		return Reply{Lines: []string{"Logging disabled."}}
	case sub == "show":
		lines, err := logger.Tail(tailLines)
		if err != nil {
			return Reply{Lines: []string{fmt.Sprintf("Error: %v", err)}}
		}
		out := []string{fmt.Sprintf("=== Recent log entries (last %d lines) ===", len(lines))}
		out = append(out, lines...)
		out = append(out, "=== End of log ===")
		return Reply{Lines: out}
	case sub == "file":
		return Reply{Lines: []string{fmt.Sprintf("Current log file path: %s", logger.Path())}}
	}
	if path, ok := strings.CutPrefix(sub, "file "); ok {
		path = strings.TrimSpace(path)
		if path == "" {
			return Reply{Lines: []string{"Usage: log file <new_path>"}}
		}
		if err := logger.SetPath(path); err != nil {
			return Reply{Lines: []string{fmt.Sprintf("Error: %v", err)}}
		}
		return Reply{Lines: []string{fmt.Sprintf("Log file path set to: %s", path)}}
	}
	return Reply{Lines: []string{fmt.Sprintf("Error: unknown 'log' subcommand %q. Use 'on', 'off', 'show', 'file', or 'file <path>'.", sub)}}
}

func helpLines() []string {
	return []string{
		"Enter an expression to evaluate it, or name = expression to assign.",
		"",
		"Operators: + - * / ^ %   (a trailing % marks a percentage)",
		"Functions: sin cos tan asin acos atan log ln sqrt exp abs floor ceil round",
		"Constants: pi e phi gamma c h G Na k inf ans",
		"",
		"Commands:",
		"  help       Show this help.",
		"  vars       List defined variables (alias: variables).",
		"  history    Show the input history.",
		"  mem        Show the current value stored in memory (alias: memory).",
		"  m+         Add the last result ('ans') to memory.",
		"  m-         Subtract the last result ('ans') from memory.",
		"  mr         Recall the value from memory (sets 'ans').",
		"  mc         Clear the memory (set to 0).",
		"  store <n>  Store the last result ('ans') in variable <n>.",
		"  log on     Enable logging to file.",
		"  log off    Disable logging.",
		"  log show   Show recent log entries.",
		"  log file   Show, or with a path argument change, the log file.",
		"  clear      Clear the screen (alias: cls).",
		"  exit       Leave the calculator (alias: quit).",
	}
}

package core

// Output formats understood by the formatter. Any other value renders as console.
const (
	OutputConsole = "console"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputYAML    = "yaml"
	OutputGitHub  = "github"
)

// ParseArgs builds the scan configuration from raw command-line arguments.
//
// Every token is inspected, including tokens that were consumed as the value of
// the previous flag. A recognized flag without a following non-empty token keeps
// its default. Unknown flags are ignored and no error is ever returned.
func ParseArgs(args []string, cwd string) Config {
	cfg := Config{
		Dir:    cwd,
		Output: OutputConsole,
	}

	for i, arg := range args {
		switch arg {
		case "--dir", "-d":
			cfg.Dir = valueAt(args, i+1, cwd)
		case "--output", "-o":
			cfg.Output = valueAt(args, i+1, OutputConsole)
		case "--issues":
			cfg.CreateIssues = true
		case "--issue-prefix":
			cfg.IssueTitlePrefix = valueAt(args, i+1, "")
		}
	}

	return cfg
}

func valueAt(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdhours "jira-timesheet/command/hours"
	cmdreport "jira-timesheet/command/report"
	cmdweb "jira-timesheet/command/web"
)

// Monthly timesheet generator correlating Jira issues with GitHub pull requests.
// Usage:
//   jira-timesheet report [-start 2024/01] [-end 2024/02] [-days 21] [-f] [-out ./data]
//   jira-timesheet hours [-month 2024/03] [-days 21]
//   jira-timesheet web [-addr :8080] [-data ./data]
// Notes:
// - Credentials come from the environment (JIRA_API_TOKEN, GITHUB_TOKEN), with a
//   local .env file loaded when present. Non-secret settings live in a YAML config
//   file pointed at by CONFIG_PATH (default ./config.yml).

func main() {
	args := os.Args
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		switch sub {
		case "report":
			if err := cmdreport.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "hours":
			if err := cmdhours.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		case "web":
			if err := cmdweb.Run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: jira-timesheet report [-start YYYY/MM] [-end YYYY/MM] [-days N] [-f] [-out DIR] | hours [-month YYYY/MM] [-days N] | web [-addr :8080] [-data ./data]\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)")
	os.Exit(2)
}

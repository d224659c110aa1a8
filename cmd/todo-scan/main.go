package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ksysoev/todo-scan/pkg/core"
	"github.com/ksysoev/todo-scan/pkg/github"
	"github.com/ksysoev/todo-scan/pkg/output"
	"github.com/sethvargo/go-githubactions"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

// run executes one scan and returns the process exit code. Findings go to
// stdout; progress and errors go to stderr.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	// Keep stdout free for findings
	action := githubactions.New(
		githubactions.WithWriter(stderr),
		githubactions.WithGetenv(getenv),
	)
	ctx := context.Background()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	config := core.ParseArgs(args, cwd)

	action.Infof("Scanning project for TODO/FIXME comments in %s", config.Dir)

	findings, err := core.ScanDirectory(config.Dir)
	if err != nil {
		return fail(stderr, err)
	}

	if err := output.ForFormat(config.Output).Format(stdout, findings); err != nil {
		return fail(stderr, fmt.Errorf("failed to write results: %w", err))
	}

	action.Infof("Found %d TODO/FIXME comments", len(findings))

	if config.CreateIssues {
		if err := publishIssues(ctx, action, config, findings, getenv); err != nil {
			return fail(stderr, err)
		}
	}

	action.Infof("Scan complete.")
	return 0
}

// publishIssues creates GitHub issues for findings that are not tracked yet
func publishIssues(ctx context.Context, action *githubactions.Action, config core.Config, findings []core.Finding, getenv func(string) string) error {
	// Get action inputs - first try action inputs, then fall back to env vars
	githubToken := action.GetInput("github_token")
	if githubToken == "" {
		githubToken = getenv("GITHUB_TOKEN")
		if githubToken == "" {
			return errors.New("github_token input or GITHUB_TOKEN is required to create issues")
		}
	}

	repoFullName := getenv("GITHUB_REPOSITORY")
	if repoFullName == "" {
		return errors.New("GITHUB_REPOSITORY environment variable is not set")
	}

	var opts []github.Option
	if apiURL := getenv("GITHUB_API_URL"); apiURL != "" {
		opts = append(opts, github.WithBaseURL(apiURL))
	}

	client, err := github.NewClient(githubToken, repoFullName, config, opts...)
	if err != nil {
		return err
	}

	published, err := client.CreateIssuesFromFindings(ctx, findings)
	for _, p := range published {
		action.Infof("Created issue for %s:%d: %s", p.Finding.FilePath, p.Finding.Line, p.IssueURL)
	}
	if err != nil {
		return err
	}

	action.Infof("Created %d issues from TODO/FIXME comments", len(published))
	action.SetOutput("issues_created", fmt.Sprintf("%d", len(published)))
	return nil
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return 1
}

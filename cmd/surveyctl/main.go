// Command surveyctl edits survey definitions stored by the survey server from
// the command line: it validates JSON documents locally, pushes them through
// an editing session and mints bearer tokens for scripts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vnkhanh/eval-survey-server/client"
	"github.com/vnkhanh/eval-survey-server/editor"
	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/surveydef"
	"github.com/vnkhanh/eval-survey-server/utils"
)

const usage = `usage: surveyctl <command> [flags]

commands:
  token   -sub <subject> [-role admin|editor] [-ttl 24h]
  show    -id <survey id>
  check   -file <survey.json>
  push    -file <survey.json> [-id <survey id>] [-edit-token <token>]
`

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "token":
		err = runToken(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "push":
		err = runPush(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				fmt.Fprintln(os.Stderr, v)
			}
		}
		logger.Fatalf("%s: %v", os.Args[1], err)
	}
}

func newClient(fs *flag.FlagSet) func() *client.Client {
	server := fs.String("server", envOr("SURVEY_SERVER", "http://localhost:8080"), "survey server root URL")
	bearer := fs.String("bearer", os.Getenv("SURVEY_TOKEN"), "bearer token")
	return func() *client.Client {
		return client.New(client.Config{RootURL: *server, BearerToken: *bearer})
	}
}

func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	sub := fs.String("sub", "", "token subject")
	role := fs.String("role", utils.RoleAdmin, "role claim")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sub == "" {
		return errors.New("-sub is required")
	}
	tok, err := utils.GenerateToken(*sub, *role, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	mk := newClient(fs)
	id := fs.String("id", "", "survey id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := mk().FetchSurvey(context.Background(), *id)
	if err != nil {
		return err
	}
	return printJSON(s)
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	file := fs.String("file", "", "survey definition (JSON)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := readDoc(*file)
	if err != nil {
		return err
	}
	// hydrate trước để áp dụng cắt độ dài và luật theo loại như khi chỉnh sửa
	r := surveydef.Validate(surveydef.Hydrate(doc).Survey())
	if !r.Valid {
		return &editor.ValidationError{Violations: r.Violations}
	}
	fmt.Println("ok")
	return nil
}

func runPush(args []string) error {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	mk := newClient(fs)
	file := fs.String("file", "", "survey definition (JSON)")
	id := fs.String("id", "", "existing survey id; empty creates a new survey")
	editToken := fs.String("edit-token", "", "edit token of the survey")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := readDoc(*file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c := mk()
	sess := editor.NewSession(c)
	if *id == "" {
		sess.New()
	} else {
		if *editToken != "" {
			c.SetEditToken(*id, *editToken)
		}
		if _, err := sess.Load(ctx, *id); err != nil {
			return err
		}
	}
	sess.Import(doc)

	saved, err := sess.Submit(ctx)
	if err != nil {
		return err
	}
	if tok := c.EditToken(saved.ID.Remote()); tok != "" && *id == "" {
		logger.Infof("survey %s created, edit token: %s", saved.ID.Remote(), tok)
	}
	return printJSON(saved)
}

func readDoc(path string) (surveydef.Survey, error) {
	var doc surveydef.Survey
	if path == "" {
		return doc, errors.New("-file is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

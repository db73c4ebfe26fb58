package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/rule"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

var errInvalidRules = errors.New("rules file has invalid rules")

type emailFile struct {
	ID       string    `yaml:"id"`
	Sender   string    `yaml:"sender"`
	Subject  string    `yaml:"subject"`
	Snippet  string    `yaml:"snippet"`
	Body     string    `yaml:"body"`
	Received time.Time `yaml:"received"`
}

func (e emailFile) message() *model.EmailMessage {
	id := e.ID
	if id == "" {
		id = util.GenerateID()
	}
	received := e.Received
	if received.IsZero() {
		received = time.Now()
	}
	return &model.EmailMessage{
		ID:       id,
		Sender:   e.Sender,
		Subject:  e.Subject,
		Snippet:  e.Snippet,
		Body:     e.Body,
		Received: received,
	}
}

func (a *app) rulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with rule files offline",
	}

	var rulesPath, emailPath string
	check := &cobra.Command{
		Use:   "check",
		Short: "Validate a YAML rules file and optionally dry-run it against an email",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules(rulesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !reportValidation(out, rules) {
				return errInvalidRules
			}
			if emailPath == "" {
				return nil
			}

			var ef emailFile
			if err := readYAML(emailPath, &ef); err != nil {
				return err
			}
			email := ef.message()

			matches := rule.NewEngine(a.logger()).Evaluate(rules, email)
			if len(matches) == 0 {
				fmt.Fprintln(out, "No rule matched")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(out, "MATCH %s\n", m.RuleName)
				for _, action := range m.Actions {
					fmt.Fprintf(out, "  %s: %s\n", action.Type, action.Message)
				}
			}
			return nil
		},
	}
	check.Flags().StringVar(&rulesPath, "rules", "rules.yaml", "YAML file with a top-level rules list")
	check.Flags().StringVar(&emailPath, "email", "", "YAML file describing one email")

	cmd.AddCommand(check)
	return cmd
}

// loadRules reads a rules file. Rules default to enabled and get generated ids.
func loadRules(path string) ([]*model.NotificationRule, error) {
	var raw struct {
		Rules []yaml.Node `yaml:"rules"`
	}
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}

	rules := make([]*model.NotificationRule, 0, len(raw.Rules))
	for i := range raw.Rules {
		r := &model.NotificationRule{Enabled: true}
		if err := raw.Rules[i].Decode(r); err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		if r.ID == "" {
			r.ID = util.GenerateID()
		}
		rule.Sanitize(r)
		rules = append(rules, r)
	}
	return rules, nil
}

func reportValidation(out io.Writer, rules []*model.NotificationRule) bool {
	ok := true
	for i, r := range rules {
		err := rule.Validate(r)
		var verr *rule.ValidationError
		if errors.As(err, &verr) {
			ok = false
			fmt.Fprintf(out, "rule %d (%s): INVALID\n", i+1, r.Name)
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			continue
		}
		fmt.Fprintf(out, "rule %d (%s): ok\n", i+1, r.Name)
		for _, a := range r.Actions {
			if unknown := rule.UnknownPlaceholders(a.Template); len(unknown) > 0 {
				fmt.Fprintf(out, "  warning: unknown placeholders %v\n", unknown)
			}
		}
	}
	return ok
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

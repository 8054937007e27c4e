package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Every line is a word; its derivation is
rendered as a tree. Lines starting with ':' are commands:

    :rules    list the rules
    :quit     end the session (as does <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rl, err := readline.New("morphon> ")
			if err != nil {
				return err
			}
			defer rl.Close()
			intp := &Intp{session: rootOpts.Session(), repl: rl, rules: NewRulesCommand(rootOpts)}
			pterm.Info.Println("Welcome to morphon")
			tracer().Infof("Quit with <ctrl>D")
			intp.REPL()
			return nil
		},
	}
}

// Intp is our interpreter object.
type Intp struct {
	session *Session
	repl    *readline.Instance
	rules   *cobra.Command
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval evaluates an input line. It returns true if the session should end.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":rules":
		if err := intp.rules.RunE(intp.rules, nil); err != nil {
			pterm.Error.Println(err.Error())
		}
		return false
	}
	if strings.HasPrefix(line, ":") {
		pterm.Error.Println("unknown command " + line)
		return false
	}
	s, err := intp.session.Derive(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		intp.session.Forget()
		return false
	}
	intp.session.Render(line)
	pterm.Info.Println(s.String())
	return false
}

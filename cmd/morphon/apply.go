package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "apply <word>...",
		Short: "Apply the rule cascade to words",
		Long: `Apply the rule cascade to words and print their surface forms.

Every argument is a word, given as a sequence of segment symbols, e.g. "k a b s".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := rootOpts.Session()
			for _, word := range args {
				s, err := sess.Derive(word)
				if err != nil {
					return fmt.Errorf("word '%s': %w", word, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s ⇒ %s\n", word, s)
				if tree {
					sess.Render(word)
				} else {
					sess.Forget()
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&tree, "tree", "t", false, "render the derivation of each word")

	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcrest/crest/internal/session"
)

var inspectFormat string

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "Output format: text, markdown, csv")
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [template-id]",
	Short: "Classify a template's layers into role buckets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // safe to ignore

		s, err := session.Open(cmd.Context(), sessionOptions(st), args[0])
		if err != nil {
			return err
		}
		defer s.Close()

		sum := s.Report()
		switch inspectFormat {
		case "text":
			fmt.Print(sum.Text())
		case "markdown", "md":
			fmt.Print(sum.Markdown())
		case "csv":
			fmt.Print(sum.CSV())
		default:
			return fmt.Errorf("unknown format %q", inspectFormat)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // safe to ignore

		templates, err := st.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range templates {
			fmt.Printf("%s  %-24s %-12s %s\n", t.ID, t.Name, t.Sport, t.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [template-id]",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // safe to ignore
		return st.Delete(cmd.Context(), args[0])
	},
}

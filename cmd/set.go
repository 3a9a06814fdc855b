package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamcrest/crest/api"
	"github.com/teamcrest/crest/internal/session"
)

var (
	setTexts  []string
	setColors []string
	setLogo   string
	exportOut string
)

func init() {
	setCmd.Flags().StringArrayVar(&setTexts, "text", nil, "Text update target=value (role name or value key)")
	setCmd.Flags().StringArrayVar(&setColors, "color", nil, "Color update role=value")
	setCmd.Flags().StringVar(&setLogo, "logo", "", "Replace every team logo with this asset")
	rootCmd.AddCommand(setCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write blob to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var setCmd = &cobra.Command{
	Use:   "set [template-id]",
	Short: "Bulk-rewrite tagged layers and save",
	Long: `Applies one or more value changes to every matching layer.
Text targets may be a text role (team_name, jersey_number, ...) or a value
key for the generic text role (name, "additional text", ...).`,
	Args: cobra.ExactArgs(1),
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

		for _, kv := range setTexts {
			target, value, err := splitKV(kv)
			if err != nil {
				return err
			}
			role, key := resolveTextTarget(target)
			n := s.SetText(role, key, value)
			fmt.Printf("text %s: %d layer(s)\n", target, n)
		}
		for _, kv := range setColors {
			target, value, err := splitKV(kv)
			if err != nil {
				return err
			}
			n, err := s.SetColor(api.Role(target), value)
			if err != nil {
				return err
			}
			fmt.Printf("color %s: %d layer(s)\n", target, n)
		}
		if setLogo != "" {
			n, err := s.SetLogo(setLogo)
			if err != nil {
				return err
			}
			fmt.Printf("logo: %d layer(s)\n", n)
		}
		return s.Save(cmd.Context())
	},
}

// resolveTextTarget maps a CLI text target onto the updater's (role,
// valueKey) pair: a known text role is matched by role alone, anything
// else addresses a slot of the generic text role.
func resolveTextTarget(target string) (api.Role, string) {
	r := api.Role(target)
	if r.Family() == api.FamilyText && r != api.RoleText {
		return r, ""
	}
	return api.RoleText, target
}

func splitKV(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected target=value, got %q", s)
	}
	return k, v, nil
}

var exportCmd = &cobra.Command{
	Use:   "export [template-id]",
	Short: "Print a template's persisted blob",
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

		blob := s.Export()
		if exportOut == "" {
			fmt.Println(string(blob))
			return nil
		}
		return os.WriteFile(exportOut, blob, 0o644)
	},
}

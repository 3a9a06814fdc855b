package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamcrest/crest/internal/session"
)

var (
	newSport    string
	newWidth    float64
	newHeight   float64
	newLogoSrc  string
	newLogoSize int
)

func init() {
	newCmd.Flags().StringVar(&newSport, "sport", "", "Sport label for the template")
	newCmd.Flags().Float64Var(&newWidth, "width", 1080, "Canvas width")
	newCmd.Flags().Float64Var(&newHeight, "height", 1080, "Canvas height")
	newCmd.Flags().StringVar(&newLogoSrc, "logo", "placeholder-logo.png", "Initial logo asset path")
	newCmd.Flags().IntVar(&newLogoSize, "logo-size", 512, "Assumed pixel size of the initial logo")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a template with the starter layer set and save it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }() // safe to ignore

		s := session.NewBlank(cmd.Context(), sessionOptions(st), args[0], newSport, newWidth, newHeight)
		defer s.Close()

		logoW, logoH := newLogoSize, newLogoSize
		if opts := sessionOptions(st); opts.Assets != nil {
			// Probe the real placeholder dimensions when an asset dir is
			// configured; the flag value is the fallback.
			if img, err := opts.Assets.Load(cmd.Context(), newLogoSrc); err == nil {
				logoW, logoH = img.Width, img.Height
			}
		}
		s.Bootstrap(newLogoSrc, logoW, logoH)
		if err := s.Save(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Created template %s (%s)\n", s.Tmpl.ID, s.Tmpl.Name)
		return nil
	},
}

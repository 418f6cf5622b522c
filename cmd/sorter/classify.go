package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/parcel"
)

var (
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	categoryStyle = map[classifier.Category]lipgloss.Style{
		classifier.Standard: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		classifier.Special:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		classifier.Rejected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

func classifyCmd(a *app) *cobra.Command {
	var (
		p      parcel.Parcel
		output string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single parcel",
		Long: `Classify a single parcel given its dimensions in centimeters and mass in kilograms.

Exits with status 2 when a measurement is zero, negative or not a number.

Examples:
  sorter classify --width 70 --height 80 --length 90 --mass 5
  sorter classify --width 150 --height 150 --length 150 --mass 20 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format %q (want text or json)", output)
			}

			result, err := classifier.New().Evaluate(p)
			if err != nil {
				a.log.Debug("Invalid parcel", zap.Error(err))
				if classifier.IsInputError(err) {
					return &codedError{code: exitInvalidInput, err: err}
				}
				return err
			}

			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			writeText(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&p.WidthCm, "width", 0, "width in centimeters")
	cmd.Flags().Float64Var(&p.HeightCm, "height", 0, "height in centimeters")
	cmd.Flags().Float64Var(&p.LengthCm, "length", 0, "length in centimeters")
	cmd.Flags().Float64Var(&p.MassKg, "mass", 0, "mass in kilograms")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json)")

	for _, name := range []string{"width", "height", "length", "mass"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func writeJSON(w io.Writer, result classifier.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeText(w io.Writer, result classifier.Result) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label+":")), value)
	}

	row("Category", categoryStyle[result.Category].Render(result.Category.String()))
	row("Volume", fmt.Sprintf("%.3f cm3", result.Signals.VolumeCm3))
	row("Bulky", yesNo(result.Signals.Bulky))
	row("Heavy", yesNo(result.Signals.Heavy))
	row("Reason", result.Reason)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

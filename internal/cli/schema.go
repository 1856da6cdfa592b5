package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var schemaJSON bool

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "Output the catalog as JSON")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the languages, frameworks, hooks and MCP servers setup offers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSchema()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if schemaJSON {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling catalog: %w", err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}

		fmt.Fprintf(out, "Catalog version %s\n\n", s.SchemaVersion)

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "LANGUAGE\tFRAMEWORKS\tCOMMANDS")
		for _, l := range s.Languages {
			fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, strings.Join(l.FrameworkIDs(), ", "), strings.Join(l.CommandIDs(), ", "))
		}
		w.Flush()
		fmt.Fprintln(out)

		w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "HOOK\tEVENT\tDESCRIPTION")
		for _, h := range s.Hooks {
			fmt.Fprintf(w, "%s\t%s\t%s\n", h.ID, h.Event, h.Description)
		}
		w.Flush()
		fmt.Fprintln(out)

		w = tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MCP\tSCOPE\tDESCRIPTION")
		for _, m := range s.MCPs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, scope(m.Languages, m.Frameworks), m.Description)
		}
		return w.Flush()
	},
}

func scope(languages, frameworks []string) string {
	if len(languages) == 0 && len(frameworks) == 0 {
		return "any"
	}
	s := strings.Join(languages, ",")
	if len(frameworks) > 0 {
		s += "/" + strings.Join(frameworks, ",")
	}
	return s
}

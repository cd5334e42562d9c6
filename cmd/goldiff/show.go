package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goldiff/internal/transcript"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <transcript>",
	Short: "Parse a diagnostic transcript and dump its structure",
	Long:  `Parse one rendered transcript file and print what goldiff sees in it, for debugging fixtures that compare unexpectedly`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("format", "compact", "output format (compact|json)")
	showCmd.Flags().Bool("validate", false, "also check structural well-formedness and count consistency")
}

type transcriptPayload struct {
	Name        string            `json:"name"`
	Diagnostics []diagnosticEntry `json:"diagnostics"`
	Summary     *summaryEntry     `json:"summary,omitempty"`
	Footer      string            `json:"footer,omitempty"`
}

type diagnosticEntry struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code,omitempty"`
	Message     string   `json:"message"`
	Location    string   `json:"location"`
	Annotations int      `json:"annotations"`
	Notes       []string `json:"notes,omitempty"`
	StartLine   uint32   `json:"start_line"`
}

type summaryEntry struct {
	Count int    `json:"count"`
	Line  uint32 `json:"line"`
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return fmt.Errorf("failed to get validate flag: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	tr, err := transcript.Parse(args[0], data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "compact":
		fmt.Fprintln(out, tr.FormatCompact())
		if tr.Summary != nil {
			fmt.Fprintf(out, "summary: %d previous errors (line %d)\n", tr.Summary.Count, tr.Summary.Line)
		}
	case "json":
		payload := transcriptPayload{Name: tr.Name, Footer: tr.Footer}
		for i := range tr.Diagnostics {
			d := &tr.Diagnostics[i]
			entry := diagnosticEntry{
				Severity:    d.Severity.String(),
				Code:        d.Code,
				Message:     d.Message,
				Location:    d.Location.String(),
				Annotations: len(d.Annotations),
				StartLine:   d.StartLine,
			}
			for _, n := range d.Notes {
				entry.Notes = append(entry.Notes, n.Text)
			}
			payload.Diagnostics = append(payload.Diagnostics, entry)
		}
		if tr.Summary != nil {
			payload.Summary = &summaryEntry{Count: tr.Summary.Count, Line: tr.Summary.Line}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be compact or json)", format)
	}

	if validate {
		if err := tr.Validate(); err != nil {
			return err
		}
		if err := tr.CheckCount(); err != nil {
			return err
		}
	}
	return nil
}

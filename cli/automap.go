// ABOUTME: Auto-mapper CLI command for bootstrapping new document definitions
// ABOUTME: Proposes form-to-template field mappings and can emit a YAML skeleton
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/openhousecrm/docpipe/automap"
	"github.com/openhousecrm/docpipe/docuseal"
	"github.com/openhousecrm/docpipe/models"
)

var (
	confidenceHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green: exact/pattern
	confidenceMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow: solid semantic
	confidenceLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray: review carefully
)

// AutomapCommand matches source form fields against a signing template's
// fields and prints ranked mapping suggestions.
func AutomapCommand(client *docuseal.Client, args []string) error {
	fs := flag.NewFlagSet("automap", flag.ExitOnError)
	templateID := fs.String("template", "", "Signing template ID to map against (required)")
	sourcePath := fs.String("source", "", "Path to a JSON array of source form fields (required)")
	slug := fs.String("slug", "", "Emit a draft definition with this slug")
	name := fs.String("name", "", "Display name for the draft definition")
	out := fs.String("out", "", "Write the draft definition YAML to this path (default: stdout)")
	_ = fs.Parse(args)

	if *templateID == "" || *sourcePath == "" {
		return fmt.Errorf("--template and --source are required")
	}

	raw, err := os.ReadFile(*sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source fields: %w", err)
	}
	var source []models.SourceField
	if err := json.Unmarshal(raw, &source); err != nil {
		return fmt.Errorf("source file is not a JSON array of fields: %w", err)
	}

	template, err := client.GetTemplate(context.Background(), *templateID)
	if err != nil {
		return fmt.Errorf("failed to fetch template %s: %w", *templateID, err)
	}
	target := template.TargetFields()

	suggestions := automap.Map(source, target)
	printSuggestions(suggestions, len(source), len(target))

	if *slug == "" {
		return nil
	}

	displayName := *name
	if displayName == "" {
		displayName = template.Name
	}
	def := automap.BuildDefinitionSkeleton(*slug, displayName, *templateID, target, suggestions)
	encoded, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to encode draft definition: %w", err)
	}

	if *out == "" {
		fmt.Println("\n--- draft definition ---")
		fmt.Print(string(encoded))
		return nil
	}
	if err := os.WriteFile(*out, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	fmt.Printf("\n✓ Draft definition written to %s (review before loading)\n", *out)
	return nil
}

func printSuggestions(suggestions []models.MappingSuggestion, sourceCount, targetCount int) {
	if len(suggestions) == 0 {
		fmt.Println("No mappings found above the confidence floor.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTARGET\tROLE\tCONFIDENCE\tSTRATEGY\tTRANSFORM")
	for _, s := range suggestions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.SourceField, s.TargetField, s.TargetRole,
			styleConfidence(s.Confidence), s.MatchStrategy, s.SuggestedTransform)
	}
	_ = w.Flush()

	fmt.Printf("\n✓ Mapped %d of %d source fields (%d template fields)\n", len(suggestions), sourceCount, targetCount)
}

func styleConfidence(confidence int) string {
	text := fmt.Sprintf("%d", confidence)
	switch {
	case confidence >= 95:
		return confidenceHigh.Render(text)
	case confidence >= 70:
		return confidenceMedium.Render(text)
	default:
		return confidenceLow.Render(text)
	}
}

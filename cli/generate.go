// ABOUTME: Document generation CLI command
// ABOUTME: Previews or sends a document for a context file, recording live sends
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/openhousecrm/docpipe/builder"
	"github.com/openhousecrm/docpipe/db"
	"github.com/openhousecrm/docpipe/definitions"
	"github.com/openhousecrm/docpipe/docuseal"
	"github.com/openhousecrm/docpipe/models"
	"github.com/openhousecrm/docpipe/resolve"
)

// GenerateCommand resolves a document against a context file and either
// previews the submitters or sends the submission for signing.
func GenerateCommand(loader *definitions.Loader, client *docuseal.Client, database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	slug := fs.String("doc", "", "Document slug (required)")
	contextPath := fs.String("context", "", "Path to a JSON context file with user/transaction/form keys (required)")
	send := fs.Bool("send", false, "Create a live submission instead of previewing")
	message := fs.String("message", "", "Message included in the signing request email")
	_ = fs.Parse(args)

	if *slug == "" || *contextPath == "" {
		return fmt.Errorf("--doc and --context are required")
	}

	def, err := loader.GetOrErr(*slug)
	if err != nil {
		return err
	}

	ctx, err := loadContext(*contextPath)
	if err != nil {
		return err
	}

	fields := resolve.Resolve(def, ctx)

	if !*send {
		return printPreview(def, fields, ctx)
	}

	if def.ExternalTemplateID == "" {
		return fmt.Errorf("%s has no signing template; upload a PDF through the API to send it", def.Slug)
	}

	submitters := builder.BuildForSend(def, fields, ctx)
	if len(submitters) == 0 {
		return fmt.Errorf("no submitters resolved for %s", def.Slug)
	}

	submission, err := client.CreateSubmission(context.Background(), docuseal.CreateSubmissionRequest{
		TemplateID: def.ExternalTemplateID,
		Submitters: submitters,
		SendEmail:  true,
		Message:    *message,
	})
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	record := &models.SubmissionRecord{
		DocumentSlug: def.Slug,
		SubmissionID: submission.ID,
		TemplateID:   def.ExternalTemplateID,
		SignerEmails: joinEmails(submitters),
	}
	if err := db.RecordSubmission(database, record); err != nil {
		return fmt.Errorf("submission %s created but audit record failed: %w", submission.ID, err)
	}

	fmt.Printf("✓ Submission created: %s (%s)\n", submission.ID, def.Name)
	for _, s := range submission.Submitters {
		fmt.Printf("  → %s <%s> [%s]\n", s.Role, s.Email, s.Status)
	}
	if client.MockMode() {
		fmt.Println("  ⚠ mock mode: no API key configured, nothing was sent")
	}
	return nil
}

func loadContext(path string) (models.Context, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}
	var ctx models.Context
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("context file is not valid JSON: %w", err)
	}
	return ctx, nil
}

func printPreview(def *models.DocumentDefinition, fields []models.ResolvedField, ctx models.Context) error {
	submitters := builder.BuildForPreview(def, fields, ctx)

	fmt.Printf("Preview: %s (%s)\n\n", def.Name, def.Slug)
	for _, s := range submitters {
		fmt.Printf("%s <%s>\n", s.Role, s.Email)
		if len(s.Fields) == 0 {
			fmt.Println("  (no pre-filled fields)")
			continue
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, f := range s.Fields {
			fmt.Fprintf(w, "  %s\t%s\n", f.Name, f.DefaultValue)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if missing := builder.MissingFields(fields); len(missing) > 0 {
		fmt.Printf("\n⚠ %d fields will be left blank for signers:\n", len(missing))
		for _, name := range missing {
			fmt.Printf("  - %s\n", name)
		}
	}
	return nil
}

func joinEmails(submitters []models.Submitter) string {
	emails := make([]string, 0, len(submitters))
	for _, s := range submitters {
		emails = append(emails, s.Email)
	}
	return strings.Join(emails, ",")
}

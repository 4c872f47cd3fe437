// ABOUTME: Document definition CLI commands
// ABOUTME: Listing, inspecting, and validating definition files
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/openhousecrm/docpipe/definitions"
)

// ListDocsCommand lists every loaded document definition.
func ListDocsCommand(loader *definitions.Loader, args []string) error {
	fs := flag.NewFlagSet("docs list", flag.ExitOnError)
	docType := fs.String("type", "", "Filter by document type (form-driven or pdf-preview)")
	_ = fs.Parse(args)

	defs := loader.All()
	if *docType != "" {
		defs = loader.GetByType(*docType)
	}

	if len(defs) == 0 {
		fmt.Println("No document definitions loaded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tTYPE\tTEMPLATE\tROLES\tFIELDS")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			def.Slug, def.Name, def.Type, def.ExternalTemplateID, len(def.Roles), len(def.Fields))
	}
	return w.Flush()
}

// ShowDocCommand prints one definition's roles and fields.
func ShowDocCommand(loader *definitions.Loader, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: docs show <slug>")
	}

	def, err := loader.GetOrErr(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", def.Name, def.Slug)
	fmt.Printf("  Type: %s\n", def.Type)
	fmt.Printf("  Template: %s\n", def.ExternalTemplateID)
	if def.Form != nil {
		fmt.Printf("  Form: %s\n", def.Form.Template)
	}

	fmt.Println("\nRoles:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  KEY\tEXTERNAL NAME\tEMAIL SOURCE\tFLAGS")
	for _, role := range def.Roles {
		flags := ""
		if role.Optional {
			flags += "optional "
		}
		if role.AutoComplete {
			flags += "auto-complete"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", role.RoleKey, role.ExternalRoleName, role.EmailSource, flags)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nFields:")
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  KEY\tEXTERNAL NAME\tROLE\tSOURCE\tTRANSFORM")
	for _, field := range def.Fields {
		source := "(manual)"
		if field.Source != nil {
			source = *field.Source
		} else if len(field.Sources) > 0 {
			source = fmt.Sprintf("combined(%d)", len(field.Sources))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", field.FieldKey, field.ExternalFieldName, field.RoleKey, source, field.Transform)
	}
	return w.Flush()
}

// ValidateDocsCommand validates a whole definitions directory, or a single
// file as a dry run before saving it.
func ValidateDocsCommand(definitionsDir string, args []string) error {
	fs := flag.NewFlagSet("docs validate", flag.ExitOnError)
	file := fs.String("file", "", "Dry-run validate a single definition file")
	_ = fs.Parse(args)

	loader := definitions.NewLoader(definitionsDir)

	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", *file, err)
		}
		if err := loader.ValidateContent(raw); err != nil {
			var verr *definitions.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Printf("  ✗ %s\n", p)
				}
			}
			return err
		}
		fmt.Printf("✓ %s is valid\n", *file)
		return nil
	}

	if err := loader.LoadAll(); err != nil {
		return err
	}
	fmt.Printf("✓ %d document definitions valid in %s\n", len(loader.All()), definitionsDir)
	return nil
}

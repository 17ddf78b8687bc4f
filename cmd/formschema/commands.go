package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/tui"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// errInvalid is returned after a validation report has been printed.
var errInvalid = errors.New("schema is invalid")

func newRenderCmd(a *app) *cobra.Command {
	var formID, section, output string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a form file or catalog form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			req := orchestrator.Request{
				FormID:   formID,
				Renderer: a.cfg.Renderer,
				Section:  section,
				IDPrefix: a.cfg.IDPrefix,
			}
			if len(args) == 1 {
				if formID != "" {
					return errors.New("pass either a file or --form, not both")
				}
				form, err := schema.LoadFile(args[0])
				if err != nil {
					return err
				}
				req.Form = &form
			}

			out, err := a.orchestrator(catalog).Generate(cmd.Context(), req)
			if err != nil {
				return a.report(err)
			}
			if output == "" {
				_, err = a.out.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			a.logger.Info("form written", zap.String("path", output), zap.Int("bytes", len(out)))
			return nil
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "catalog form id")
	cmd.Flags().String("renderer", "", "renderer name (vanilla, tui)")
	cmd.Flags().StringVar(&section, "section", "", "render a single section")
	cmd.Flags().String("id-prefix", "", "element id prefix for HTML output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate form files, or every catalog form when none are given",
		RunE: func(_ *cobra.Command, args []string) error {
			type target struct {
				name string
				form schema.Form
			}
			var targets []target
			if len(args) == 0 {
				catalog, err := a.catalog()
				if err != nil {
					return err
				}
				for _, id := range catalog.IDs() {
					form, _ := catalog.Form(id)
					targets = append(targets, target{name: catalog.Source(id), form: form})
				}
			}
			for _, path := range args {
				form, err := schema.LoadFile(path)
				if err != nil {
					return err
				}
				targets = append(targets, target{name: path, form: form})
			}

			invalid := false
			for _, t := range targets {
				errs := schema.Validate(t.form)
				if len(errs) == 0 {
					fmt.Fprintf(a.out, "ok   %s\n", t.name)
					continue
				}
				invalid = true
				fmt.Fprintf(a.errOut, "FAIL %s (%d)\n", t.name, len(errs))
				if _, err := render.GroupErrors(errs).WriteTo(a.errOut); err != nil {
					return err
				}
			}
			if invalid {
				return errInvalid
			}
			return nil
		},
	}
}

func newPreviewCmd(a *app) *cobra.Command {
	var formID, section string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Pick a form and section interactively and print a terminal preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			picker := tui.NewPicker(a.driver)
			ctx := cmd.Context()

			if formID == "" {
				if formID, err = picker.PickForm(ctx, catalog); err != nil {
					return err
				}
			}
			form, ok := catalog.Form(formID)
			if !ok {
				return fmt.Errorf("%w: %q", orchestrator.ErrFormNotFound, formID)
			}
			if section == "" {
				if section, err = picker.PickSection(ctx, form); err != nil {
					return err
				}
			}

			out, err := a.orchestrator(catalog).Generate(ctx, orchestrator.Request{
				FormID:   formID,
				Section:  section,
				Renderer: tui.Name,
			})
			if err != nil {
				return a.report(err)
			}
			_, err = a.out.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "catalog form id (prompted when empty)")
	cmd.Flags().StringVar(&section, "section", "", "section id (prompted when empty)")
	return cmd
}

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List catalog forms",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			for _, id := range catalog.IDs() {
				form, _ := catalog.Form(id)
				fmt.Fprintf(a.out, "%s\t%s\t%s\n", id, form.Title, catalog.Source(id))
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var operationID, format string
	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Derive a form schema from an OpenAPI operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			importer := openapi.NewImporter()
			if operationID == "" {
				ids, err := importer.Operations(cmd.Context(), data)
				if err != nil {
					return err
				}
				return fmt.Errorf("--operation is required (available: %s)", strings.Join(ids, ", "))
			}
			form, err := importer.Import(cmd.Context(), data, operationID)
			if err != nil {
				return err
			}
			if errs := schema.Validate(form); len(errs) > 0 {
				a.logger.Warn("imported form is incomplete", zap.Int("violations", len(errs)))
			}
			out, err := schema.Marshal(form, schema.Format(format))
			if err != nil {
				return err
			}
			_, err = a.out.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&operationID, "operation", "", "operation id to import")
	cmd.Flags().StringVar(&format, "format", string(schema.FormatYAML), "output format (json, yaml)")
	return cmd
}

// report prints a grouped validation report when err carries schema errors.
func (a *app) report(err error) error {
	grouped, ok := render.ReportFromError(err)
	if !ok {
		return err
	}
	fmt.Fprintln(a.errOut, "form is invalid:")
	if _, werr := grouped.WriteTo(a.errOut); werr != nil {
		return werr
	}
	return errInvalid
}

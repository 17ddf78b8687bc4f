// Command formschema-lint validates form files and prints every violation.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("formschema-lint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	choice := flags.String("choice-types", "", "extra comma separated field types that require options")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flags.Output(), "\nValidate form schemas. Without paths the embedded examples are linted.\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	validator := schema.NewValidator(schema.WithChoiceTypes(splitList(*choice)...))

	forms, err := collect(flags.Args())
	if err != nil {
		fmt.Fprintf(stderr, "lint: %v\n", err)
		return 1
	}

	var violations []violation
	for _, f := range forms {
		for _, verr := range validator.Validate(f.form) {
			violations = append(violations, violation{
				file:     f.name,
				location: verr.Path.String(),
				message:  verr.Message,
			})
		}
	}

	if len(violations) == 0 {
		fmt.Fprintf(stdout, "%d form(s) ok\n", len(forms))
		return 0
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

type namedForm struct {
	name string
	form schema.Form
}

func collect(paths []string) ([]namedForm, error) {
	if len(paths) == 0 {
		catalog, err := schema.LoadFS(schema.EmbeddedFS())
		if err != nil {
			return nil, err
		}
		var out []namedForm
		for _, id := range catalog.IDs() {
			form, _ := catalog.Form(id)
			out = append(out, namedForm{name: catalog.Source(id), form: form})
		}
		return out, nil
	}

	out := make([]namedForm, 0, len(paths))
	for _, path := range paths {
		form, err := schema.LoadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, namedForm{name: path, form: form})
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

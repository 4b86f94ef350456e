package main

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava12/ucum/langdef"
)

type grammarFlags struct {
	outFile     string
	json        bool
	goSource    bool
	packageName string
	varName     string
	width       int
}

// goPackage returns package name for generated source: the given name
// or the name of output file directory.
func (f grammarFlags) goPackage() (string, error) {
	if f.packageName != "" {
		return f.packageName, nil
	}
	if f.outFile == "" {
		return "", errors.New("-p is required when writing Go source to stdout")
	}

	dir, e := filepath.Abs(f.outFile)
	if e != nil {
		return "", e
	}
	return filepath.Base(filepath.Dir(dir)), nil
}

func newGrammarCmd(a *app) *cobra.Command {
	f := &grammarFlags{}
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Writes grammar built from configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.json && f.goSource {
				return errors.New("-j and -g are mutually exclusive")
			}

			c, e := a.converter()
			if e != nil {
				return e
			}
			g := c.Grammar()

			var content []byte
			switch {
			case f.json:
				content, e = langdef.JSON(g)
			case f.goSource:
				var pkg string
				if pkg, e = f.goPackage(); e == nil {
					content, e = langdef.GoSource(g, pkg, f.varName)
				}
			default:
				content = []byte(langdef.Format(g, f.width))
			}
			if e != nil {
				return e
			}

			a.log.Debug("writing grammar", zap.String("file", f.outFile), zap.Int("bytes", len(content)))
			return output(cmd, f.outFile, func(w io.Writer) error {
				_, e := w.Write(content)
				return e
			})
		},
	}

	cmd.Flags().StringVarP(&f.outFile, "output", "o", "", "output file name, default is stdout")
	cmd.Flags().BoolVarP(&f.json, "json", "j", false, "output JSON instead of grammar text")
	cmd.Flags().BoolVarP(&f.goSource, "go", "g", false, "output Go source instead of grammar text")
	cmd.Flags().StringVarP(&f.packageName, "package", "p", "", "Go package name, default is dir name of output file")
	cmd.Flags().StringVarP(&f.varName, "var", "v", "", "Go variable name, default is the root rule name")
	cmd.Flags().IntVarP(&f.width, "width", "w", 80, "wrap terminal alternatives at width columns, 0 disables wrapping")
	return cmd
}

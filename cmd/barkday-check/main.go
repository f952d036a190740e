// barkday-check valida offline los JSON de reference data antes de publicarlos.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"barkday/internal/domain/reference"

	"github.com/spf13/cobra"
)

var errValidation = errors.New("validation failed")

type checkOptions struct {
	Dir   string
	Paths map[reference.Kind]string
}

// flag por kind
var kindFlags = []struct {
	kind reference.Kind
	flag string
}{
	{reference.KindRecoBanded, "reco-banded"},
	{reference.KindRecoBreed, "reco-breed"},
	{reference.KindGroups, "groups"},
	{reference.KindAliases, "aliases"},
	{reference.KindTaxonomy, "taxonomy"},
}

func newRootCommand() *cobra.Command {
	opts := checkOptions{Paths: map[reference.Kind]string{}}
	flagValues := make([]string, len(kindFlags))

	cmd := &cobra.Command{
		Use:           "barkday-check",
		Short:         "Valida los archivos de reference data de Barkday",
		Long:          "Revisa estructura y contenido de reco-banded, reco-breed, breed_groups, breed_aliases y breed_taxonomy. Sale con código 1 si hay cualquier error.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, kf := range kindFlags {
				if v := strings.TrimSpace(flagValues[i]); v != "" {
					opts.Paths[kf.kind] = v
				}
			}
			if !runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts) {
				return errValidation
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "directorio donde buscar los archivos")
	for i, kf := range kindFlags {
		cmd.Flags().StringVar(&flagValues[i], kf.flag, "", fmt.Sprintf("path de %s.json (por defecto se busca en --dir)", kf.kind))
	}
	return cmd
}

// resolvePath: el flag si vino; si no <dir>/<base>.json, o el primer <base>*.json
// (ej. "reco-breed (4).json" bajado del navegador).
func resolvePath(dir, explicit string, kind reference.Kind) string {
	if explicit != "" {
		return explicit
	}
	exact := filepath.Join(dir, kind.FileName())
	if _, err := os.Stat(exact); err == nil {
		return exact
	}
	matches, _ := filepath.Glob(filepath.Join(dir, string(kind)+"*.json"))
	sort.Strings(matches)
	if len(matches) > 0 {
		return matches[0]
	}
	return exact
}

// runCheck imprime el reporte y devuelve true si todo pasó.
func runCheck(out, errOut io.Writer, opts checkOptions) bool {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	paths := make([]string, len(kindFlags))
	for i, kf := range kindFlags {
		paths[i] = resolvePath(dir, opts.Paths[kf.kind], kf.kind)
	}

	fmt.Fprintln(out, "Barkday data validation")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Files under test:")
	for i, kf := range kindFlags {
		abs, err := filepath.Abs(paths[i])
		if err != nil {
			abs = paths[i]
		}
		fmt.Fprintf(out, "- %s: %s\n", kf.kind, abs)
	}

	ok := true
	for i, kf := range kindFlags {
		section(out, "Checking "+string(kf.kind))

		raw, err := os.ReadFile(paths[i])
		if err != nil {
			fmt.Fprintf(errOut, "✖ %s: %v\n", kf.kind, err)
			ok = false
			continue
		}

		issues := reference.Validate(kf.kind, raw)
		if len(issues) == 0 {
			fmt.Fprintln(out, "✔ OK")
			continue
		}
		ok = false
		for _, is := range issues {
			fmt.Fprintf(errOut, "✖ %s: %s\n", kf.kind, is)
		}
	}

	section(out, "Summary")
	if !ok {
		fmt.Fprintln(errOut, "Validation failed. See errors above.")
		return false
	}
	fmt.Fprintln(out, "All checks passed.")
	return true
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errValidation) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

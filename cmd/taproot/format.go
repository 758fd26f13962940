package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/jward/taproot/internal/store"
)

func validateFormat(format string) error {
	switch format {
	case "auto", "json", "text":
		return nil
	}
	return fmt.Errorf("invalid format %q (want auto, json, or text)", format)
}

// effectiveFormat resolves "auto": text on a terminal, json when piped.
func effectiveFormat(format string) string {
	if format != "auto" {
		return format
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "text"
	}
	return "json"
}

// jsonDefinition is the stable JSON shape for one definition site.
type jsonDefinition struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	File          string `json:"file"`
	Line          int    `json:"line"`
	Col           int    `json:"col"`
	Extern        bool   `json:"extern,omitempty"`
	InGlobalScope bool   `json:"global,omitempty"`
}

func outputDefinitions(w io.Writer, format string, defs []*store.Definition) error {
	switch effectiveFormat(format) {
	case "json":
		out := make([]jsonDefinition, 0, len(defs))
		for _, d := range defs {
			out = append(out, jsonDefinition{
				Name:          d.Name,
				Kind:          d.Kind,
				File:          d.File,
				Line:          d.Line,
				Col:           d.Col,
				Extern:        d.IsExtern,
				InGlobalScope: d.InGlobalScope,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		formatDefinitionsText(w, defs)
		return nil
	}
}

func formatDefinitionsText(w io.Writer, defs []*store.Definition) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tFILE\tLINE\tCOL\tEXTERN\tGLOBAL")
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%v\t%v\n",
			d.Name, d.Kind, d.File, d.Line, d.Col, d.IsExtern, d.InGlobalScope)
	}
	tw.Flush()
}

// MIT License
//
// Copyright (c) 2025 Advanced Micro Devices, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"sigs.k8s.io/yaml"
)

// Output formats accepted by the --output flag.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

// palette renders the text output.
type palette struct {
	title   lipgloss.Style
	section lipgloss.Style
	dim     lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	warn    lipgloss.Style
}

func styledPalette() palette {
	return palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorWhite),
		section: lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
		good:    lipgloss.NewStyle().Foreground(colorGreen),
		bad:     lipgloss.NewStyle().Foreground(colorRed),
		warn:    lipgloss.NewStyle().Foreground(colorYellow),
	}
}

func plainPalette() palette {
	plain := lipgloss.NewStyle()
	return palette{title: plain, section: plain, dim: plain, good: plain, bad: plain, warn: plain}
}

// paletteFor styles output written to an interactive terminal only.
func paletteFor(out io.Writer) palette {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return styledPalette()
	}
	return plainPalette()
}

func validateOutput(format string) error {
	switch format {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q, expected one of %s", format,
		strings.Join([]string{OutputText, OutputJSON, OutputYAML}, ", "))
}

// writeStructured writes v as JSON or YAML.
func writeStructured(out io.Writer, format string, v any) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return validateOutput(format)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/ratenum/internal/rationals"
	"github.com/agbru/ratenum/internal/ui"
)

// FormatOptions controls how WriteTerms renders a list of values.
type FormatOptions struct {
	// Format is "text", "json" or "yaml".
	Format string
	// ShowIndex prefixes text lines with "index: ".
	ShowIndex bool
}

// termRecord is the JSON and YAML shape of one value.
type termRecord struct {
	Index       uint64  `json:"index" yaml:"index"`
	Numerator   uint64  `json:"numerator" yaml:"numerator"`
	Denominator uint64  `json:"denominator" yaml:"denominator"`
	Value       float64 `json:"value" yaml:"value"`
}

func toRecord(t rationals.Term) termRecord {
	return termRecord{
		Index:       t.Index,
		Numerator:   t.Numerator,
		Denominator: t.Denominator,
		Value:       t.Float64(),
	}
}

// TermWriter renders values one at a time, so a list of any length is
// written as it is produced. The concatenated output is identical to
// WriteTerms over the same values once Close has been called.
//
// Thread Safety:
// TermWriter is NOT safe for concurrent use.
type TermWriter struct {
	out   io.Writer
	opts  FormatOptions
	count int
}

// NewTermWriter returns a writer for opts.Format, or an error for an unknown
// format. Nothing is written until the first value or Close.
func NewTermWriter(out io.Writer, opts FormatOptions) (*TermWriter, error) {
	switch opts.Format {
	case "", "text", "json", "yaml":
		return &TermWriter{out: out, opts: opts}, nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
}

// Count returns how many values have been written.
func (w *TermWriter) Count() int { return w.count }

// Write renders one value.
func (w *TermWriter) Write(t rationals.Term) error {
	var err error
	switch w.opts.Format {
	case "json":
		err = w.writeJSON(t)
	case "yaml":
		err = w.writeYAML(t)
	default:
		if w.opts.ShowIndex {
			_, err = fmt.Fprintf(w.out, "%d: %s\n", t.Index, t)
		} else {
			_, err = fmt.Fprintln(w.out, t)
		}
	}
	if err != nil {
		return err
	}
	w.count++
	return nil
}

// writeJSON emits one element of an indented JSON array, opening the array
// on the first element.
func (w *TermWriter) writeJSON(t rationals.Term) error {
	b, err := json.MarshalIndent(toRecord(t), "  ", "  ")
	if err != nil {
		return err
	}
	sep := ",\n  "
	if w.count == 0 {
		sep = "[\n  "
	}
	_, err = fmt.Fprintf(w.out, "%s%s", sep, b)
	return err
}

// writeYAML emits one item of a block sequence. Each item is a one-element
// sequence document, and these concatenate into a single sequence.
func (w *TermWriter) writeYAML(t rationals.Term) error {
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode([]termRecord{toRecord(t)}); err != nil {
		return err
	}
	return enc.Close()
}

// Close terminates the document. An empty list is written as "[]" in JSON
// and YAML, and as nothing in text.
func (w *TermWriter) Close() error {
	structured := w.opts.Format == "json" || w.opts.Format == "yaml"
	var err error
	switch {
	case structured && w.count == 0:
		_, err = io.WriteString(w.out, "[]\n")
	case w.opts.Format == "json":
		_, err = io.WriteString(w.out, "\n]\n")
	}
	return err
}

// WriteTerms writes terms to out in the requested format. Text output is
// one "num/den" per line and carries no color codes, so it can be piped.
//
// Parameters:
//   - out: The destination writer.
//   - terms: The values to write, in order.
//   - opts: The format options.
//
// Returns:
//   - error: An error for an unknown format or a failed write.
func WriteTerms(out io.Writer, terms []rationals.Term, opts FormatOptions) error {
	w, err := NewTermWriter(out, opts)
	if err != nil {
		return err
	}
	for _, t := range terms {
		if err := w.Write(t); err != nil {
			return err
		}
	}
	return w.Close()
}

// createFile creates path and its parent directories.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}

// writeHeader writes the commented file header. JSON has no comment syntax,
// so JSON files carry no header.
func writeHeader(w io.Writer, kind string, opts FormatOptions, extra ...string) {
	if opts.Format == "json" {
		return
	}
	fmt.Fprintf(w, "# Calkin-Wilf enumeration of the positive rationals\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Kind: %s\n", kind)
	for _, line := range extra {
		fmt.Fprintf(w, "# %s\n", line)
	}
}

// WriteTermsToFile writes terms to path under a commented header naming the
// kind, the generation time and the duration. Parent directories are
// created as needed.
func WriteTermsToFile(path string, terms []rationals.Term, kind string, duration time.Duration, opts FormatOptions) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	extra := []string{fmt.Sprintf("Duration: %s", duration)}
	if len(terms) > 0 {
		extra = append(extra, fmt.Sprintf("Indices: %d-%d", terms[0].Index, terms[len(terms)-1].Index))
	}
	writeHeader(file, kind, opts, extra...)
	if err := WriteTerms(file, terms, opts); err != nil {
		return err
	}
	return file.Close()
}

// TermFile streams values into a file. The header names the kind and the
// first index, since the duration and the last index are not known yet.
type TermFile struct {
	*TermWriter
	file *os.File
}

// CreateTermsFile creates path, parent directories included, and writes the
// header.
func CreateTermsFile(path, kind string, offset uint64, opts FormatOptions) (*TermFile, error) {
	w, err := NewTermWriter(nil, opts)
	if err != nil {
		return nil, err
	}
	file, err := createFile(path)
	if err != nil {
		return nil, err
	}
	w.out = file
	writeHeader(file, kind, opts, fmt.Sprintf("Offset: %d", offset))
	return &TermFile{TermWriter: w, file: file}, nil
}

// Close terminates the document and closes the file.
func (f *TermFile) Close() error {
	if err := f.TermWriter.Close(); err != nil {
		f.file.Close()
		return err
	}
	return f.file.Close()
}

// DisplayTerm prints the value at a single index. With details it also
// prints the kind, the duration and a decimal approximation.
func DisplayTerm(out io.Writer, term rationals.Term, kind string, duration time.Duration, details bool) {
	fmt.Fprintf(out, "q(%s%d%s) = %s%s%s\n",
		ui.ColorMagenta(), term.Index, ui.ColorReset(),
		ui.ColorGreen(), term, ui.ColorReset())

	if !details {
		return
	}
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "\n%s--- Details ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Integer kind   : %s%s%s\n", ui.ColorCyan(), kind, ui.ColorReset())
	fmt.Fprintf(out, "Skip time      : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
	fmt.Fprintf(out, "Decimal value  : %s%.12g%s\n", ui.ColorCyan(), term.Float64(), ui.ColorReset())
}

// DisplayQuietTerm prints only "num/den", for scripts.
func DisplayQuietTerm(out io.Writer, term rationals.Term) {
	fmt.Fprintln(out, term)
}

// DisplaySaved confirms that output was written to path.
func DisplaySaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Values saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

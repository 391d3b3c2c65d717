package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/algebra"
	"github.com/aretw0/algebra/internal/presentation/graph"
	"github.com/aretw0/algebra/internal/presentation/trace"
	"github.com/aretw0/algebra/internal/presentation/tui"
	"github.com/aretw0/algebra/pkg/codec"
	"github.com/aretw0/algebra/pkg/domain"
)

// OutputMermaid prints the result as a Mermaid flowchart.
const OutputMermaid = "mermaid"

// ReduceOptions configures a single CLI reduction.
type ReduceOptions struct {
	// Path names the input file; "" or "-" reads stdin.
	Path string
	// Expression, when set, is the inline document and Path is ignored.
	Expression string
	// Format of the input; empty means by extension, JSON for stdin.
	Format string
	// Output is text, json, yaml or mermaid.
	Output string
	// Trace prints the applied rules after the result.
	Trace bool
}

// RunReduce reads one document, reduces it and writes the result to stdout.
func RunReduce(ctx context.Context, eng *algebra.Engine, opts ReduceOptions, stdin io.Reader, stdout io.Writer) error {
	format := codec.FormatFromPath(opts.Path)
	if opts.Format != "" {
		f, err := codec.ParseFormat(opts.Format)
		if err != nil {
			return err
		}
		format = f
	}

	expr, err := readExpression(opts, format, eng, stdin)
	if err != nil {
		return err
	}
	input := expr.String()

	rec := trace.NewRecorder()
	out, err := eng.ReduceWith(ctx, expr, rec.Hooks())
	if err != nil {
		return err
	}

	if err := writeResult(stdout, out, opts.Output); err != nil {
		return err
	}
	if opts.Trace {
		return writeTrace(stdout, rec, input, out)
	}
	return nil
}

func readExpression(opts ReduceOptions, format codec.Format, eng *algebra.Engine, stdin io.Reader) (*domain.Node, error) {
	if opts.Expression != "" {
		return codec.Parse([]byte(opts.Expression), format, eng.Numeric())
	}
	if opts.Path == "" || opts.Path == "-" {
		return codec.Read(stdin, format, eng.Numeric())
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return codec.Read(f, format, eng.Numeric())
}

func writeResult(w io.Writer, out *domain.Node, output string) error {
	if strings.EqualFold(output, OutputMermaid) {
		_, err := io.WriteString(w, graph.GenerateMermaid(out))
		return err
	}

	format := codec.FormatText
	if output != "" {
		f, err := codec.ParseFormat(output)
		if err != nil {
			return err
		}
		format = f
	}
	data, err := codec.Marshal(out, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// writeTrace renders the report with glamour on a terminal and as plain
// lines otherwise.
func writeTrace(w io.Writer, rec *trace.Recorder, input string, out *domain.Node) error {
	if !IsTerminal(w) {
		fmt.Fprintln(w)
		rec.WritePlain(w, tui.NewStyle(w))
		return nil
	}

	rendered, err := tui.NewRenderer()(rec.Markdown(input, out.String()))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

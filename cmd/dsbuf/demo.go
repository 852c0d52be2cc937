package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/pavanmanishd/dsbuf"
)

// addDemoCommand adds the demo command, which runs a short allocation
// sequence and reports the resulting accounting.
func addDemoCommand(app *kingpin.Application, opts *options) {
	var printMetrics bool

	cmd := app.Command("demo", "Run an allocate/free sequence against a fresh buffer").Default()
	cmd.Flag("metrics", "Print the buffer metrics in Prometheus text format").BoolVar(&printMetrics)
	cmd.Action(func(_ *kingpin.ParseContext) error {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		buf, err := dsbuf.NewSafe(cfg)
		if err != nil {
			return err
		}
		if err := buf.Initialize(dsbuf.NewLogFn(logger)); err != nil {
			return err
		}
		if err := runDemo(os.Stdout, buf); err != nil {
			level.Error(logger).Log("msg", "demo failed", "code", dsbuf.CodeOf(err), "err", err)
			return err
		}
		if printMetrics {
			return writeMetrics(os.Stdout, buf)
		}
		return nil
	})
}

// runDemo allocates two blocks, releases the first and allocates again,
// printing each placement.
func runDemo(w io.Writer, buf *dsbuf.SafeBuffer) error {
	var first, second, third dsbuf.Handle

	steps := []struct {
		name string
		h    *dsbuf.Handle
		do   func(*dsbuf.Handle) error
	}{
		{"malloc(100)", &first, func(h *dsbuf.Handle) error { return buf.Malloc(h, 100) }},
		{"malloc(50)", &second, func(h *dsbuf.Handle) error { return buf.Malloc(h, 50) }},
		{"free(first)", &first, buf.Free},
		{"malloc(100)", &third, func(h *dsbuf.Handle) error { return buf.Malloc(h, 100) }},
		{"calloc(4, 16)", &first, func(h *dsbuf.Handle) error { return buf.Calloc(h, 4, 16) }},
		{"realloc(second, 120)", &second, func(h *dsbuf.Handle) error { return buf.Realloc(h, 120) }},
	}
	for _, s := range steps {
		if err := s.do(s.h); err != nil {
			return errors.Wrap(err, s.name)
		}
		fmt.Fprintf(w, "%-22s -> %s\n", s.name, s.h)
	}
	return printStats(w, buf)
}

func printStats(w io.Writer, buf *dsbuf.SafeBuffer) error {
	st, err := buf.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nallocated:          %s of %s (%d%%)\n",
		humanize.Bytes(uint64(st.AllocatedBytes)), humanize.Bytes(uint64(st.Capacity)), st.UsagePercent)
	fmt.Fprintf(w, "frontier:           %s\n", humanize.Bytes(uint64(st.Frontier)))
	fmt.Fprintf(w, "max new allocation: %s\n", humanize.Bytes(uint64(st.MaxNewAllocation)))
	fmt.Fprintf(w, "descriptors:        %d unused, %d free, %d allocated of %d\n",
		st.UnusedDescriptors, st.FreeDescriptors, st.AllocatedDescriptors, st.MaxDescriptors)
	return nil
}

func writeMetrics(w io.Writer, buf *dsbuf.SafeBuffer) error {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(dsbuf.NewCollector(buf, prometheus.Labels{"buffer": "demo"})); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	fmt.Fprintln(w)
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrap(err, "encode metrics")
		}
	}
	return nil
}

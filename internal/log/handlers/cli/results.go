package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/summary"
	"github.com/mitchellh/go-wordwrap"
)

func formatStats(name string, s summary.Stats) string {
	return fmt.Sprintf("%-24s n=%-6d mean=%-10.4g median=%-10.4g std=%-10.4g min=%-10.4g max=%.4g",
		name, s.N, s.Mean, s.Median, s.Std, s.Min, s.Max)
}

func logSummaryRecord(w io.Writer, f log.Fields) error {
	record, good := f.Get("record").(*summary.Record)
	if !good || record == nil {
		return fmt.Errorf("cli: summary_record without a record")
	}
	title := record.Experiment
	if key := record.KeyString(); key != "" {
		title += " [" + key + "]"
	}
	lines := []string{bold.Sprint(title)}
	var names []string
	for name := range record.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, formatStats(name, record.Columns[name]))
	}
	logBox(w, lines)
	return nil
}

func logDVResult(w io.Writer, f log.Fields) error {
	result, good := f.Get("result").(*dv.Result)
	if !good || result == nil {
		return fmt.Errorf("cli: dv_result without a result")
	}
	worker, _ := f.Get("worker").(string)
	lines := []string{bold.Sprint(worker)}
	for _, name := range result.Names() {
		lines = append(lines, fmt.Sprintf("%-24s %.6g", name, result.Values[name]))
	}
	if result.Description != "" {
		lines = append(lines, strings.Split(wordwrap.WrapString(result.Description, 72), "\n")...)
	}
	logBox(w, lines)
	return nil
}

// Package output emits the typed log entries rendered by the
// internal/log/handlers/cli handler.
package output

import (
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/summary"
)

// SectionTitle logs a section title
func SectionTitle(text string) {
	log.WithFields(log.Fields{
		"type":  "section_title",
		"title": text,
	}).Info(text)
}

// Table logs the given fields as a table
func Table(msg string, fields log.Fields) {
	out := log.Fields{"type": "table"}
	for key, value := range fields {
		out[key] = value
	}
	log.WithFields(out).Info(msg)
}

// SummaryRecord logs the descriptive statistics of a group
func SummaryRecord(record *summary.Record) {
	log.WithFields(log.Fields{
		"type":   "summary_record",
		"record": record,
	}).Info("summary record")
}

// DVResult logs the DVs of a worker
func DVResult(worker string, result *dv.Result) {
	log.WithFields(log.Fields{
		"type":   "dv_result",
		"worker": worker,
		"result": result,
	}).Info("dv result")
}

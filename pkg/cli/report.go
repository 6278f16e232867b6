package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/m-mizutani/onesky-appdesc/pkg/domain/model"
)

var (
	colorSuccess = color.New(color.FgGreen, color.Bold)
	colorEmpty   = color.New(color.FgYellow, color.Bold)
	colorFailed  = color.New(color.FgRed, color.Bold)
)

// printReport writes a per-locale summary of a download run
func printReport(w io.Writer, report *model.DownloadReport) {
	for _, o := range report.Outcomes {
		switch o.Status {
		case model.StatusSuccess:
			colorSuccess.Fprintf(w, "✔ %-12s", o.Locale)
			fmt.Fprintf(w, " %d file(s) %s\n", len(o.Files), strings.Join(o.Files, ", "))
		case model.StatusEmptyResponse:
			colorEmpty.Fprintf(w, "! %-12s", o.Locale)
			fmt.Fprintln(w, " no app description translation")
		case model.StatusFailed:
			colorFailed.Fprintf(w, "✘ %-12s", o.Locale)
			fmt.Fprintf(w, " %v\n", o.Err)
		}
	}

	fmt.Fprintf(w, "%d succeeded, %d empty, %d failed\n",
		len(report.Succeeded()), len(report.Empty()), len(report.Failed()))
}

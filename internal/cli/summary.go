package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/danieljhkim/pdfsplit/internal/engine"
)

// printSummary prints a human-readable report of a finished split.
func printSummary(w io.Writer, req *engine.SplitRequest, result *engine.SplitResult) {
	printSection(w, "Split Complete")
	printLabelValue(w, "Source", req.FilePath)
	printLabelValue(w, "Pages", strconv.Itoa(result.TotalPages))
	if result.Intro != nil {
		printLabelValue(w, "Intro", fmt.Sprintf("%s (%s)", result.Intro, formatCount(result.IntroPages, "page", "pages")))
	}
	printLabelValue(w, "Run", result.RunID)
	printLabelValue(w, "Elapsed", result.Elapsed.Round(time.Millisecond).String())
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(result.Parts))
	for i, part := range result.Parts {
		body := "-"
		if !part.IsEmpty() {
			body = fmt.Sprintf("%d-%d", part.StartPage, part.EndPage)
		}
		output, digest := "", ""
		if i < len(result.Artifacts) {
			output = result.Artifacts[i].Path
			digest = shortDigest(result.Artifacts[i].SHA256)
		}
		rows = append(rows, []string{
			strconv.Itoa(part.Index),
			body,
			strconv.Itoa(part.TotalPages()),
			output,
			digest,
		})
	}
	printTable(w, []string{"PART", "BODY", "PAGES", "OUTPUT", "SHA256"}, rows)
	fmt.Fprintln(w)

	if empty := result.EmptyParts(); len(empty) > 0 {
		printWarning(w, fmt.Sprintf("%s without body pages", formatCount(len(empty), "part", "parts")))
	}
	printSuccess(w, fmt.Sprintf("Wrote %s", formatCount(len(result.Outputs), "part", "parts")))
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

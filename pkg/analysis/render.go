package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteText writes the human-readable form of the report
func WriteText(w io.Writer, report *Report, path string) error {
	var b strings.Builder
	s := report.Summary

	title := "STL Analysis: " + path
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("=", len(title)))
	fmt.Fprintf(&b, "Vertices:       %d\n", s.NumVertices)
	fmt.Fprintf(&b, "Faces:          %d\n", s.NumFaces)
	fmt.Fprintf(&b, "Watertight:     %t\n", s.IsWatertight)
	fmt.Fprintf(&b, "Components:     %d\n", s.NumComponents)
	fmt.Fprintln(&b)

	if len(report.Issues) == 0 {
		fmt.Fprintln(&b, "No issues detected.")
	} else {
		fmt.Fprintln(&b, "Detected issues:")
		fmt.Fprintln(&b, "----------------")
		for _, issue := range report.Issues {
			fmt.Fprintln(&b, FormatIssue(issue))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatIssue renders one issue as a single line
func FormatIssue(issue Issue) string {
	sev := strings.ToUpper(string(issue.Severity))
	if issue.Count > 0 {
		return fmt.Sprintf("[%s] %s (count=%d) -> %s", sev, issue.Type, issue.Count, issue.Message)
	}
	return fmt.Sprintf("[%s] %s -> %s", sev, issue.Type, issue.Message)
}

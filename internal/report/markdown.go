package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"

	"go-photo-critique/pkg/models"
)

// MarkdownWriter outputs critiques in Markdown format, designed for
// sharing and documentation.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the critique in Markdown format.
func (w *MarkdownWriter) Write(resp *models.CritiqueResponse) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, resp)
	w.writeScores(md, resp)
	w.writeNotes(md, resp)
	w.writeExif(md, resp)
	w.writePrint(md, resp)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the request summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, resp *models.CritiqueResponse) {
	md.H1("Photo Critique")
	md.PlainText("")

	source := resp.Filename
	if source == "" {
		source = resp.ImageURL
	}
	if source == "" {
		source = "-"
	}

	imageInfo := "-"
	if resp.Image != nil {
		imageInfo = fmt.Sprintf("%dx%d px", resp.Image.Width, resp.Image.Height)
		if resp.Image.Format != "" {
			imageInfo += " (" + resp.Image.Format + ")"
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", source},
			{"Critiqued", resp.Timestamp},
			{"Image", imageInfo},
			{"Overall", "**" + formatScore(resp.Score.Overall) + " (" + resp.Score.Grade + ")**"},
		},
	})
	md.PlainText("")
}

// writeScores writes the per-metric score table.
func (w *MarkdownWriter) writeScores(md *markdown.Markdown, resp *models.CritiqueResponse) {
	md.H2("Scores")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Score", "Status"},
		Rows: [][]string{
			{"Exposure", formatScore(resp.Metrics.Exposure.Score), metricStatus(resp.Metrics.Exposure.Available, resp.Metrics.Exposure.Error)},
			{"Sharpness", formatScore(resp.Metrics.Sharpness.Score), metricStatus(resp.Metrics.Sharpness.Available, resp.Metrics.Sharpness.Error)},
			{"Color", formatScore(resp.Metrics.Color.Score), metricStatus(resp.Metrics.Color.Available, resp.Metrics.Color.Error)},
			{"**Overall**", "**" + formatScore(resp.Score.Overall) + "**", "grade " + resp.Score.Grade},
		},
	})
	md.PlainText("")

	if len(resp.Score.Explain) > 0 {
		md.BulletList(resp.Score.Explain...)
		md.PlainText("")
	}
}

// writeNotes writes the per-metric verdict notes.
func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, resp *models.CritiqueResponse) {
	sections := []struct {
		header string
		notes  []string
	}{
		{"### Exposure", resp.Metrics.Exposure.Notes},
		{"### Sharpness", resp.Metrics.Sharpness.Notes},
		{"### Color", resp.Metrics.Color.Notes},
	}

	wroteHeader := false
	for _, section := range sections {
		if len(section.notes) == 0 {
			continue
		}
		if !wroteHeader {
			md.H2("Notes")
			md.PlainText("")
			wroteHeader = true
		}
		md.PlainText(section.header)
		md.PlainText("")
		md.BulletList(section.notes...)
		md.PlainText("")
	}
}

// writeExif writes the EXIF summary section when the file carried EXIF.
func (w *MarkdownWriter) writeExif(md *markdown.Markdown, resp *models.CritiqueResponse) {
	exif := resp.Exif
	if !exif.Available && exif.Error != "" {
		md.H2("EXIF")
		md.PlainText("")
		md.PlainText(exif.Error)
		md.PlainText("")
		return
	}
	if !exif.HasExif || exif.Summary == nil {
		return
	}

	rows := [][]string{}
	addRow := func(label, value string) {
		if value != "" {
			rows = append(rows, []string{label, value})
		}
	}
	addRow("Make", exif.Summary.Make)
	addRow("Model", exif.Summary.Model)
	addRow("Lens", exif.Summary.LensModel)
	addRow("Taken", exif.Summary.DateTimeOriginal)
	addRow("ISO", exif.Summary.ISO)
	addRow("Aperture", exif.Summary.FNumber)
	addRow("Shutter", exif.Summary.ExposureTime)
	addRow("Focal length", exif.Summary.FocalLength)
	if exif.Summary.HasGPS {
		rows = append(rows, []string{"GPS", "present"})
	}
	if len(rows) == 0 {
		return
	}

	md.H2("EXIF")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePrint writes the print-readiness section when present.
func (w *MarkdownWriter) writePrint(md *markdown.Markdown, resp *models.CritiqueResponse) {
	pr := resp.Print
	if pr == nil {
		return
	}

	md.H2("Print Readiness")
	md.PlainText("")

	targets := make([]models.MaxPrintSize, 0, len(pr.Targets))
	for _, target := range pr.Targets {
		targets = append(targets, target)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].TargetPPI > targets[j].TargetPPI
	})

	rows := make([][]string, len(targets))
	for i, target := range targets {
		rows[i] = []string{
			strconv.Itoa(int(target.TargetPPI)),
			formatInches(target.MaxWidthIn) + " x " + formatInches(target.MaxHeightIn),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Target PPI", "Max print (in)"},
		Rows:   rows,
	})
	md.PlainText("")

	if pr.TargetPrintSize != nil && pr.EffectivePPI != nil {
		md.PlainTextf("Requested %s x %s in prints at %s PPI (min of both axes).",
			formatInches(pr.TargetPrintSize.WidthIn),
			formatInches(pr.TargetPrintSize.HeightIn),
			formatInches(pr.EffectivePPI.PPIMin),
		)
		md.PlainText("")
	}
	if pr.Quality != nil {
		md.PlainTextf("**%s**: %s", pr.Quality.Tier, pr.Quality.Message)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainTextf("*Generated by photo-critique*")
}

// metricStatus renders the availability column.
func metricStatus(available bool, errMsg string) string {
	if available {
		return "ok"
	}
	if errMsg == "" {
		return "unavailable"
	}
	return "unavailable: " + errMsg
}

// formatScore renders a 0-100 score with one decimal place.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// formatInches renders inches and PPI values with two decimal places.
func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

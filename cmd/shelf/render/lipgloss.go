package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const statusReading = "Reading"

type LipglossRenderer struct {
	width int
	now   func() time.Time
	r     *lipgloss.Renderer

	titleStyle   lipgloss.Style
	bylineStyle  lipgloss.Style
	metaStyle    lipgloss.Style
	readingStyle lipgloss.Style
	ratingStyle  lipgloss.Style
	droppedStyle lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:        width,
		now:          time.Now,
		r:            r,
		titleStyle:   r.NewStyle().Bold(true),
		bylineStyle:  r.NewStyle().Faint(true),
		metaStyle:    r.NewStyle().Faint(true),
		readingStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		ratingStyle:  r.NewStyle().Foreground(lipgloss.Color("11")),
		droppedStyle: r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithClock(now func() time.Time) *LipglossRenderer {
	r.now = now
	return r
}

func (r *LipglossRenderer) RenderBookList(view BookListView) string {
	if view.IsEmpty() {
		return "No books found.\n"
	}

	now := r.now()
	var sb strings.Builder
	for i, item := range view.Items {
		last := i == len(view.Items)-1
		sb.WriteString(r.renderItem(item, now, last))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *LipglossRenderer) renderItem(item BookListItem, now time.Time, last bool) string {
	dropped := item.Status == "Dropped"

	titleStyle := r.titleStyle
	bylineStyle := r.bylineStyle
	metaStyle := r.metaStyle
	if dropped {
		titleStyle = r.droppedStyle.Bold(true)
		bylineStyle = r.droppedStyle
		metaStyle = r.droppedStyle
	} else if item.Status == statusReading {
		metaStyle = r.readingStyle
	}

	title := titleStyle.Render(item.Title)
	metaEl := metaStyle.Render(formatStatus(item) + " · " + formatAdded(item.Added, now))

	padding := max(1, r.width-lipgloss.Width(title)-lipgloss.Width(metaEl))
	headerLine := title + strings.Repeat(" ", padding) + metaEl

	var lines []string
	lines = append(lines, headerLine)
	lines = append(lines, bylineStyle.Render("  "+formatByline(item)))
	if item.Rating > 0 {
		lines = append(lines, r.ratingStyle.Render("  "+strings.Repeat("★", item.Rating)))
	}
	if !last {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func formatByline(item BookListItem) string {
	parts := []string{"by " + item.Author}
	if item.Genre != "" {
		parts = append(parts, item.Genre)
	}
	if item.Year != 0 {
		parts = append(parts, strconv.Itoa(item.Year))
	}
	return strings.Join(parts, " · ")
}

func formatStatus(item BookListItem) string {
	if item.Status == statusReading && item.Progress > 0 {
		return fmt.Sprintf("Reading %d%%", int(item.Progress*100+0.5))
	}
	return item.Status
}

func formatAdded(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2 '06")
}

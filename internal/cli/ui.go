package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/invoicer/pkg/pipeline"
)

// Terminal colors follow the midnight workbook palette so that the summary
// table and the rendered sheet look alike.
var (
	colorAccent      = lipgloss.Color("#6C5CE7")
	colorAccentLight = lipgloss.Color("#A29BFE")
	colorText        = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#F8F9FA"}
	colorMuted       = lipgloss.Color("#636E72")
	colorOK          = lipgloss.Color("#00B894")
	colorWarn        = lipgloss.Color("#FDCB6E")
	colorFail        = lipgloss.Color("#E17055")
)

var (
	// StyleTitle renders headings such as the invoice title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)
	// StyleValue renders paths and plain values.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)
	// StyleNumber renders money and hour totals.
	StyleNumber = lipgloss.NewStyle().Bold(true).Foreground(colorAccentLight)
	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorAccentLight)
	styleBar         = lipgloss.NewStyle().Foreground(colorAccent)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorAccentLight)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

// status is the leading marker of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusSuccess = status{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	statusError   = status{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	statusWarning = status{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	statusInfo    = status{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (s status) println(w io.Writer, msg string) {
	fmt.Fprintln(w, s.style.Render(s.icon)+" "+msg)
}

func printSuccess(w io.Writer, format string, args ...any) {
	statusSuccess.println(w, fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	statusError.println(w, fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	statusWarning.println(w, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	statusInfo.println(w, fmt.Sprintf(format, args...))
}

// printFile lists a written output file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints "2 sections · 3 items · 31 rows · fresh" under a render
// result. Rows are omitted when no sheet was laid out.
func printStats(w io.Writer, st pipeline.Stats, cached bool) {
	parts := []string{
		plural(st.Sections, "section"),
		plural(st.Items, "item"),
	}
	if st.Rows > 0 {
		parts = append(parts, plural(st.Rows, "row"))
	}
	origin := "fresh"
	if cached {
		origin = "cached"
	}
	parts = append(parts, origin)
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep suggests a follow-up command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline(w io.Writer) {
	fmt.Fprintln(w)
}

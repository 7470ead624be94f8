package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	canvas      lipgloss.Style
	stats       lipgloss.Style
	header      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	activeParam lipgloss.Style
	graph       lipgloss.Style
	help        lipgloss.Style
	status      lipgloss.Style
	warn        lipgloss.Style
	err         lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:      lipgloss.NewStyle().Padding(1, 2),
		stats:       lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(40),
		header:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true).MarginBottom(1),
		tab:         lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		activeTab:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1).Underline(true),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:       lipgloss.NewStyle().Foreground(t.Text),
		activeParam: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		graph:       lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		help:        lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		status:      lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		warn:        lipgloss.NewStyle().Foreground(t.Warning),
		err:         lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// GradientText colors each rune of text along a Lab blend between two
// colors.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var result strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		color := lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(r)))
	}
	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ParamBar renders where v sits in [min, max] as a fixed-width bar.
func ParamBar(v, min, max float64, width int) string {
	ratio := 0.0
	if max > min {
		ratio = (v - min) / (max - min)
	}
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

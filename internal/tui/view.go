package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	stateWidth := m.width / 2
	leftWidth := m.width - stateWidth - 4
	controlsHeight := 4
	panelHeight := max(m.height-controlsHeight-2, 6)

	var leftPanel string
	if m.focus == focusEditor {
		leftPanel = m.renderEditorPanel(leftWidth, panelHeight)
	} else {
		leftPanel = m.renderStepsPanel(leftWidth, panelHeight)
	}
	statePanel := m.renderStatePanel(stateWidth, panelHeight)
	controls := m.renderControls(m.width - 4)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, statePanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, controls)
}

// renderStepsPanel lists the flattened gate sequence with the cursor on
// the next gate to fire.
func (m Model) renderStepsPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Gates"))
	sb.WriteString("\n\n")

	if m.program == nil {
		sb.WriteString(errorStyle.Render(m.parseErr))
		return stepsPanelStyle.Width(width).Height(height).Render(sb.String())
	}

	rows := max(height-6, 1)
	start := 0
	if m.cursor > rows/2 {
		start = m.cursor - rows/2
	}
	if start+rows > len(m.steps) {
		start = max(len(m.steps)-rows, 0)
	}

	for i := start; i < len(m.steps) && i < start+rows; i++ {
		name := m.steps[i].Name()
		switch {
		case i == m.cursor:
			sb.WriteString(activeGateStyle.Render(fmt.Sprintf("▸ %2d %s", i, name)))
		case i < m.cursor:
			sb.WriteString(doneGateStyle.Render(fmt.Sprintf("  %2d %s", i, name)))
		default:
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  %2d %s", i, name)))
		}
		sb.WriteString("\n")
	}
	if m.cursor == len(m.steps) && len(m.steps) > 0 {
		sb.WriteString(activeGateStyle.Render("▸ (end)"))
		sb.WriteString("\n")
	}
	if m.parseErr != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.parseErr))
	}

	return stepsPanelStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel shows the amplitudes and probabilities of the state
// at the cursor.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("State after %d/%d gates", m.cursor, len(m.steps))))
	sb.WriteString("\n\n")

	if len(m.states) == 0 {
		sb.WriteString(dimStyle.Render("no circuit"))
		return statePanelStyle.Width(width).Height(height).Render(sb.String())
	}

	q := m.states[m.cursor]
	shown := 0
	for idx, p := range q.Probs() {
		if p < 1e-6 {
			continue
		}
		if shown >= maxStateRows {
			sb.WriteString(dimStyle.Render("…"))
			sb.WriteString("\n")
			break
		}
		amp, _ := q.Amplitude(idx)
		bar := strings.Repeat("█", int(p*barWidth+0.5))
		sb.WriteString(basisLabelStyle.Render(fmt.Sprintf("|%0*b⟩", q.Size, idx)))
		sb.WriteString(fmt.Sprintf(" % .4f%+.4fi  %.4f ", real(amp), imag(amp), p))
		sb.WriteString(barStyle.Render(bar))
		sb.WriteString("\n")
		shown++
	}

	return statePanelStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderEditorPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("QASM"))
	sb.WriteString("\n\n")
	sb.WriteString(m.editor.View())
	return editorPanelStyle.Width(width).Height(height).Render(sb.String())
}

func (m Model) renderControls(width int) string {
	var help string
	if m.focus == focusEditor {
		help = "Esc apply+back  Ctrl+C quit"
	} else {
		help = "←/→ step  g/G ends  e edit QASM  q quit"
	}
	return controlsStyle.Width(width).Render(dimStyle.Render(help))
}

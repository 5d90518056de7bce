// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package progressui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archmagece/mgit/internal/syncengine"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	barFilled   = lipgloss.NewStyle().Background(lipgloss.Color("42"))
	barEmpty    = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	barWidth    = 30
)

// workerRow is one worker's transient progress line.
type workerRow struct {
	index   int
	label   string
	message string
	done    bool
	ok      bool
}

type bubbleModel struct {
	total    int
	position int
	workers  map[int]workerRow
}

func (m bubbleModel) Init() tea.Cmd { return nil }

func (m bubbleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case startEventMsg:
		m.workers[ev.index] = workerRow{index: ev.index, label: ev.label}
	case finishEventMsg:
		row := m.workers[ev.index]
		row.done = true
		row.ok = ev.ok
		row.message = ev.message
		m.workers[ev.index] = row
	case totalEventMsg:
		m.position = ev.position
		m.total = ev.total
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m bubbleModel) View() string {
	var b strings.Builder

	filled := 0
	if m.total > 0 {
		filled = m.position * barWidth / m.total
	}
	bar := barFilled.Render(strings.Repeat(" ", filled)) + barEmpty.Render(strings.Repeat(" ", barWidth-filled))
	fmt.Fprintf(&b, "%s %s %d/%d\n", totalStyle.Render("sync"), bar, m.position, m.total)

	indices := make([]int, 0, len(m.workers))
	for i := range m.workers {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		row := m.workers[i]
		if row.done {
			mark := okStyle.Render("done")
			if !row.ok {
				mark = failStyle.Render("fail")
			}
			fmt.Fprintf(&b, "  %s %s %s\n", labelStyle.Render(row.label), mark, row.message)
		} else {
			fmt.Fprintf(&b, "  %s ...\n", labelStyle.Render(row.label))
		}
	}
	return b.String()
}

type startEventMsg struct {
	index int
	label string
}

type finishEventMsg struct {
	index   int
	ok      bool
	message string
}

type totalEventMsg struct {
	position, total int
}

type quitMsg struct{}

// BubbleSink renders an aggregate bar plus one transient line per active
// worker using bubbletea, grounded on the teacher's in-place ANSI redraw
// renderer but expressed as a proper terminal UI model/update/view loop.
type BubbleSink struct {
	program *tea.Program
	done    chan struct{}
}

// NewBubbleSink creates the sink; the bubbletea program starts in
// StartTotal, and OnEvent and FinishTotal do nothing before that call.
func NewBubbleSink() *BubbleSink {
	return &BubbleSink{done: make(chan struct{})}
}

func (s *BubbleSink) StartTotal(n int) {
	model := bubbleModel{total: n, workers: make(map[int]workerRow)}
	s.program = tea.NewProgram(model)
	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

func (s *BubbleSink) OnEvent(ev syncengine.ProgressEvent) {
	if s.program == nil {
		return
	}
	switch ev.Kind {
	case syncengine.EventStart:
		s.program.Send(startEventMsg{index: ev.Index, label: ev.Label})
	case syncengine.EventFinish:
		s.program.Send(finishEventMsg{index: ev.Index, ok: ev.OK, message: ev.Message})
	case syncengine.EventTotal:
		s.program.Send(totalEventMsg{position: ev.Position, total: ev.Total})
	}
}

func (s *BubbleSink) FinishTotal() {
	if s.program == nil {
		return
	}
	s.program.Send(quitMsg{})
	<-s.done
}

var _ syncengine.ProgressSink = (*BubbleSink)(nil)

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// lineReader reads one shell line at a time. It returns io.EOF when input
// ends.
type lineReader interface {
	ReadLine(prompt string) (string, error)
}

// newLineReader returns an editing reader with history when in is a
// terminal, and a plain buffered reader otherwise (scripts, pipes, tests).
func newLineReader(in io.Reader, out io.Writer) lineReader {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return &interactiveReader{out: out, maxHistory: 100}
	}
	return &plainReader{reader: bufio.NewReader(in)}
}

type plainReader struct {
	reader *bufio.Reader
}

func (r *plainReader) ReadLine(string) (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type interactiveReader struct {
	out        io.Writer
	history    []string
	maxHistory int
}

func (r *interactiveReader) ReadLine(prompt string) (string, error) {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 100

	p := tea.NewProgram(inputModel{textInput: ti, history: r.history, historyIndex: -1}, tea.WithOutput(r.out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	result, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", final)
	}
	if result.eof {
		return "", io.EOF
	}

	line := strings.TrimSpace(result.textInput.Value())
	fmt.Fprintln(r.out, prompt+line)
	if line != "" && (len(r.history) == 0 || r.history[len(r.history)-1] != line) {
		r.history = append(r.history, line)
		if len(r.history) > r.maxHistory {
			r.history = r.history[1:]
		}
	}
	return line, nil
}

// inputModel is the bubbletea model for one line of input with up/down
// history navigation.
type inputModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	pending      string
	done         bool
	eof          bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			m.eof = true
			m.done = true
			return m, tea.Quit
		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.pending = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil
		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textInput.SetValue(m.pending)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

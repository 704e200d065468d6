package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/tabi/internal/converter"
	"github.com/nconklindev/tabi/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateProcessing
	stateComplete
	stateError
)

// Model picks a spreadsheet and converts it with the options it was built with.
type Model struct {
	state        state
	filepicker   filepicker.Model
	opts         converter.Options
	selectedFile string
	result       *types.ConversionResult
	err          error
	width        int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionResultMsg
}

type conversionResultMsg struct {
	result *types.ConversionResult
	err    error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel starts in the file picker. opts.InputPath is replaced by the
// picked file.
func InitialModel(opts converter.Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = converter.SupportedExtensions()
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorRose)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorPlum)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorPlum)
	fp.Styles.File = lipgloss.NewStyle().Foreground(colorText)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(colorMuted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorRose).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(colorMuted)

	return Model{
		state:      stateFilePicker,
		filepicker: fp,
		opts:       opts,
		progress:   progress.New(progress.WithGradient("#FFDEDE", "#D65A8D")),
	}
}

// Result returns the finished conversion, or nil if none completed.
func (m Model) Result() *types.ConversionResult {
	return m.result
}

// Err returns the conversion error, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		// Leave room for the title, subtitle and help lines.
		height := msg.Height - 10
		if height < 5 {
			height = 5
		}
		m.filepicker.Height = height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}
		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = stateProcessing
			return m.convertFile()
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) convertFile() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionResultMsg, 1)

	opts := m.opts
	opts.InputPath = m.selectedFile
	progressChan := m.progressChan
	resultChan := m.resultChan

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				result, err := converter.Convert(opts, progressChan)
				resultChan <- conversionResultMsg{result: result, err: err}
				close(progressChan)
				close(resultChan)
			}()
			return waitForProgressMsg{}
		},
		m.progress.Init(),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan conversionResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📍 tabi - itinerary page generator"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a spreadsheet to turn into a travel plan"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🕘 Rendering..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Building the page for %s", filepath.Base(m.selectedFile)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Page generated!"))
	s.WriteString("\n\n")

	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input:  %s\n", truncatePath(m.result.InputFile, maxPathLen)))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s", truncatePath(m.result.OutputFile, maxPathLen))))
	s.WriteString("\n\n")

	header := "default"
	if m.result.HeaderDetected {
		header = "from first row"
	}
	s.WriteString(fmt.Sprintf("Columns: %s (%s)\n", strings.Join(m.result.Columns[:], ", "), header))
	s.WriteString(fmt.Sprintf("Rows rendered: %d\n", m.result.RowsRendered))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func truncatePath(p string, limit int) string {
	if len(p) <= limit {
		return p
	}
	return "..." + p[len(p)-limit+3:]
}

// Run shows the picker full screen and returns the conversion it performed.
// A nil result with a nil error means the user quit without picking a file.
func Run(opts converter.Options) (*types.ConversionResult, error) {
	p := tea.NewProgram(InitialModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(Model)
	return m.Result(), m.Err()
}

package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/bunkerhq/bunker-engine/pkg/game"
)

const PlaceHolderText = "Type a command, /help for the list..."

// ConsoleUI is the BubbleTea model that runs the moderator console.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	channelID    string
	summary      game.Summary
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

// apiResultMsg carries the text of a finished API call.
type apiResultMsg struct {
	text string
	err  error
}

type summaryMsg struct {
	summary game.Summary
	err     error
}

type progressTickMsg struct{}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")). // orange
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	exiledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, channelID string, summary game.Summary) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	ui := ConsoleUI{
		config:       cfg,
		client:       client,
		channelID:    channelID,
		summary:      summary,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: metaVp,
	}
	ui.logViewport.SetContent(ui.initialContent(44))
	return ui
}

func (m ConsoleUI) initialContent(width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("BUNKER") + "\n\n")
	content.WriteString("Moderator console for channel " + commandStyle.Render(m.channelID) + "\n")
	content.WriteString("Add players with /join, then /start the game.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(width-6, 10))) + "\n\n")
	return content.String()
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME") + "\n\n")

	content.WriteString("Channel:\n")
	content.WriteString(m.channelID + "\n\n")

	content.WriteString(fmt.Sprintf("Status: %s\n", m.summary.Status))
	content.WriteString(fmt.Sprintf("Round:  %d\n\n", m.summary.Round))

	content.WriteString(fmt.Sprintf("Players (%d):\n", len(m.summary.Players)))
	for _, p := range m.summary.Players {
		line := fmt.Sprintf("• %s (%s)", p.Name, p.ID)
		if !p.Active {
			line = exiledStyle.Render(line)
		}
		content.WriteString(line + "\n")
	}
	content.WriteString("\n")

	if m.summary.VoteOpen {
		content.WriteString(fmt.Sprintf("Vote: %d/%d ballots\n\n",
			m.summary.BallotsCast, m.summary.BallotsExpected))
	}
	if m.summary.WinnerID != "" {
		content.WriteString("Winner: " + m.summary.WinnerID + "\n\n")
	}
	if m.summary.EndReason != "" {
		content.WriteString("Ended: " + m.summary.EndReason + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Ctrl+Y: Copy channel\n")
	content.WriteString("• /help: Help\n")

	m.metaViewport.SetContent(content.String())
}

func (m *ConsoleUI) appendLog(s string) {
	width := m.logViewport.Width - 6
	if width < 10 {
		width = 10
	}
	content := m.logViewport.View()
	if !m.ready {
		content = m.initialContent(m.logViewport.Width)
	}
	m.logViewport.SetContent(content + wordwrap.String(s, width) + "\n\n")
	m.logViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.refreshSummary())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		logWidth := int(float64(m.width)*0.7) - 4
		metaWidth := m.width - logWidth - 6

		m.logViewport.Width = logWidth - 2
		m.logViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(logWidth - 4)

		if !m.ready {
			m.ready = true
			m.logViewport.SetContent(m.initialContent(m.logViewport.Width))
		}
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			if err := clipboard.WriteAll(m.channelID); err == nil {
				m.appendLog(resultStyle.Render("Channel id copied to clipboard."))
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.appendLog(commandStyle.Render("> " + input))

			cmd, local := m.handleCommand(input)
			if local {
				return m, nil
			}
			m.loading = true
			m.progressTick = 0
			return m, tea.Batch(cmd, progressTick())
		}

	case apiResultMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLog(errorStyle.Render("Error: " + msg.err.Error()))
		} else if msg.text != "" {
			m.appendLog(resultStyle.Render(msg.text))
		}
		return m, m.refreshSummary()

	case summaryMsg:
		if msg.err == nil {
			m.summary = msg.summary
			m.writeMetadata()
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

const helpText = `Commands:
• /join <id> <name>        - Add a player to the roster
• /leave <id>              - Remove a player
• /start                   - Start the game
• /bunker                  - Show the bunker briefing
• /card <id> [self]        - Show a character card
• /reveal <id> <attribute> - Reveal one attribute
• /round                   - Advance the round counter
• /vote                    - Open an exile vote
• /ballot <voter> <target> - Cast a ballot
• /tally                   - Show the open vote's tally
• /resolve                 - Force-resolve the open vote
• /analysis                - Judge the survivors
• /end                     - Cancel and archive the game
• /help                    - Show this help`

// handleCommand parses one slash command. Local commands (help, bad
// input) return immediately; the rest return an API call command.
func (m *ConsoleUI) handleCommand(input string) (tea.Cmd, bool) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	base := m.config.APIBaseURL
	client := m.client
	channel := m.channelID

	switch cmd {
	case "/help":
		m.appendLog(helpText)
		return nil, true

	case "/join":
		if len(args) < 2 {
			m.appendLog(errorStyle.Render("Usage: /join <id> <name>"))
			return nil, true
		}
		id, name := args[0], strings.Join(args[1:], " ")
		return func() tea.Msg {
			if err := joinPlayer(client, base, channel, id, name); err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: name + " joined the game."}
		}, false

	case "/leave":
		if len(args) != 1 {
			m.appendLog(errorStyle.Render("Usage: /leave <id>"))
			return nil, true
		}
		return func() tea.Msg {
			if err := leavePlayer(client, base, channel, args[0]); err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: args[0] + " left the game."}
		}, false

	case "/start":
		return func() tea.Msg {
			if _, err := startGame(client, base, channel); err != nil {
				return apiResultMsg{err: err}
			}
			bunker, err := getBunker(client, base, channel)
			if err != nil {
				return apiResultMsg{text: "The game has started."}
			}
			return apiResultMsg{text: "The game has started.\n\n" + bunker.Briefing}
		}, false

	case "/bunker":
		return func() tea.Msg {
			bunker, err := getBunker(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: bunker.Briefing}
		}, false

	case "/card":
		if len(args) < 1 {
			m.appendLog(errorStyle.Render("Usage: /card <id> [self]"))
			return nil, true
		}
		view := ""
		if len(args) > 1 && args[1] == "self" {
			view = "self"
		}
		return func() tea.Msg {
			card, err := getCard(client, base, channel, args[0], view)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: card.Card}
		}, false

	case "/reveal":
		if len(args) != 2 {
			m.appendLog(errorStyle.Render("Usage: /reveal <id> <attribute>"))
			return nil, true
		}
		return func() tea.Msg {
			resp, err := revealAttribute(client, base, channel, args[0], args[1])
			if err != nil {
				return apiResultMsg{err: err}
			}
			if !resp.Changed {
				return apiResultMsg{text: fmt.Sprintf("%s was already revealed: %s", resp.Attribute, resp.Value)}
			}
			return apiResultMsg{text: fmt.Sprintf("%s revealed %s: %s", resp.PlayerID, resp.Attribute, resp.Value)}
		}, false

	case "/round":
		return func() tea.Msg {
			round, err := advanceRound(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: fmt.Sprintf("Round %d begins.", round)}
		}, false

	case "/vote":
		return func() tea.Msg {
			expected, err := openVote(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: fmt.Sprintf("Exile vote opened, %d ballots expected.", expected)}
		}, false

	case "/ballot":
		if len(args) != 2 {
			m.appendLog(errorStyle.Render("Usage: /ballot <voter> <target>"))
			return nil, true
		}
		return func() tea.Msg {
			resp, err := castBallot(client, base, channel, args[0], args[1])
			if err != nil {
				return apiResultMsg{err: err}
			}
			if resp.Resolved {
				return apiResultMsg{text: outcomeText(*resp.Outcome)}
			}
			return apiResultMsg{text: fmt.Sprintf("Ballot recorded (%d/%d).", resp.Cast, resp.Expected)}
		}, false

	case "/tally":
		return func() tea.Msg {
			resp, err := getVoteTally(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: tallyText(resp)}
		}, false

	case "/resolve":
		return func() tea.Msg {
			outcome, err := resolveVote(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: outcomeText(outcome)}
		}, false

	case "/analysis":
		return func() tea.Msg {
			analysis, err := getAnalysis(client, base, channel)
			if err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: analysis}
		}, false

	case "/end":
		return func() tea.Msg {
			if _, err := deleteSession(client, base, channel); err != nil {
				return apiResultMsg{err: err}
			}
			return apiResultMsg{text: "The game has been cancelled and archived."}
		}, false
	}

	m.appendLog(errorStyle.Render("Unknown command, /help for the list."))
	return nil, true
}

func outcomeText(o game.Outcome) string {
	if o.Exiled != "" {
		return fmt.Sprintf("%s has been exiled with %d votes.", o.Exiled, o.Votes)
	}
	return fmt.Sprintf("The vote is tied between %s. Nobody is exiled; vote again.",
		strings.Join(o.Candidates, ", "))
}

func tallyText(resp VoteTallyResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ballots: %d/%d\n", resp.Cast, resp.Expected)
	targets := make([]string, 0, len(resp.Tally))
	for target := range resp.Tally {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		fmt.Fprintf(&b, "• %s: %d\n", target, resp.Tally[target])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m ConsoleUI) refreshSummary() tea.Cmd {
	return func() tea.Msg {
		sum, err := getSummary(m.client, m.config.APIBaseURL, m.channelID)
		return summaryMsg{sum, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Console?"))
	content.WriteString("\n\n")
	content.WriteString("The game keeps running on the server.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to stay"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	status := m.textarea.View()
	if m.loading {
		status = m.renderProgressBar()
	}

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(logWidth-4, 10))),
			status,
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		switch {
		case i < filled:
			bar.WriteString("█")
		case i == filled && frame%4 < 2:
			bar.WriteString("▓")
		default:
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

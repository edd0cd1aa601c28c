package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/thomaskoefod/enrichreadr/internal/api"
	"github.com/thomaskoefod/enrichreadr/internal/config"
	"github.com/thomaskoefod/enrichreadr/internal/history"
	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

type View int

const (
	ViewArticleList View = iota
	ViewArticleDetail
	ViewSubmit
	ViewHistory
	ViewHelp
)

type Model struct {
	cfg     *config.Config
	client  *api.Client
	journal *history.DB
	logger  *slog.Logger

	view     View
	prevView View

	listState   listState
	detail      detailState
	list        list.Model
	searchInput textinput.Model
	urlInput    textinput.Model
	spin        spinner.Model

	submitting bool
	submitErr  error

	submissions   []history.Submission
	historyCursor int

	pollInterval time.Duration
	pollTimeout  time.Duration

	detailContent string
	width         int
	height        int
	statusMsg     string
	errMsg        string
}

type articlesLoadedMsg struct {
	seq  int
	resp *models.ArticleListResponse
}

type articlesErrMsg struct {
	seq int
	err error
}

type articleLoadedMsg struct {
	article *models.Article
}

type articleErrMsg struct {
	err error
}

type articleDeletedMsg struct {
	id string
}

type submitAcceptedMsg struct {
	url  string
	task *models.ProcessingTask
}

type submitErrMsg struct {
	err error
}

type taskUpdateMsg struct {
	watch *api.Watch
	task  *models.ProcessingTask
}

type watchEndedMsg struct {
	watch  *api.Watch
	taskID string
}

type historyLoadedMsg struct {
	subs []history.Submission
}

type pendingTasksMsg struct {
	subs []history.Submission
}

type healthMsg struct {
	health *models.HealthResponse
	err    error
}

type statusMsg string

type errorMsg struct {
	err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	articleTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86")).
				MarginBottom(1)

	bandStyles = map[Band]lipgloss.Style{
		BandGood:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		BandWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		BandPoor:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

func New(cfg *config.Config, client *api.Client, journal *history.DB, logger *slog.Logger) Model {
	items := []list.Item{}
	delegate := list.NewDefaultDelegate()
	// Two description lines per card: the truncated summary and the
	// language/date/QA metadata line.
	delegate.SetHeight(3)
	l := list.New(items, delegate, 0, 0)
	l.Title = "EnrichReadr - Generated Articles"
	l.SetShowStatusBar(true)
	// Search runs server-side; the built-in fuzzy filter would only see
	// the current page.
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	search := textinput.New()
	search.Placeholder = "search articles..."
	search.CharLimit = 120

	urlIn := textinput.New()
	urlIn.Placeholder = "https://facebook.com/..."
	urlIn.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pollInterval, err := cfg.Poll.GetInterval()
	if err != nil {
		pollInterval = 2 * time.Second
	}
	pollTimeout, err := cfg.Poll.GetTimeout()
	if err != nil {
		pollTimeout = 10 * time.Minute
	}

	if logger == nil {
		logger = slog.Default()
	}

	state := newListState(cfg.UI.PageSize)
	state.language = cfg.UI.Language
	// The initial fetch issued from Init carries this token; Init runs
	// on a copy of the model, so the token is reserved here.
	state.seq = 1
	state.loading = true

	return Model{
		cfg:          cfg,
		client:       client,
		journal:      journal,
		logger:       logger,
		view:         ViewArticleList,
		listState:    state,
		list:         l,
		searchInput:  search,
		urlInput:     urlIn,
		spin:         sp,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchArticles(m.client, m.listState, m.listState.seq),
		checkHealth(m.client),
		loadPending(m.journal),
		m.spin.Tick,
		tea.EnterAltScreen,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case articlesLoadedMsg:
		if !m.listState.apply(msg.seq, msg.resp) {
			return m, nil
		}
		items := make([]list.Item, len(msg.resp.Articles))
		for i, article := range msg.resp.Articles {
			items[i] = articleItem{article}
		}
		m.list.SetItems(items)
		m.errMsg = ""
		m.statusMsg = fmt.Sprintf("Page %d/%d (%d articles total)", m.listState.page, max(m.listState.totalPages(), 1), m.listState.total)
		return m, nil

	case articlesErrMsg:
		if m.listState.fail(msg.seq, msg.err) {
			// Prior page stays on screen; only the status line changes.
			m.errMsg = userMessage(msg.err)
		}
		return m, nil

	case articleLoadedMsg:
		m.detail.apply(msg.article)
		m.detailContent = m.renderArticle(msg.article)
		return m, nil

	case articleErrMsg:
		m.detail.fail(msg.err)
		m.logger.Debug("article fetch failed", "id", m.detail.id, "error", msg.err)
		return m, nil

	case articleDeletedMsg:
		m.statusMsg = "Article deleted"
		if m.view == ViewArticleDetail {
			m.view = ViewArticleList
		}
		return m.refreshList()

	case submitAcceptedMsg:
		m.submitting = false
		m.submitErr = nil
		m.urlInput.SetValue("") // cleared only on success
		m.urlInput.Blur()
		sub := &history.Submission{URL: msg.url, TaskID: msg.task.TaskID}
		if err := m.journal.Add(sub); err != nil {
			m.logger.Warn("recording submission failed", "error", err)
		}
		m.view = ViewArticleList
		m.statusMsg = fmt.Sprintf("Processing %s (task %s)", msg.url, msg.task.TaskID)
		watch := m.client.WatchTask(msg.task.TaskID, m.pollInterval, m.pollTimeout)
		return m, waitForTask(watch, msg.task.TaskID)

	case submitErrMsg:
		// The form keeps its contents so the user can fix and retry.
		m.submitting = false
		m.submitErr = msg.err
		return m, nil

	case taskUpdateMsg:
		if !msg.task.Status.IsTerminal() {
			m.statusMsg = fmt.Sprintf("Task %s: %s", msg.task.TaskID, msg.task.Status)
		}
		return m, waitForTask(msg.watch, msg.task.TaskID)

	case watchEndedMsg:
		return m.settleWatch(msg)

	case historyLoadedMsg:
		m.submissions = msg.subs
		if m.historyCursor >= len(m.submissions) {
			m.historyCursor = 0
		}
		return m, nil

	case pendingTasksMsg:
		// Tasks submitted before a restart are watched again.
		cmds := make([]tea.Cmd, 0, len(msg.subs))
		for _, sub := range msg.subs {
			watch := m.client.WatchTask(sub.TaskID, m.pollInterval, m.pollTimeout)
			cmds = append(cmds, waitForTask(watch, sub.TaskID))
		}
		if len(cmds) > 0 {
			m.statusMsg = fmt.Sprintf("Resumed watching %d pending task(s)", len(cmds))
		}
		return m, tea.Batch(cmds...)

	case healthMsg:
		if msg.err != nil {
			m.errMsg = "Backend unreachable: " + userMessage(msg.err)
			m.logger.Warn("health check failed", "error", msg.err)
		} else {
			m.logger.Info("backend healthy", "version", msg.health.Version)
		}
		return m, nil

	case statusMsg:
		m.statusMsg = string(msg)
		return m, nil

	case errorMsg:
		m.errMsg = userMessage(msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// settleWatch converts a finished task watch into view state and the
// journal record, and refreshes the list after a successful run so the
// new article shows up.
func (m Model) settleWatch(msg watchEndedMsg) (tea.Model, tea.Cmd) {
	watch := msg.watch

	if failure := watch.Failure(); failure != nil {
		reason := failure.Error()
		var tf *api.TaskFailedError
		if errors.As(failure, &tf) {
			reason = tf.Reason
		}
		if err := m.journal.Settle(msg.taskID, string(models.TaskStatusFailed), "", reason); err != nil {
			m.logger.Warn("settling submission failed", "error", err)
		}
		m.errMsg = "Processing failed: " + reason
		return m, nil
	}

	if err := watch.Err(); err != nil {
		if errors.Is(err, api.ErrWatchTimeout) {
			// Still processing server-side; the history view can re-watch it.
			m.statusMsg = fmt.Sprintf("Task %s is taking a while; check the task view later", msg.taskID)
			return m, nil
		}
		m.errMsg = userMessage(err)
		return m, nil
	}

	last := watch.Last()
	if last == nil || last.Result == nil {
		return m, nil
	}

	result := last.Result
	if err := m.journal.Settle(msg.taskID, string(models.TaskStatusCompleted), result.ArticleID, result.Message); err != nil {
		m.logger.Warn("settling submission failed", "error", err)
	}

	if !result.Success {
		m.errMsg = result.Message
		return m, nil
	}

	if result.ArticleCount > 1 {
		m.statusMsg = fmt.Sprintf("Created %d articles", result.ArticleCount)
	} else {
		m.statusMsg = "Article created: " + result.ArticleID
	}
	return m.refreshList()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewArticleList:
		return m.handleListKeys(msg)
	case ViewArticleDetail:
		return m.handleDetailKeys(msg)
	case ViewSubmit:
		return m.handleSubmitKeys(msg)
	case ViewHistory:
		return m.handleHistoryKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput.Focused() {
		switch msg.String() {
		case "enter":
			m.searchInput.Blur()
			if m.listState.setQuery(strings.TrimSpace(m.searchInput.Value())) {
				return m.refreshList()
			}
			return m, nil
		case "esc":
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			if m.listState.setQuery("") {
				return m.refreshList()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter":
		if i, ok := m.list.SelectedItem().(articleItem); ok {
			m.view = ViewArticleDetail
			m.detail.begin(i.article.ID)
			m.detailContent = ""
			if !m.detail.loading {
				return m, nil
			}
			return m, fetchArticle(m.client, i.article.ID)
		}

	case "/":
		m.searchInput.Focus()
		return m, textinput.Blink

	case "n", "right":
		if m.listState.nextPage() {
			return m.refreshList()
		}

	case "p", "left":
		if m.listState.prevPage() {
			return m.refreshList()
		}

	case "a":
		m.view = ViewSubmit
		m.submitErr = nil
		m.urlInput.Focus()
		return m, textinput.Blink

	case "t":
		m.view = ViewHistory
		return m, loadHistory(m.journal)

	case "f":
		m.listState.setLanguage(nextLanguage(m.listState.language))
		return m.refreshList()

	case "x":
		if i, ok := m.list.SelectedItem().(articleItem); ok {
			return m, deleteArticle(m.client, i.article.ID)
		}

	case "r":
		return m.refreshList()

	case "?":
		m.prevView = ViewArticleList
		m.view = ViewHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace":
		m.view = ViewArticleList
		return m, nil

	case "o":
		if m.detail.article != nil {
			openBrowser(m.detail.article.SourceURL)
			return m, func() tea.Msg { return statusMsg("Opened source in browser") }
		}

	case "x":
		if m.detail.article != nil {
			return m, deleteArticle(m.client, m.detail.article.ID)
		}

	case "?":
		m.prevView = ViewArticleDetail
		m.view = ViewHelp
		return m, nil
	}

	return m, nil
}

func (m Model) handleSubmitKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.view = ViewArticleList
		m.urlInput.Blur()
		return m, nil

	case "enter":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		m.submitErr = nil
		return m, submitURL(m.client, m.urlInput.Value())
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc", "backspace", "t":
		m.view = ViewArticleList
		return m, nil

	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case "down", "j":
		if m.historyCursor < len(m.submissions)-1 {
			m.historyCursor++
		}
		return m, nil

	case "enter":
		if m.historyCursor < len(m.submissions) {
			sub := m.submissions[m.historyCursor]
			if sub.Status == string(models.TaskStatusProcessing) && sub.TaskID != "" {
				watch := m.client.WatchTask(sub.TaskID, m.pollInterval, m.pollTimeout)
				m.statusMsg = "Watching task " + sub.TaskID
				m.view = ViewArticleList
				return m, waitForTask(watch, sub.TaskID)
			}
			if sub.ArticleID != "" {
				m.view = ViewArticleDetail
				m.detail.begin(sub.ArticleID)
				m.detailContent = ""
				if !m.detail.loading {
					return m, nil
				}
				return m, fetchArticle(m.client, sub.ArticleID)
			}
		}
		return m, nil

	case "r":
		return m, loadHistory(m.journal)
	}

	return m, nil
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.view = m.prevView
		return m, nil
	}
	return m, nil
}

// refreshList issues a new list or search fetch for the current
// paging/search state.
func (m Model) refreshList() (tea.Model, tea.Cmd) {
	seq := m.listState.beginFetch()
	return m, fetchArticles(m.client, m.listState, seq)
}

func (m Model) View() string {
	switch m.view {
	case ViewArticleList:
		return m.renderList()
	case ViewArticleDetail:
		return m.renderDetail()
	case ViewSubmit:
		return m.renderSubmit()
	case ViewHistory:
		return m.renderHistory()
	case ViewHelp:
		return m.renderHelp()
	}
	return ""
}

func (m Model) renderList() string {
	var s strings.Builder

	s.WriteString(m.list.View())
	s.WriteString("\n")

	if m.searchInput.Focused() {
		s.WriteString("Search: " + m.searchInput.View())
	} else if m.listState.searching() {
		s.WriteString(statusStyle.Render(fmt.Sprintf("Search: %q", m.listState.query)))
	}
	if m.listState.language != "" {
		s.WriteString(helpStyle.Render(fmt.Sprintf("  [filter: %s]", LanguageLabel(m.listState.language, ""))))
	}
	s.WriteString("\n")

	// Status bar
	if m.listState.loading {
		s.WriteString(m.spin.View() + " loading...")
	} else if m.errMsg != "" {
		s.WriteString(errorStyle.Render("Error: " + m.errMsg))
	} else if m.statusMsg != "" {
		s.WriteString(statusStyle.Render(m.statusMsg))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("enter: read • /: search • n/p: page • a: add url • t: tasks • x: delete • r: refresh • ?: help • q: quit"))

	return s.String()
}

func (m Model) renderDetail() string {
	var s strings.Builder

	switch {
	case m.detail.loading:
		s.WriteString(m.spin.View() + " loading article...")
	case m.detail.notFound():
		s.WriteString(articleTitleStyle.Render("Article Not Found"))
		s.WriteString("\n")
		s.WriteString("The requested article does not exist or has been deleted.")
	case m.detail.err != nil:
		s.WriteString(errorStyle.Render("Error: " + userMessage(m.detail.err)))
	default:
		s.WriteString(m.detailContent)
	}

	s.WriteString("\n\n")
	if m.statusMsg != "" && !m.detail.loading {
		s.WriteString(statusStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("o: open source • x: delete • esc: back • ?: help • q: quit"))

	return s.String()
}

// renderArticle builds the full detail body: metadata, QA score table,
// and the glamour-rendered markdown body.
func (m Model) renderArticle(article *models.Article) string {
	var s strings.Builder

	s.WriteString(articleTitleStyle.Render(article.Title))
	s.WriteString("\n")

	meta := fmt.Sprintf("%s | %s | %s | %s",
		LanguageLabel(article.Language, article.Dialect),
		FormatDate(article.CreatedAt),
		article.SourceType,
		article.Status,
	)
	s.WriteString(helpStyle.Render(meta))
	s.WriteString("\n")

	if len(article.Categories) > 0 {
		s.WriteString(helpStyle.Render("Categories: " + strings.Join(article.Categories, ", ")))
		s.WriteString("\n")
	}
	if len(article.Tags) > 0 {
		s.WriteString(helpStyle.Render("Tags: " + strings.Join(article.Tags, ", ")))
		s.WriteString("\n")
	}

	if article.QAScores != nil {
		s.WriteString("\n")
		verdict := "passed"
		verdictStyle := bandStyles[BandGood]
		if !article.QAScores.Passed {
			verdict = "failed: " + strings.Join(article.QAScores.FailedMetrics, ", ")
			verdictStyle = bandStyles[BandPoor]
		}
		s.WriteString("QA " + verdictStyle.Render(verdict))
		s.WriteString("\n")
		for _, line := range QAScoreLines(article.QAScores) {
			style := bandStyles[line.Band]
			s.WriteString(fmt.Sprintf("  %-15s %s\n", line.Label, style.Render(fmt.Sprintf("%5.1f", line.Value))))
		}
	}

	s.WriteString("\n")

	width := m.width
	if width <= 0 || width > 100 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		s.WriteString(article.Body)
		return s.String()
	}
	rendered, err := renderer.Render(article.Body)
	if err != nil {
		rendered = article.Body
	}
	s.WriteString(rendered)

	return s.String()
}

func (m Model) renderSubmit() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Submit a URL for processing"))
	s.WriteString("\n")
	s.WriteString("The backend scrapes the page and generates an article with QA scores.\n\n")
	s.WriteString(m.urlInput.View())
	s.WriteString("\n\n")

	if m.submitting {
		s.WriteString(m.spin.View() + " submitting...")
		s.WriteString("\n")
	} else if m.submitErr != nil {
		s.WriteString(errorStyle.Render("Error: " + userMessage(m.submitErr)))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("enter: submit • esc: back"))
	return s.String()
}

func (m Model) renderHistory() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Submitted URLs"))
	s.WriteString("\n")

	if len(m.submissions) == 0 {
		s.WriteString(helpStyle.Render("No submissions yet. Press a in the article list to add one."))
	}

	for i, sub := range m.submissions {
		cursor := "  "
		line := fmt.Sprintf("%-10s %s  %s", sub.Status, sub.SubmittedAt.Format("Jan 2 15:04"), sub.URL)
		if sub.Message != "" {
			line += "\n      " + helpStyle.Render(sub.Message)
		}
		if i == m.historyCursor {
			cursor = cursorStyle.Render("> ")
		}
		s.WriteString(cursor + line + "\n")
	}

	s.WriteString("\n")
	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("enter: watch task / open article • r: refresh • esc: back • q: quit"))
	return s.String()
}

func (m Model) renderHelp() string {
	help := `
EnrichReadr - Keyboard Shortcuts

Article List:
  ↑/↓, j/k     Navigate articles
  enter        Read article
  /            Search (server-side, enter to apply, esc to clear)
  n/p, →/←     Next / previous page
  a            Submit a URL for processing
  t            Show submitted URLs and their tasks
  f            Cycle language filter
  x            Delete selected article
  r            Refresh
  q, ctrl+c    Quit

Article Detail:
  o            Open source URL in browser
  x            Delete article
  esc          Back to list

Tasks:
  enter        Re-watch a processing task, or open its article

General:
  ?            Show/hide this help
`
	return help + "\n" + helpStyle.Render("Press ? or esc to close help")
}

// fetchArticles builds the fetch command for the current list state.
// The seq token ties the eventual response back to this request so
// stale results can be discarded.
func fetchArticles(client *api.Client, s listState, seq int) tea.Cmd {
	page, pageSize := s.page, s.pageSize
	query, language := s.query, s.language
	searching := s.searching()

	return func() tea.Msg {
		var resp *models.ArticleListResponse
		var err error
		if searching {
			resp, err = client.SearchArticles(context.Background(), query, page, pageSize)
		} else {
			resp, err = client.ListArticles(context.Background(), api.ListParams{
				Page:     page,
				PageSize: pageSize,
				Language: language,
			})
		}
		if err != nil {
			return articlesErrMsg{seq: seq, err: err}
		}
		return articlesLoadedMsg{seq: seq, resp: resp}
	}
}

func fetchArticle(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		article, err := client.GetArticle(context.Background(), id)
		if err != nil {
			return articleErrMsg{err}
		}
		return articleLoadedMsg{article}
	}
}

func deleteArticle(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteArticle(context.Background(), id)
		// Already gone counts as deleted.
		if err != nil && !api.IsNotFound(err) {
			return errorMsg{err}
		}
		return articleDeletedMsg{id}
	}
}

func submitURL(client *api.Client, url string) tea.Cmd {
	return func() tea.Msg {
		task, err := client.ProcessURLAsync(context.Background(), url)
		if err != nil {
			return submitErrMsg{err}
		}
		return submitAcceptedMsg{url: strings.TrimSpace(url), task: task}
	}
}

// waitForTask delivers the next snapshot from a watch, or the end of
// the watch.
func waitForTask(watch *api.Watch, taskID string) tea.Cmd {
	return func() tea.Msg {
		task, ok := <-watch.Updates()
		if !ok {
			return watchEndedMsg{watch: watch, taskID: taskID}
		}
		return taskUpdateMsg{watch: watch, task: task}
	}
}

func loadHistory(journal *history.DB) tea.Cmd {
	return func() tea.Msg {
		subs, err := journal.Recent(50)
		if err != nil {
			return errorMsg{err}
		}
		return historyLoadedMsg{subs}
	}
}

func loadPending(journal *history.DB) tea.Cmd {
	return func() tea.Msg {
		subs, err := journal.Pending()
		if err != nil {
			return errorMsg{err}
		}
		return pendingTasksMsg{subs}
	}
}

func checkHealth(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		health, err := client.Health(context.Background())
		return healthMsg{health: health, err: err}
	}
}

// userMessage converts an error into the text shown in the status bar.
func userMessage(err error) string {
	var nf *api.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var te *api.TransportError
	if errors.As(err, &te) {
		if te.Message != "" {
			return te.Message
		}
		return te.Error()
	}
	return err.Error()
}

func nextLanguage(current string) string {
	switch current {
	case "":
		return "en"
	case "en":
		return "ar"
	default:
		return ""
	}
}

// Package app contains the root Bubble Tea model: it feeds key presses to
// the editing session, shows notices and reacts to changes on disk.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/zjrosen/tide/internal/config"
	"github.com/zjrosen/tide/internal/editor"
	"github.com/zjrosen/tide/internal/flags"
	"github.com/zjrosen/tide/internal/keys"
	"github.com/zjrosen/tide/internal/log"
	"github.com/zjrosen/tide/internal/pubsub"
	"github.com/zjrosen/tide/internal/syntax"
	"github.com/zjrosen/tide/internal/ui/editorview"
	"github.com/zjrosen/tide/internal/ui/styles"
	"github.com/zjrosen/tide/internal/watcher"
)

// FileChangedMsg reports that the edited file changed on disk.
type FileChangedMsg watcher.Change

// Options configures the application model.
type Options struct {
	Config config.Config
	Path   string
	Store  editor.Store
	Flags  *flags.Registry
}

// Model is the root application state.
type Model struct {
	session     *editor.Session
	view        editorview.Model
	highlighter *syntax.Highlighter
	keys        keys.KeyMap
	sessionID   string

	// notice is shown on the bottom line until the next key press.
	notice         *editor.Notice
	notices        *pubsub.Broker[editor.Notice]
	noticeCancel   context.CancelFunc
	noticeListener *pubsub.ContinuousListener[editor.Notice]

	watcherHandle *watcher.Watcher
	fileChanged   <-chan watcher.Change
}

// New creates the application model and opens opts.Path.
func New(opts Options) Model {
	sessionID := uuid.NewString()
	log.With("session", sessionID)

	notices := pubsub.NewBroker[editor.Notice]()
	ctx, cancel := context.WithCancel(context.Background())
	// Subscribe before opening so a load failure is not missed.
	listener := pubsub.NewContinuousListener[editor.Notice](ctx, notices)

	session := editor.NewSession(editor.Options{
		Path:            opts.Path,
		ShowLineNumbers: opts.Config.ShowLineNumbers,
		Store:           opts.Store,
		Notices:         notices,
	})
	session.Open()

	highlighter := syntax.NewDefaultHighlighter(opts.Flags.Enabled(flags.FlagSyntaxCache))

	m := Model{
		session:        session,
		view:           editorview.New(styles.NewTheme(opts.Config.Theme), highlighter),
		highlighter:    highlighter,
		keys:           keys.DefaultKeyMap(),
		sessionID:      sessionID,
		notices:        notices,
		noticeCancel:   cancel,
		noticeListener: listener,
	}

	// A load failure is on screen from the first frame; the listener
	// delivers the same notice again shortly after.
	if ev, ok := notices.Latest(); ok {
		m.notice = &ev.Payload
	}

	if opts.Config.WatchFile {
		m.startWatcher(opts.Path)
	}

	log.Info(log.CatUI, "session started", "path", opts.Path, "lines", session.Buffer().LineCount())
	return m
}

func (m *Model) startWatcher(path string) {
	w, err := watcher.New(path)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err)
		return
	}
	ch, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatWatcher, "watcher unavailable", err)
		return
	}
	m.watcherHandle = w
	m.fileChanged = ch
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.noticeListener.Listen()}
	if m.fileChanged != nil {
		cmds = append(cmds, waitForChange(m.fileChanged))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan watcher.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return FileChangedMsg(c)
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.SetSize(msg.Width, msg.Height)
		m.view.ScrollTo(m.session.Buffer().Cursor().Row)
		return m, nil

	case tea.KeyMsg:
		m.notice = nil
		for _, ev := range m.keys.Translate(msg) {
			m.session.Handle(ev)
			if m.session.ExitRequested() {
				break
			}
		}
		m.view.ScrollTo(m.session.Buffer().Cursor().Row)
		if m.session.ExitRequested() {
			log.Info(log.CatUI, "exit requested", "dirty", m.session.Dirty())
			return m, tea.Quit
		}
		return m, nil

	case pubsub.Event[editor.Notice]:
		notice := msg.Payload
		m.notice = &notice
		return m, m.noticeListener.Listen()

	case FileChangedMsg:
		log.Debug(log.CatWatcher, "file changed", "path", msg.Path, "removed", msg.Removed)
		m.session.CheckDisk()
		return m, waitForChange(m.fileChanged)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	return m.view.View(m.session, editorview.Status{
		Notice: m.notice,
		Hint:   m.keys.HelpText(m.session.Mode()),
	})
}

// Session returns the editing session.
func (m Model) Session() *editor.Session {
	return m.session
}

// SessionID returns the id attached to this session's log lines.
func (m Model) SessionID() string {
	return m.sessionID
}

// Close releases the watcher and the notice subscription.
func (m Model) Close() error {
	hits, misses := m.highlighter.Stats()
	log.Debug(log.CatSyntax, "highlighter stats", "hits", hits, "misses", misses)
	log.Debug(log.CatUI, "closing notices", "subscribers", m.notices.SubscriberCount(), "dropped", m.notices.Dropped())
	m.noticeCancel()
	m.notices.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

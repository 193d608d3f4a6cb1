package callout

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"geolabel/internal/geom"
)

// DefaultRetryDelay is how long Add waits before retrying while the surface
// is not ready yet.
const DefaultRetryDelay = 500 * time.Millisecond

var log = logger.GetLogger("callout")

// Host is the map a Manager keeps its labels in sync with.
type Host interface {
	Map
	OnViewChange(fn func()) (cancel func())
}

// Manager owns a collection of labels on one surface and re-lays them out
// on every view change of its host.
type Manager struct {
	host    Host
	surface Surface
	labels  []*Label
	ready   bool

	retryDelay time.Duration
	cancel     func()
}

type ManagerOption func(*Manager)

func WithRetryDelay(d time.Duration) ManagerOption {
	return func(m *Manager) { m.retryDelay = d }
}

func NewManager(host Host, surface Surface, opts ...ManagerOption) *Manager {
	m := &Manager{host: host, surface: surface, retryDelay: DefaultRetryDelay}
	for _, o := range opts {
		o(m)
	}
	m.cancel = host.OnViewChange(m.Redraw)
	return m
}

// retryMsg carries a deferred Add back through the bubbletea update loop.
type retryMsg struct {
	m     *Manager
	items []any
}

// Redraw marks the surface as ready and re-projects every label.
func (m *Manager) Redraw() {
	if !m.ready {
		log.Debugf("surface ready, %d labels", len(m.labels))
	}
	m.ready = true
	for _, l := range m.labels {
		l.UpdatePosition()
	}
}

func (m *Manager) Ready() bool { return m.ready }

// Add attaches labels to the surface. Items that are not *Label, and labels
// already in the collection, are ignored. Until the first Redraw the surface
// is not ready and Add returns a command that retries after the delay.
func (m *Manager) Add(items ...any) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	if !m.ready {
		log.Debugf("surface not ready, retrying %d items in %s", len(items), m.retryDelay)
		return tea.Tick(m.retryDelay, func(time.Time) tea.Msg {
			return retryMsg{m: m, items: items}
		})
	}
	for _, it := range items {
		l, ok := it.(*Label)
		if !ok || l == nil {
			log.Debugf("ignoring %T: not a label", it)
			continue
		}
		if slices.Contains(m.labels, l) {
			continue
		}
		m.labels = append(m.labels, l)
		l.Attach(m.surface, m.host)
	}
	return nil
}

// Update handles the retries scheduled by Add.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	if r, ok := msg.(retryMsg); ok && r.m == m {
		return m.Add(r.items...)
	}
	return nil
}

// Remove detaches l and drops it from the collection.
func (m *Manager) Remove(l *Label) bool {
	if !slices.Contains(m.labels, l) {
		return false
	}
	m.labels = lo.Without(m.labels, l)
	l.Detach()
	return true
}

// Labels returns the collection in insertion order.
func (m *Manager) Labels() []*Label { return slices.Clone(m.labels) }

// States returns the logical state of every label, for the caller to persist.
func (m *Manager) States() []State {
	return lo.Map(m.labels, func(l *Label, _ int) State { return l.State() })
}

// LabelAt returns the topmost label under pixel p.
func (m *Manager) LabelAt(p geom.Point) *Label {
	for i := len(m.labels) - 1; i >= 0; i-- {
		if m.labels[i].Contains(p) {
			return m.labels[i]
		}
	}
	return nil
}

// Close stops following the host and detaches every label.
func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	for _, l := range m.labels {
		l.Detach()
	}
	m.labels = nil
}

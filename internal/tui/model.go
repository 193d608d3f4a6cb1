package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"geolabel/internal/callout"
	"geolabel/internal/canvas"
	"geolabel/internal/config"
	"geolabel/internal/geom"
	"geolabel/internal/mapview"
)

var log = logger.GetLogger("tui")

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	cfg    config.Config

	// Map, drawing surface and the labels on it
	view    *mapview.View
	surface *canvas.Canvas
	labels  *callout.Manager
	seeds   []any

	// Base map
	data    geom.Data
	selPath string

	// File explorer
	cwd   string
	l     list.Model
	items []list.Item

	selected *callout.Label

	// edit mode
	editMode bool
	ta       textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// dragging the empty map
	panning bool
	panFrom geom.Point

	// labels table
	showTable bool
	tbl       table.Model
}

func New(cfg config.Config) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "geolabel ready",
		cfg:         cfg,
		view:        mapview.New(),
		surface:     canvas.NewTerminal(),
	}
	var opts []callout.ManagerOption
	if cfg.RetryDelay > 0 {
		opts = append(opts, callout.WithRetryDelay(cfg.RetryDelay))
	}
	m.labels = callout.NewManager(m.view, m.surface, opts...)
	m.seeds = lo.Map(cfg.Seeds(), func(o callout.Options, _ int) any { return newLabel(o) })

	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Base maps"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Label text. Enter applies; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.ShowLineNumbers = false
	m.ta.SetWidth(40)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if cfg.Basemap != "" {
		m.loadPath(cfg.Basemap)
	}
	return m
}

// NewWithPath preloads a base map at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

// Init attaches the configured labels once the map has a size.
func (m Model) Init() tea.Cmd { return m.labels.Add(m.seeds...) }

func newLabel(o callout.Options) *callout.Label {
	o.OnChange = func(s callout.State) {
		log.Debugf("label moved: lat=%.5f lng=%.5f offset=%v", s.Anchor.Lat, s.Anchor.Lng, s.Offset)
	}
	return callout.New(o)
}

// States returns the logical state of every label on the map.
func (m Model) States() []callout.State { return m.labels.States() }

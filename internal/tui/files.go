package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geolabel/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if slices.Contains(geom.Extensions, ext) {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no base maps in current directory"
	}
}

// loadPath replaces the base map and frames it. Labels keep their
// coordinates and are re-projected by the view change.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		log.Debugf("load %s: %v", p, err)
		return
	}
	m.selPath = p
	m.data = d
	m.view.SetBBox(d.BBox)
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", len(d.Points), len(d.Lines), len(d.Polygons))
}

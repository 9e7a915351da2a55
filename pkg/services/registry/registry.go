// Package registry resolves business lines to their organizational group
// and segment. The registry file is INI-formatted with one section per
// line:
//
//	[LOJA CENTRO]
//	group = RETAIL SOUTH
//	segment = AIR CONDITIONING
//
// Lines missing from the file resolve to the OTHER segment.
package registry

import (
	"github.com/rev-tools/revenue-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// LineRegistry answers group/segment lookups for line names.
type LineRegistry interface {
	Lookup(line string) (group, segment string, ok bool)
	Lines() []string
	// ResolveMeta enriches each goal entry with its registry segment,
	// defaulting to OTHER for unknown lines. Exactly one segment per line.
	ResolveMeta(goals []domain.LineGoal) []domain.LineMetaInfo
}

type lineRegistry struct {
	entries map[string]lineEntry
	order   []string
}

type lineEntry struct {
	group   string
	segment string
}

// NewLineRegistry loads the registry from an INI file.
func NewLineRegistry(path string) (LineRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return newFromINI(cfg), nil
}

// NewStaticRegistry builds a registry from an in-memory line → (group,
// segment) table, mostly for tests and manual wiring.
func NewStaticRegistry(entries map[string][2]string) LineRegistry {
	r := &lineRegistry{entries: make(map[string]lineEntry, len(entries))}
	for line, gs := range entries {
		r.entries[line] = lineEntry{group: gs[0], segment: gs[1]}
		r.order = append(r.order, line)
	}
	return r
}

func newFromINI(cfg *ini.File) *lineRegistry {
	r := &lineRegistry{entries: make(map[string]lineEntry)}
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		r.entries[section.Name()] = lineEntry{
			group:   section.Key("group").String(),
			segment: section.Key("segment").String(),
		}
		r.order = append(r.order, section.Name())
	}
	return r
}

func (r *lineRegistry) Lookup(line string) (string, string, bool) {
	entry, ok := r.entries[line]
	if !ok {
		return "", domain.SegmentOther, false
	}
	segment := entry.segment
	if segment == "" {
		segment = domain.SegmentOther
	}
	return entry.group, segment, true
}

func (r *lineRegistry) Lines() []string {
	return append([]string(nil), r.order...)
}

func (r *lineRegistry) ResolveMeta(goals []domain.LineGoal) []domain.LineMetaInfo {
	meta := make([]domain.LineMetaInfo, 0, len(goals))
	for _, g := range goals {
		group, segment, ok := r.Lookup(g.Line)
		info := domain.LineMetaInfo{LineGoal: g, Segment: segment}
		if ok && g.Group == "" {
			info.Group = group
		}
		if !ok {
			info.Segment = domain.SegmentOther
		}
		meta = append(meta, info)
	}
	return meta
}

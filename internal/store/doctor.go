package store

import (
	"errors"
	"fmt"
	"strings"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level      DoctorIssueLevel `json:"level"`
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	EntityKind string           `json:"entityKind,omitempty"`
	EntityID   string           `json:"entityId,omitempty"`
}

type DoctorReport struct {
	Spaces int           `json:"spaces"`
	Pages  int           `json:"pages"`
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

// DoctorSeed inspects a decoded (not yet validated) seed. Errors are what Validate
// would reject; warnings are data the store accepts but no tree will show as intended.
func DoctorSeed(sd Seed) DoctorReport {
	var issues []DoctorIssue
	add := func(level DoctorIssueLevel, code, kind, id, format string, args ...any) {
		issues = append(issues, DoctorIssue{
			Level:      level,
			Code:       code,
			Message:    fmt.Sprintf(format, args...),
			EntityKind: kind,
			EntityID:   id,
		})
	}

	spaces := map[string]bool{}
	for i, sp := range sd.Spaces {
		id := strings.TrimSpace(sp.ID)
		switch {
		case id == "":
			add(DoctorIssueLevelError, "missing_id", "space", "", "space #%d has no id", i+1)
		case spaces[id]:
			add(DoctorIssueLevelError, "duplicate_id", "space", id, "space id %s is used more than once", id)
		}
		spaces[id] = true
		if strings.TrimSpace(sp.Name) == "" {
			add(DoctorIssueLevelWarn, "empty_name", "space", id, "space %s has no name", id)
		}
	}

	known := map[string]bool{}
	parentOf := map[string]string{}
	spaceOf := map[string]string{}
	for i, p := range sd.Pages {
		id := strings.TrimSpace(p.ID)
		switch {
		case id == "":
			add(DoctorIssueLevelError, "missing_id", "page", "", "page #%d has no id", i+1)
			continue
		case known[id]:
			add(DoctorIssueLevelError, "duplicate_id", "page", id, "page id %s is used more than once", id)
			continue
		}
		known[id] = true
		spaceOf[id] = p.SpaceID
		if p.ParentID != nil && strings.TrimSpace(*p.ParentID) != "" {
			parentOf[id] = strings.TrimSpace(*p.ParentID)
		}
		if !spaces[p.SpaceID] {
			add(DoctorIssueLevelWarn, "unknown_space", "page", id, "page %s belongs to unknown space %q", id, p.SpaceID)
		}
		if strings.TrimSpace(p.Title) == "" {
			add(DoctorIssueLevelWarn, "empty_title", "page", id, "page %s has no title", id)
		}
	}

	for _, p := range sd.Pages {
		id := strings.TrimSpace(p.ID)
		parent, ok := parentOf[id]
		if id == "" || !ok {
			continue
		}
		switch {
		case parent == id:
			add(DoctorIssueLevelError, "self_parent", "page", id, "page %s is its own parent", id)
		case !known[parent]:
			add(DoctorIssueLevelWarn, "unknown_parent", "page", id, "page %s has unknown parent %s", id, parent)
		case spaceOf[parent] != spaceOf[id]:
			add(DoctorIssueLevelWarn, "cross_space_parent", "page", id, "page %s is in %s but its parent %s is in %s", id, spaceOf[id], parent, spaceOf[parent])
		}
	}

	// A parent chain that loops never reaches a root, so the tree drops it.
	reported := map[string]bool{}
	for _, p := range sd.Pages {
		start := strings.TrimSpace(p.ID)
		seen := map[string]bool{start: true}
		for cur := parentOf[start]; cur != "" && cur != start; cur = parentOf[cur] {
			if seen[cur] {
				break
			}
			seen[cur] = true
			if parentOf[cur] == start && !reported[start] {
				reported[start] = true
				add(DoctorIssueLevelError, "parent_cycle", "page", start, "page %s is part of a parent cycle", start)
			}
		}
	}

	return DoctorReport{Spaces: len(sd.Spaces), Pages: len(sd.Pages), Issues: issuesOrEmpty(issues)}
}

func issuesOrEmpty(xs []DoctorIssue) []DoctorIssue {
	if xs == nil {
		return []DoctorIssue{}
	}
	return xs
}

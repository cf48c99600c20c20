package store

import "wikispace/internal/model"

func (s *Store) childrenLocked(parentID string) []model.Page {
	ids := s.idxChildrenByParent[parentID]
	out := make([]model.Page, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.findPageLocked(id); ok {
			out = append(out, clonePage(*p))
		}
	}
	return out
}

// subtreeLocked returns id followed by every transitive descendant, depth-first.
// Uses an explicit stack and a visited set so a malformed parent cycle cannot loop.
func (s *Store) subtreeLocked(id string) []string {
	out := []string{}
	visited := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		out = append(out, cur)

		kids := s.idxChildrenByParent[cur]
		// Push in reverse so children pop in collection order.
		for i := len(kids) - 1; i >= 0; i-- {
			if !visited[kids[i]] {
				stack = append(stack, kids[i])
			}
		}
	}
	return out
}

// Descendants returns every page below id (not including id itself).
func (s *Store) Descendants(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.pageIdx[id]; !ok {
		return []string{}
	}
	return s.subtreeLocked(id)[1:]
}

// Ancestors returns the chain of pages above id, root first. Used for breadcrumbs.
func (s *Store) Ancestors(id string) []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chain []model.Page
	seen := map[string]bool{id: true}
	p, ok := s.findPageLocked(id)
	for ok && p.ParentID != nil {
		pid := *p.ParentID
		if seen[pid] {
			break
		}
		seen[pid] = true
		p, ok = s.findPageLocked(pid)
		if ok {
			chain = append(chain, clonePage(*p))
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Tree builds the page forest for a space. Node expansion mirrors the UI state.
func (s *Store) Tree(spaceID string) []*model.TreeNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var roots []*model.TreeNode
	visited := map[string]bool{}
	var stack []*model.TreeNode
	for _, p := range s.pages {
		if p.SpaceID != spaceID || p.ParentID != nil {
			continue
		}
		n := &model.TreeNode{Page: clonePage(p), Expanded: s.ui.expanded[p.ID], Children: []*model.TreeNode{}}
		roots = append(roots, n)
		visited[p.ID] = true
		stack = append(stack, n)
	}

	for len(stack) > 0 {
		parent := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, kid := range s.childrenLocked(parent.Page.ID) {
			if visited[kid.ID] {
				continue
			}
			visited[kid.ID] = true
			n := &model.TreeNode{Page: kid, Expanded: s.ui.expanded[kid.ID], Depth: parent.Depth + 1, Children: []*model.TreeNode{}}
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		}
	}
	if roots == nil {
		roots = []*model.TreeNode{}
	}
	return roots
}

// VisibleRows flattens a forest into display order, descending only into expanded
// nodes. The sidebar renders exactly these rows.
func VisibleRows(forest []*model.TreeNode) []*model.TreeNode {
	var out []*model.TreeNode
	stack := make([]*model.TreeNode, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, forest[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		if !n.Expanded {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

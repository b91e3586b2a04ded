package board

import (
	"slices"
)

// traversable lists the node kinds each faction may step onto.
var traversable = map[Faction]map[Kind]bool{
	Pigeon: {
		BalconyEntry: true, BalconySlot: true, Wire: true,
		Park: true, Dumpster: true, Event: true,
	},
	Human: {
		BalconyEntry: true, BalconySlot: true, Road: true,
		Van: true, Elevator: true, Event: true,
	},
}

// CanTraverse reports whether the faction may stand on nodes of kind k.
func CanTraverse(f Faction, k Kind) bool {
	return traversable[f][k]
}

// CanEnter applies the kind table and structure blocking. Spikes keep pigeons
// out of the node itself; humans walk over them.
func CanEnter(n *Node, f Faction) bool {
	if !CanTraverse(f, n.Kind) {
		return false
	}
	if f == Pigeon && n.Structure != nil && n.Structure.Kind == Spikes {
		return false
	}
	return true
}

// ReachableSet returns the nodes exactly `budget` steps from start, sorted.
// Walking back and forth is allowed, so the start itself can reappear.
func ReachableSet(b *Board, startID string, budget int, f Faction) []string {
	if _, ok := b.Nodes[startID]; !ok {
		return nil
	}
	frontier := map[string]struct{}{startID: {}}
	for i := 0; i < budget && len(frontier) > 0; i++ {
		next := make(map[string]struct{})
		for id := range frontier {
			for _, adjID := range b.Nodes[id].Edges {
				adj := b.Nodes[adjID]
				if adj != nil && CanEnter(adj, f) {
					next[adjID] = struct{}{}
				}
			}
		}
		frontier = next
	}
	var ids []string
	for id := range frontier {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ShortestPath is a plain BFS over the same faction filtered edges. It returns
// start..end inclusive, or nil when end cannot be reached.
func ShortestPath(b *Board, startID, endID string, f Faction) []string {
	if b.Nodes[startID] == nil || b.Nodes[endID] == nil {
		return nil
	}
	if startID == endID {
		return []string{startID}
	}

	parent := map[string]string{startID: ""}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adjID := range b.Nodes[current].Edges {
			if _, seen := parent[adjID]; seen {
				continue
			}
			adj := b.Nodes[adjID]
			if adj == nil || !CanEnter(adj, f) {
				continue
			}
			parent[adjID] = current
			if adjID == endID {
				return unwind(parent, endID)
			}
			queue = append(queue, adjID)
		}
	}
	return nil
}

func unwind(parent map[string]string, endID string) []string {
	var path []string
	for id := endID; id != ""; id = parent[id] {
		path = append(path, id)
	}
	slices.Reverse(path)
	return path
}

// Package txgraph builds the directed transaction multigraph the detectors traverse: a
// single struct holds every node and edge, builds them in one pass over the input, and
// exposes read-only adjacency lookups. There is no locking here — a Graph is built and
// analyzed on a single logical thread of execution.
package txgraph

import "github.com/mulewatch/forensics/internal/domain"

// Graph is a directed multigraph over accounts, built once from a transaction slice and
// immutable in topology afterward. Only the mutable analysis fields on each Account
// change after Build returns.
type Graph struct {
	nodes map[string]*domain.Account
	edges map[string]*domain.Edge // keyed by "source|target"

	// forward[a] is the set of direct successors of a; reverse[a] is the set of direct
	// predecessors. Sets, not multisets: repeated transactions between the same ordered
	// pair contribute exactly one adjacency entry.
	forward map[string]map[string]struct{}
	reverse map[string]map[string]struct{}

	// order preserves first-seen account order, for deterministic iteration where the
	// detectors need to walk "every node".
	order []string
}

func edgeKey(source, target string) string {
	return source + "|" + target
}

// Build performs a single pass over transactions: every transaction's endpoints are
// ensured to exist, aggregates are updated, the transaction is appended to both
// endpoint node lists and to its edge's list, and forward/reverse adjacency sets are
// updated. Complexity is O(V + E_distinct + T).
func Build(transactions []domain.Transaction) *Graph {
	g := &Graph{
		nodes:   make(map[string]*domain.Account),
		edges:   make(map[string]*domain.Edge),
		forward: make(map[string]map[string]struct{}),
		reverse: make(map[string]map[string]struct{}),
	}

	for _, tx := range transactions {
		sender := g.ensureNode(tx.SenderID)
		receiver := g.ensureNode(tx.ReceiverID)

		sender.OutDegree++
		sender.TotalOut += tx.Amount
		sender.Transactions = append(sender.Transactions, tx)

		if tx.ReceiverID != tx.SenderID {
			receiver.InDegree++
			receiver.TotalIn += tx.Amount
			receiver.Transactions = append(receiver.Transactions, tx)
		} else {
			// Self-loop (sender == receiver): one transaction affecting one account;
			// both in/out aggregates are credited to the same account so total degree
			// reflects both legs, but the transaction is recorded on the node's list
			// only once.
			sender.InDegree++
			sender.TotalIn += tx.Amount
		}

		key := edgeKey(tx.SenderID, tx.ReceiverID)
		edge, ok := g.edges[key]
		if !ok {
			edge = &domain.Edge{Source: tx.SenderID, Target: tx.ReceiverID}
			g.edges[key] = edge
			g.addAdjacency(tx.SenderID, tx.ReceiverID)
		}
		edge.Append(tx)
	}

	return g
}

func (g *Graph) ensureNode(id string) *domain.Account {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &domain.Account{ID: id}
	g.nodes[id] = n
	g.order = append(g.order, id)
	g.forward[id] = make(map[string]struct{})
	g.reverse[id] = make(map[string]struct{})
	return n
}

func (g *Graph) addAdjacency(source, target string) {
	g.forward[source][target] = struct{}{}
	g.reverse[target][source] = struct{}{}
}

// Node returns the account with the given id, or nil if it was never observed.
func (g *Graph) Node(id string) *domain.Account {
	return g.nodes[id]
}

// Nodes returns all accounts in first-seen order.
func (g *Graph) Nodes() []*domain.Account {
	out := make([]*domain.Account, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeOrder returns account ids in first-seen order.
func (g *Graph) NodeOrder() []string {
	return append([]string(nil), g.order...)
}

// NodeCount returns the number of distinct accounts observed.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Edge returns the edge for the ordered (source, target) pair, or nil if none exists.
func (g *Graph) Edge(source, target string) *domain.Edge {
	return g.edges[edgeKey(source, target)]
}

// Successors returns the direct successor ids of id (accounts id has sent to), in no
// particular order.
func (g *Graph) Successors(id string) []string {
	return setKeys(g.forward[id])
}

// Predecessors returns the direct predecessor ids of id (accounts that sent to id), in
// no particular order.
func (g *Graph) Predecessors(id string) []string {
	return setKeys(g.reverse[id])
}

func setKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

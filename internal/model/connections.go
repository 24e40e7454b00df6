package model

// Connection node types
const (
	NodeRepresentative = "representative"
	NodeCommittee      = "committee"
	NodeBill           = "bill"
	NodePolicyArea     = "policyArea"
)

// ConnectionGraph links a representative to the entities around them
type ConnectionGraph struct {
	Nodes []ConnectionNode `json:"nodes"`
	Edges []ConnectionEdge `json:"edges"`
}

// ConnectionNode is one vertex of a ConnectionGraph
type ConnectionNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// ConnectionEdge is a labelled link between two nodes
type ConnectionEdge struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	Relationship string `json:"relationship"`
}

package graph

import "time"

// ============================================================================
// Graph Types
// ============================================================================

// RelType identifies a typed edge between two User nodes.
//
// All relationship types are directed except RelFriendsWith: friendship is a
// symmetric relation stored as a single edge and matched without a direction.
// IsConnected, Disconnect, EdgesOf and CountEdges honor that asymmetry; see
// the per-method contracts.
type RelType string

const (
	// RelFriendsWith is the symmetric friendship edge
	RelFriendsWith RelType = "FRIENDS_WITH"
	// RelFriendRequest is a pending friendship request, sender -> recipient
	RelFriendRequest RelType = "FRIEND_REQUEST"
	// RelFollows is a follow edge, follower -> followee
	RelFollows RelType = "FOLLOWS"
	// RelBans is a ban edge, banner -> bannee
	RelBans RelType = "BANS"
)

// Symmetric reports whether edges of this type are matched without direction
func (t RelType) Symmetric() bool {
	return t == RelFriendsWith
}

// Direction selects which edges of a node EdgesOf and CountEdges consider
type Direction int

const (
	// DirectionOutgoing matches edges leaving the node
	DirectionOutgoing Direction = iota
	// DirectionIncoming matches edges arriving at the node
	DirectionIncoming
	// DirectionAny matches edges regardless of direction
	DirectionAny
)

// User represents a user node in the graph
type User struct {
	UserID     int64     `json:"user_id"`
	FacebookID int64     `json:"facebook_id,omitempty"`
	Created    time.Time `json:"created"`
}

// Edge is one typed edge seen from a node: the user id at the far end plus
// the edge's property map
type Edge struct {
	PeerID int64          `json:"peer_id"`
	Props  map[string]any `json:"props"`
}

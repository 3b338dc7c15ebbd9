package social

import (
	"time"

	"friendgraph/backend/internal/graph"
)

// FriendshipRequest is a pending request as seen by callers
type FriendshipRequest struct {
	ID          string     `json:"id"`
	SenderID    int64      `json:"sender_id"`
	RecipientID int64      `json:"recipient_id"`
	Message     string     `json:"message,omitempty"`
	Created     time.Time  `json:"created"`
	Viewed      *time.Time `json:"viewed,omitempty"`
}

// Unread reports whether the recipient has not viewed the request yet
func (r FriendshipRequest) Unread() bool {
	return r.Viewed == nil
}

// requestFromEdge builds a request record from a FRIEND_REQUEST edge.
// sender/recipient are assigned by the caller since an edge only knows its
// peer, not which side of it we traversed from.
func requestFromEdge(senderID, recipientID int64, edge graph.Edge) FriendshipRequest {
	req := FriendshipRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	}
	if id, ok := edge.Props["id"].(string); ok {
		req.ID = id
	}
	if msg, ok := edge.Props["message"].(string); ok {
		req.Message = msg
	}
	if created, ok := edge.Props["created"].(time.Time); ok {
		req.Created = created
	}
	if viewed, ok := edge.Props["viewed"].(time.Time); ok {
		req.Viewed = &viewed
	}
	return req
}

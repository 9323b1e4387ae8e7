package model

// RequestRole is the action carried by a friend or join request
type RequestRole string

const (
	RoleRequest RequestRole = "request" // Ask to become friends
	RolePermit  RequestRole = "permit"  // Accept a pending request
	RoleDismiss RequestRole = "dismiss" // Reject a pending request
)

// IsValid returns true if the role is a known request role
func (r RequestRole) IsValid() bool {
	switch r {
	case RoleRequest, RolePermit, RoleDismiss:
		return true
	default:
		return false
	}
}

// IsDecision returns true for roles that answer a pending request
func (r RequestRole) IsDecision() bool {
	return r == RolePermit || r == RoleDismiss
}

// FriendRequest is the body of POST /friends
type FriendRequest struct {
	RequesteeName string      `json:"requesteeName"`
	RequestRole   RequestRole `json:"requestRole"`
}

// FriendRequests is the body of GET /friends/requests
type FriendRequests struct {
	RequestFriendList []string `json:"requestFriendList"`
}

// Friends is the body of GET /friends
type Friends struct {
	FriendList []string `json:"friendList"`
}

// FriendState is the client-side state of the friend slice
type FriendState struct {
	FriendList        []string `json:"friendList"`
	RequestFriendList []string `json:"requestFriendList"`
}

// Normalize returns a deep copy of s with nil lists replaced by empty slices
func (s FriendState) Normalize() FriendState {
	s.FriendList = append(make([]string, 0, len(s.FriendList)), s.FriendList...)
	s.RequestFriendList = append(make([]string, 0, len(s.RequestFriendList)), s.RequestFriendList...)
	return s
}

// FriendshipStatus is the state of a stored friend relation
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship links a requester to a requestee by nickname. Once accepted the
// relation is symmetric.
type Friendship struct {
	Requester string           `json:"requester"`
	Requestee string           `json:"requestee"`
	Status    FriendshipStatus `json:"status"`
}

// Other returns the side of the relation that is not nickName
func (f Friendship) Other(nickName string) string {
	if f.Requester == nickName {
		return f.Requestee
	}
	return f.Requester
}

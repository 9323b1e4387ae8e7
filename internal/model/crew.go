package model

// UserDto is the public view of a user inside crew and friend payloads
type UserDto struct {
	ID       int64  `json:"id"`
	NickName string `json:"nickName"`
	Email    string `json:"email,omitempty"`
}

// Crew is a running club with a leader, a region, members and pending join requesters
type Crew struct {
	ID           int64     `json:"id"`
	CrewLeaderID int64     `json:"crewLeaderId"`
	CrewRegion   string    `json:"crewRegion"`
	OpenChat     string    `json:"openChat"`
	CrewName     string    `json:"crewName"`
	Explanation  string    `json:"explanation"`
	UserDtos     []UserDto `json:"userDtos"`
	RequestUsers []UserDto `json:"requestUsers"`
}

// Normalize returns a deep copy of c with nil collections replaced by empty slices
func (c Crew) Normalize() Crew {
	c.UserDtos = append(make([]UserDto, 0, len(c.UserDtos)), c.UserDtos...)
	c.RequestUsers = append(make([]UserDto, 0, len(c.RequestUsers)), c.RequestUsers...)
	return c
}

// HasMember returns true if nickName is a crew member
func (c Crew) HasMember(nickName string) bool {
	for _, u := range c.UserDtos {
		if u.NickName == nickName {
			return true
		}
	}
	return false
}

// HasRequest returns true if nickName has a pending join request
func (c Crew) HasRequest(nickName string) bool {
	for _, u := range c.RequestUsers {
		if u.NickName == nickName {
			return true
		}
	}
	return false
}

// CrewSummary is one entry of the crew browser listing
type CrewSummary struct {
	ID           int64  `json:"id"`
	CrewName     string `json:"crewName"`
	CrewRegion   string `json:"crewRegion"`
	CrewLeaderID int64  `json:"crewLeaderId"`
	MemberCount  int    `json:"memberCount"`
}

// Summary returns the listing view of the crew
func (c Crew) Summary() CrewSummary {
	return CrewSummary{
		ID:           c.ID,
		CrewName:     c.CrewName,
		CrewRegion:   c.CrewRegion,
		CrewLeaderID: c.CrewLeaderID,
		MemberCount:  len(c.UserDtos),
	}
}

// CrewList is the body of GET /crews
type CrewList struct {
	Crews []CrewSummary `json:"crews"`
}

// CreateCrewRequest is the body of POST /crews
type CreateCrewRequest struct {
	CrewName    string `json:"crewName"`
	CrewRegion  string `json:"crewRegion"`
	OpenChat    string `json:"openChat"`
	Explanation string `json:"explanation"`
}

// ManageJoinRequest is the body of PUT /crews/{id}/requests
type ManageJoinRequest struct {
	NickName    string      `json:"nickName"`
	RequestRole RequestRole `json:"requestRole"`
}

// Business constraints
const (
	MaxCrewNameLength = 50
	MaxCrewsPageSize  = 100
)

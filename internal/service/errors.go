package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here so handlers can map
// them in one place.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrNickNameTaken      = errors.New("nickname already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNickNameRequired   = errors.New("nickname is required")
	ErrNickNameTooLong    = errors.New("nickname exceeds maximum length")
)

// ===== Board Errors =====
var (
	ErrBoardNotFound      = errors.New("board not found")
	ErrNotBoardAuthor     = errors.New("only the author can change this board")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrInvalidMeetingTime = errors.New("meetingTime must be an RFC 3339 timestamp")
	ErrInvalidCategory    = errors.New("unknown board category")
)

// ===== Crew Errors =====
var (
	ErrCrewNotFound        = errors.New("crew not found")
	ErrCrewNameRequired    = errors.New("crew name is required")
	ErrCrewNameTooLong     = errors.New("crew name exceeds maximum length")
	ErrCrewNameExists      = errors.New("a crew with this name already exists")
	ErrNotCrewLeader       = errors.New("only the crew leader can do this")
	ErrAlreadyCrewMember   = errors.New("already a member of this crew")
	ErrAlreadyRequested    = errors.New("request already sent")
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrInvalidRequestRole  = errors.New("invalid request role")
)

// ===== Friend Errors =====
var (
	ErrCannotFriendSelf      = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends        = errors.New("already friends")
	ErrFriendRequestNotFound = errors.New("friend request not found")
)

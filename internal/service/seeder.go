package service

import (
	"context"
	"fmt"

	"github.com/forgo/runningmate/internal/model"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// SamplePassword is the password of every seeded account
const SamplePassword = "runningmate1"

// sampleCrewName names the seeded crew
const sampleCrewName = "한강 러닝 크루"

// SeedResult counts what a seeding run created
type SeedResult struct {
	Users   int `json:"users"`
	Boards  int `json:"boards"`
	Crews   int `json:"crews"`
	Friends int `json:"friends"`
}

// SeederService fills empty stores with the bundled sample data
type SeederService struct {
	users      UserRepository
	boards     BoardRepository
	crews      CrewRepository
	friends    FriendRepository
	bcryptCost int
}

// SeederConfig holds the repositories the seeder writes to
type SeederConfig struct {
	Users      UserRepository
	Boards     BoardRepository
	Crews      CrewRepository
	Friends    FriendRepository
	BcryptCost int
}

// NewSeederService creates a new seeder service
func NewSeederService(cfg SeederConfig) *SeederService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &SeederService{
		users:      cfg.Users,
		boards:     cfg.Boards,
		crews:      cfg.Crews,
		friends:    cfg.Friends,
		bcryptCost: cost,
	}
}

// SampleEmail returns the seeded email of a sample author
func SampleEmail(nickName string) string {
	return nickName + "@runningmate.dev"
}

// Seed creates one account per sample author, the sample board posts, a crew
// with a pending join request and a few friend relations. Records that already
// exist are left alone, so Seed can run on every start.
func (s *SeederService) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	notices := model.SampleNotices()

	hash, err := bcrypt.GenerateFromPassword([]byte(SamplePassword), s.bcryptCost)
	if err != nil {
		return result, err
	}

	authors := make(map[string]*model.User)
	for _, nick := range lo.Uniq(lo.Map(notices, func(n model.NoticeSummary, _ int) string { return n.Author })) {
		user, err := s.users.GetByNickName(ctx, nick)
		if err != nil {
			return result, err
		}
		if user == nil {
			user = &model.User{Email: SampleEmail(nick), NickName: nick, Hash: string(hash)}
			if err := s.users.Create(ctx, user); err != nil {
				return result, fmt.Errorf("seed user %s: %w", nick, err)
			}
			result.Users++
		}
		authors[nick] = user
	}

	for _, n := range notices {
		existing, err := s.boards.GetByID(ctx, n.ID)
		if err != nil {
			return result, err
		}
		if existing != nil {
			continue
		}
		board := &model.Board{
			NoticeSummary: n,
			BoardCategory: model.BoardCategoryRun,
			AuthorID:      authors[n.Author].ID,
		}
		if err := s.boards.Create(ctx, board); err != nil {
			return result, fmt.Errorf("seed board %d: %w", n.ID, err)
		}
		result.Boards++
	}

	leader, requester := authors["runner01"], authors["runner02"]
	crew, err := s.crews.GetByName(ctx, sampleCrewName)
	if err != nil {
		return result, err
	}
	if crew == nil {
		crew = &model.Crew{
			CrewLeaderID: leader.ID,
			CrewRegion:   "서울특별시",
			OpenChat:     "https://open.kakao.com/o/crew1",
			CrewName:     sampleCrewName,
			Explanation:  "매주 화, 목 저녁 한강에서 달립니다.",
			UserDtos:     []model.UserDto{{ID: leader.ID, NickName: leader.NickName}},
			RequestUsers: []model.UserDto{},
		}
		if err := s.crews.Create(ctx, crew); err != nil {
			return result, fmt.Errorf("seed crew: %w", err)
		}
		if err := s.crews.AddRequest(ctx, crew.ID, model.UserDto{ID: requester.ID, NickName: requester.NickName}); err != nil {
			return result, err
		}
		result.Crews++
	}

	relations := []model.Friendship{
		{Requester: "runner02", Requestee: "runner01", Status: model.FriendshipPending},
		{Requester: "runner03", Requestee: "runner01", Status: model.FriendshipPending},
		{Requester: "runner01", Requestee: "runner04", Status: model.FriendshipAccepted},
	}
	for _, f := range relations {
		existing, err := s.friends.Find(ctx, f.Requester, f.Requestee)
		if err != nil {
			return result, err
		}
		if existing != nil {
			continue
		}
		if err := s.friends.Create(ctx, f); err != nil {
			return result, fmt.Errorf("seed friendship: %w", err)
		}
		result.Friends++
	}

	return result, nil
}

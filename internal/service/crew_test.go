package service

import (
	"context"
	"errors"
	"testing"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/repository"
)

var (
	leader = Caller{ID: 1, NickName: "lead"}
	kim    = Caller{ID: 2, NickName: "kim"}
	lee    = Caller{ID: 3, NickName: "lee"}
)

func newCrewWithRequests(t *testing.T, requesters ...Caller) (*CrewService, int64) {
	t.Helper()
	svc := NewCrewService(repository.NewMemoryCrewRepository())
	ctx := context.Background()

	crew, err := svc.Create(ctx, leader, model.CreateCrewRequest{CrewName: "dawn runners", CrewRegion: "서울특별시"})
	if err != nil {
		t.Fatalf("create crew: %v", err)
	}
	for _, r := range requesters {
		if err := svc.RequestJoin(ctx, r, crew.ID); err != nil {
			t.Fatalf("request join: %v", err)
		}
	}
	return svc, crew.ID
}

func TestCrewCreate_CreatorLeadsAndIsFirstMember(t *testing.T) {
	t.Parallel()
	svc, id := newCrewWithRequests(t)

	crew, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if crew.CrewLeaderID != leader.ID {
		t.Errorf("expected leader %d, got %d", leader.ID, crew.CrewLeaderID)
	}
	if len(crew.UserDtos) != 1 || crew.UserDtos[0].NickName != "lead" {
		t.Errorf("unexpected members: %v", crew.UserDtos)
	}
	if crew.RequestUsers == nil {
		t.Error("request users must be an empty list")
	}
}

func TestCrewCreate_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newCrewWithRequests(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, kim, model.CreateCrewRequest{CrewName: " "}); !errors.Is(err, ErrCrewNameRequired) {
		t.Errorf("expected ErrCrewNameRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, kim, model.CreateCrewRequest{CrewName: "dawn runners"}); !errors.Is(err, ErrCrewNameExists) {
		t.Errorf("expected ErrCrewNameExists, got %v", err)
	}
	long := make([]rune, model.MaxCrewNameLength+1)
	for i := range long {
		long[i] = '런'
	}
	if _, err := svc.Create(ctx, kim, model.CreateCrewRequest{CrewName: string(long)}); !errors.Is(err, ErrCrewNameTooLong) {
		t.Errorf("expected ErrCrewNameTooLong, got %v", err)
	}
}

func TestCrewRequestJoin_Duplicates(t *testing.T) {
	t.Parallel()
	svc, id := newCrewWithRequests(t, kim)
	ctx := context.Background()

	if err := svc.RequestJoin(ctx, kim, id); !errors.Is(err, ErrAlreadyRequested) {
		t.Errorf("expected ErrAlreadyRequested, got %v", err)
	}
	if err := svc.RequestJoin(ctx, leader, id); !errors.Is(err, ErrAlreadyCrewMember) {
		t.Errorf("expected ErrAlreadyCrewMember, got %v", err)
	}
	if err := svc.RequestJoin(ctx, kim, 99); !errors.Is(err, ErrCrewNotFound) {
		t.Errorf("expected ErrCrewNotFound, got %v", err)
	}
}

func TestCrewManageRequest_PermitAndDismiss(t *testing.T) {
	t.Parallel()
	svc, id := newCrewWithRequests(t, kim, lee)
	ctx := context.Background()

	if err := svc.ManageRequest(ctx, leader, id, model.ManageJoinRequest{NickName: "kim", RequestRole: model.RolePermit}); err != nil {
		t.Fatalf("permit: %v", err)
	}
	if err := svc.ManageRequest(ctx, leader, id, model.ManageJoinRequest{NickName: "lee", RequestRole: model.RoleDismiss}); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	crew, _ := svc.Get(ctx, id)
	if !crew.HasMember("kim") || crew.HasMember("lee") {
		t.Errorf("unexpected members: %v", crew.UserDtos)
	}
	if len(crew.RequestUsers) != 0 {
		t.Errorf("expected no pending requests, got %v", crew.RequestUsers)
	}
}

func TestCrewManageRequest_Errors(t *testing.T) {
	t.Parallel()
	svc, id := newCrewWithRequests(t, kim)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller Caller
		req    model.ManageJoinRequest
		want   error
	}{
		{"not leader", kim, model.ManageJoinRequest{NickName: "kim", RequestRole: model.RolePermit}, ErrNotCrewLeader},
		{"no such request", leader, model.ManageJoinRequest{NickName: "lee", RequestRole: model.RolePermit}, ErrJoinRequestNotFound},
		{"not a decision", leader, model.ManageJoinRequest{NickName: "kim", RequestRole: model.RoleRequest}, ErrInvalidRequestRole},
	}
	for _, tt := range tests {
		if err := svc.ManageRequest(ctx, tt.caller, id, tt.req); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestCrewList_Summaries(t *testing.T) {
	t.Parallel()
	svc, _ := newCrewWithRequests(t)
	ctx := context.Background()
	_, _ = svc.Create(ctx, kim, model.CreateCrewRequest{CrewName: "night owls"})

	list, err := svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].CrewName != "dawn runners" || list[1].MemberCount != 1 {
		t.Errorf("unexpected list: %+v", list)
	}

	list, _ = svc.List(ctx, 1, 5)
	if len(list) != 1 || list[0].CrewName != "night owls" {
		t.Errorf("unexpected window: %+v", list)
	}
}

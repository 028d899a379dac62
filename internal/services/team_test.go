package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"whenworks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTeamRepo is an in-memory TeamRepository for tests.
type fakeTeamRepo struct {
	byPIN   map[string]*domain.Team
	members map[string]map[string]bool // pin -> userID set
	err     error                      // if set, every call returns this error
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		byPIN:   make(map[string]*domain.Team),
		members: make(map[string]map[string]bool),
	}
}

func (f *fakeTeamRepo) add(team *domain.Team, memberIDs ...string) {
	f.byPIN[team.PIN] = team
	set := make(map[string]bool)
	for _, id := range memberIDs {
		set[id] = true
	}
	f.members[team.PIN] = set
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	if f.err != nil {
		return f.err
	}
	f.byPIN[team.PIN] = team
	f.members[team.PIN] = make(map[string]bool)
	return nil
}

func (f *fakeTeamRepo) GetByPIN(ctx context.Context, pin string) (*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.byPIN[pin]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTeamRepo) AddMember(ctx context.Context, pin, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.members[pin][userID] = true
	return nil
}

func (f *fakeTeamRepo) ListMembers(ctx context.Context, pin string) ([]*domain.TeamMember, error) {
	var out []*domain.TeamMember
	for id := range f.members[pin] {
		out = append(out, &domain.TeamMember{TeamPIN: pin, UserID: id})
	}
	return out, nil
}

func (f *fakeTeamRepo) IsMember(ctx context.Context, pin, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.members[pin][userID], nil
}

func (f *fakeTeamRepo) ListPINsByUserID(ctx context.Context, userID string) ([]string, error) {
	var out []string
	for pin, set := range f.members {
		if set[userID] {
			out = append(out, pin)
		}
	}
	return out, nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sent    []*domain.TeamInviteEmailData
	failFor map[string]bool // emails that fail to send
}

func (f *fakeEmailService) SendTeamInvite(ctx context.Context, data *domain.TeamInviteEmailData) error {
	if f.failFor[data.Email] {
		return errors.New("send failed")
	}
	f.sent = append(f.sent, data)
	return nil
}

func TestTeamService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTeamRepo()
	svc := NewTeamService(repo, newFakeUserRepo(), nil)

	team, err := svc.Create(ctx, "Study Group", "owner-1")
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), team.PIN)
	assert.Equal(t, "Study Group", team.Name)
	assert.Equal(t, "owner-1", team.OwnerID)

	// Creating a team makes the owner a member.
	member, err := repo.IsMember(ctx, team.PIN, "owner-1")
	require.NoError(t, err)
	assert.True(t, member)
}

func TestTeamService_Create_EmptyName(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), newFakeUserRepo(), nil)

	_, err := svc.Create(context.Background(), "   ", "owner-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTeamService_Join(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		pin     string
		userID  string
		setup   func(*fakeTeamRepo)
		wantErr error
	}{
		{
			name:   "success",
			pin:    "123456",
			userID: "u2",
			setup: func(f *fakeTeamRepo) {
				f.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1")
			},
		},
		{
			name:   "pin is trimmed",
			pin:    " 123456 ",
			userID: "u2",
			setup: func(f *fakeTeamRepo) {
				f.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1")
			},
		},
		{
			name:    "unknown pin",
			pin:     "000000",
			userID:  "u2",
			setup:   func(f *fakeTeamRepo) {},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "already a member",
			pin:    "123456",
			userID: "u1",
			setup: func(f *fakeTeamRepo) {
				f.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1")
			},
			wantErr: domain.ErrAlreadyMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTeamRepo()
			tt.setup(repo)
			svc := NewTeamService(repo, newFakeUserRepo(), nil)

			team, err := svc.Join(ctx, tt.pin, tt.userID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, team)
			member, err := repo.IsMember(ctx, team.PIN, tt.userID)
			require.NoError(t, err)
			assert.True(t, member)
		})
	}
}

func TestTeamService_Members_ForbiddenForNonMember(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTeamRepo()
	repo.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1")
	svc := NewTeamService(repo, newFakeUserRepo(), nil)

	_, err := svc.Members(ctx, "123456", "outsider")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	members, err := svc.Members(ctx, "123456", "u1")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestTeamService_ListMine(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTeamRepo()
	repo.add(&domain.Team{PIN: "111111", Name: "A", OwnerID: "u1"}, "u1", "u2")
	repo.add(&domain.Team{PIN: "222222", Name: "B", OwnerID: "u2"}, "u2")
	svc := NewTeamService(repo, newFakeUserRepo(), nil)

	teams, err := svc.ListMine(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	teams, err = svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, teams, 1)
	assert.Equal(t, "111111", teams[0].PIN)
}

func TestTeamService_SendInvitations(t *testing.T) {
	ctx := context.Background()
	teamRepo := newFakeTeamRepo()
	teamRepo.add(&domain.Team{PIN: "123456", Name: "Team", OwnerID: "u1"}, "u1")
	userRepo := newFakeUserRepo()
	userRepo.add(&domain.User{ID: "u1", Email: "owner@example.com", DisplayName: "Owner"})
	mailer := &fakeEmailService{failFor: map[string]bool{"bad@example.com": true}}
	svc := NewTeamService(teamRepo, userRepo, mailer)

	sent, failed, err := svc.SendInvitations(ctx, "123456", "u1",
		[]string{"a@example.com", "bad@example.com", "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"bad@example.com"}, failed)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "Team", mailer.sent[0].TeamName)
	assert.Equal(t, "123456", mailer.sent[0].TeamPIN)
	assert.Equal(t, "Owner", mailer.sent[0].InviterName)
}

func TestTeamService_SendInvitations_Unconfigured(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), newFakeUserRepo(), nil)

	_, _, err := svc.SendInvitations(context.Background(), "123456", "u1", []string{"a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pin, err := generatePIN()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), pin)
		seen[pin] = true
	}
	// Fifty draws from a million-value space should not all collide.
	assert.Greater(t, len(seen), 1)
}

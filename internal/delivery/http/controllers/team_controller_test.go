package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"whenworks/internal/delivery/http/helpers"
	"whenworks/internal/delivery/http/middleware"
	"whenworks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTeamService implements domain.TeamService for handler tests.
type fakeTeamService struct {
	createErr     error
	createResult  *domain.Team
	joinErr       error
	joinResult    *domain.Team
	membersErr    error
	membersResult []*domain.TeamMember
	listMineErr   error
	listMineTeams []*domain.Team
	inviteErr     error
	inviteSent    int
	inviteFailed  []string

	lastCreateName   string
	lastCreateOwner  string
	lastJoinPIN      string
	lastJoinUserID   string
	lastInvitePIN    string
	lastInviteEmails []string
}

func (f *fakeTeamService) Create(ctx context.Context, name, ownerID string) (*domain.Team, error) {
	f.lastCreateName = name
	f.lastCreateOwner = ownerID
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeTeamService) Join(ctx context.Context, pin, userID string) (*domain.Team, error) {
	f.lastJoinPIN = pin
	f.lastJoinUserID = userID
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return f.joinResult, nil
}

func (f *fakeTeamService) Members(ctx context.Context, pin, callerID string) ([]*domain.TeamMember, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.membersResult, nil
}

func (f *fakeTeamService) ListMine(ctx context.Context, userID string) ([]*domain.Team, error) {
	if f.listMineErr != nil {
		return nil, f.listMineErr
	}
	return f.listMineTeams, nil
}

func (f *fakeTeamService) SendInvitations(ctx context.Context, pin, callerID string, emails []string) (int, []string, error) {
	f.lastInvitePIN = pin
	f.lastInviteEmails = emails
	if f.inviteErr != nil {
		return 0, nil, f.inviteErr
	}
	return f.inviteSent, f.inviteFailed, nil
}

func TestTeamController_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		noUserContext  bool
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"name":"Study Group"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "name is required",
		},
		{
			name:           "no user in context",
			body:           `{"name":"Study Group"}`,
			noUserContext:  true,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "unauthorized",
		},
		{
			name:           "service error",
			body:           `{"name":"Study Group"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTeamService{
				createErr:    tt.fakeErr,
				createResult: &domain.Team{PIN: "123456", Name: "Study Group", OwnerID: "user-123"},
			}
			ctrl := NewTeamController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()

			ctrl.Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var team domain.Team
				require.NoError(t, json.Unmarshal(dataBytes, &team))
				assert.Equal(t, "123456", team.PIN)
				assert.Equal(t, "user-123", fake.lastCreateOwner)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
		})
	}
}

func TestTeamController_Join(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"pin":"123456"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "malformed pin",
			body:           `{"pin":"12ab56"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "pin must be 6 digits",
		},
		{
			name:       "unknown pin",
			body:       `{"pin":"000000"}`,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "already a member",
			body:       `{"pin":"123456"}`,
			fakeErr:    domain.ErrAlreadyMember,
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTeamService{
				joinErr:    tt.fakeErr,
				joinResult: &domain.Team{PIN: "123456", Name: "Team"},
			}
			ctrl := NewTeamController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/teams/join", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rr := httptest.NewRecorder()

			ctrl.Join(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "123456", fake.lastJoinPIN)
				assert.Equal(t, "user-123", fake.lastJoinUserID)
			}
			if tt.wantBodySubstr != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestTeamController_Members(t *testing.T) {
	fake := &fakeTeamService{membersResult: []*domain.TeamMember{
		{TeamPIN: "123456", UserID: "u1", DisplayName: "Alice"},
		{TeamPIN: "123456", UserID: "u2", DisplayName: "Bob"},
	}}
	ctrl := NewTeamController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/teams/123456/members", nil)
	req.SetPathValue("pin", "123456")
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
	rr := httptest.NewRecorder()

	ctrl.Members(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	dataBytes, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var members []*domain.TeamMember
	require.NoError(t, json.Unmarshal(dataBytes, &members))
	assert.Len(t, members, 2)
}

func TestTeamController_Invite(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"emails":["a@example.com","b@example.com"]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:           "no recipients",
			body:           `{"emails":[]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "at least one email",
		},
		{
			name:           "bad address",
			body:           `{"emails":["nope"]}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid email",
		},
		{
			name:       "not a member",
			body:       `{"emails":["a@example.com"]}`,
			fakeErr:    domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTeamService{
				inviteErr:    tt.fakeErr,
				inviteSent:   2,
				inviteFailed: nil,
			}
			ctrl := NewTeamController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/teams/123456/invitations", bytes.NewBufferString(tt.body))
			req.SetPathValue("pin", "123456")
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
			rr := httptest.NewRecorder()

			ctrl.Invite(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusOK {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var resp InviteResponse
				require.NoError(t, json.Unmarshal(dataBytes, &resp))
				assert.Equal(t, 2, resp.Sent)
				assert.Equal(t, "123456", fake.lastInvitePIN)
			}
			if tt.wantBodySubstr != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

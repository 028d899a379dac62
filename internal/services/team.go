package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"whenworks/internal/domain"
)

const (
	pinDigits      = 6
	pinGenAttempts = 5
)

type teamService struct {
	teamRepo     domain.TeamRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
}

// NewTeamService creates a TeamService with the given repositories. The
// email service may be nil; invitations then fail with an explicit error
// instead of being dropped silently.
func NewTeamService(teamRepo domain.TeamRepository, userRepo domain.UserRepository, emailService domain.EmailService) domain.TeamService {
	return &teamService{
		teamRepo:     teamRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// generatePIN returns a random 6-digit code. Leading zeros are allowed, so
// the space is the full 000000-999999 range.
func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%0*d", pinDigits, n.Int64()), nil
}

func (s *teamService) Create(ctx context.Context, name, ownerID string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}

	team := domain.NewTeam(name, ownerID, time.Now())
	for attempt := 0; ; attempt++ {
		pin, err := generatePIN()
		if err != nil {
			return nil, err
		}
		if _, err := s.teamRepo.GetByPIN(ctx, pin); err == nil {
			// Collision; roll again.
			if attempt+1 >= pinGenAttempts {
				return nil, fmt.Errorf("failed to find a free pin after %d attempts", pinGenAttempts)
			}
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to check pin: %w", err)
		}
		team.PIN = pin
		break
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := s.teamRepo.AddMember(ctx, team.PIN, ownerID); err != nil {
		return nil, fmt.Errorf("failed to add owner as member: %w", err)
	}
	return team, nil
}

func (s *teamService) Join(ctx context.Context, pin, userID string) (*domain.Team, error) {
	team, err := s.teamRepo.GetByPIN(ctx, strings.TrimSpace(pin))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}
	member, err := s.teamRepo.IsMember(ctx, team.PIN, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil, domain.ErrAlreadyMember
	}
	if err := s.teamRepo.AddMember(ctx, team.PIN, userID); err != nil {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}
	return team, nil
}

func (s *teamService) Members(ctx context.Context, pin, callerID string) ([]*domain.TeamMember, error) {
	if err := s.requireMember(ctx, pin, callerID); err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, pin)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *teamService) ListMine(ctx context.Context, userID string) ([]*domain.Team, error) {
	pins, err := s.teamRepo.ListPINsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	teams := make([]*domain.Team, 0, len(pins))
	for _, pin := range pins {
		team, err := s.teamRepo.GetByPIN(ctx, pin)
		if err != nil {
			return nil, fmt.Errorf("failed to load team %s: %w", pin, err)
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (s *teamService) SendInvitations(ctx context.Context, pin, callerID string, emails []string) (int, []string, error) {
	if s.emailService == nil {
		return 0, nil, fmt.Errorf("email delivery is not configured")
	}
	team, err := s.teamRepo.GetByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("failed to look up team: %w", err)
	}
	if err := s.requireMember(ctx, team.PIN, callerID); err != nil {
		return 0, nil, err
	}
	inviter, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load inviter: %w", err)
	}

	sent := 0
	var failed []string
	for _, to := range emails {
		data := &domain.TeamInviteEmailData{
			Email:       to,
			TeamName:    team.Name,
			TeamPIN:     team.PIN,
			InviterName: inviter.DisplayName,
		}
		if err := s.emailService.SendTeamInvite(ctx, data); err != nil {
			failed = append(failed, to)
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func (s *teamService) requireMember(ctx context.Context, pin, userID string) error {
	member, err := s.teamRepo.IsMember(ctx, pin, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return domain.ErrForbidden
	}
	return nil
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"whenworks/internal/delivery/http/helpers"
	"whenworks/internal/delivery/http/middleware"
	"whenworks/internal/domain"
)

// pinRegex matches a 6-digit team PIN.
var pinRegex = regexp.MustCompile(`^\d{6}$`)

// CreateTeamRequest is the request body for POST /teams.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c CreateTeamRequest) Validate() []string {
	if strings.TrimSpace(c.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// JoinTeamRequest is the request body for POST /teams/join.
type JoinTeamRequest struct {
	PIN string `json:"pin"`
}

// Validate implements Validator.
func (j JoinTeamRequest) Validate() []string {
	if !pinRegex.MatchString(strings.TrimSpace(j.PIN)) {
		return []string{"pin must be 6 digits"}
	}
	return nil
}

// InviteRequest is the request body for POST /teams/{pin}/invitations.
type InviteRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (i InviteRequest) Validate() []string {
	var errs []string
	if len(i.Emails) == 0 {
		errs = append(errs, "at least one email is required")
	}
	for _, e := range i.Emails {
		if !emailRegex.MatchString(strings.TrimSpace(e)) {
			errs = append(errs, "invalid email: "+e)
		}
	}
	return errs
}

// InviteResponse is the response body for POST /teams/{pin}/invitations.
type InviteResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed,omitempty"`
}

type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a team
// @Description Create a team with a server-generated 6-digit PIN. The authenticated user becomes the owner and first member.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTeamRequest true "Team data"
// @Success 201 {object} helpers.APIResponse "data contains the created team with its PIN"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [post]
func (c *TeamController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	team, err := c.Service.Create(r.Context(), req.Name, userID)
	if err != nil {
		c.logUnexpected(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, team)
}

// Join godoc
// @Summary Join a team by PIN
// @Description Join the team identified by its 6-digit PIN.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinTeamRequest true "Team PIN"
// @Success 200 {object} helpers.APIResponse "data contains the joined team"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already a member)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/join [post]
func (c *TeamController) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinTeamRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	team, err := c.Service.Join(r.Context(), req.PIN, userID)
	if err != nil {
		c.logUnexpected(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, team)
}

// ListMine godoc
// @Summary List my teams
// @Description List every team the authenticated user belongs to.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the team list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [get]
func (c *TeamController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	teams, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.logUnexpected(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, teams)
}

// Members godoc
// @Summary List team members
// @Description List the members of a team. The caller must be a member.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param pin path string true "Team PIN"
// @Success 200 {object} helpers.APIResponse "data contains the member list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{pin}/members [get]
func (c *TeamController) Members(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	members, err := c.Service.Members(r.Context(), pin, userID)
	if err != nil {
		c.logUnexpected(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// Invite godoc
// @Summary Send team invitations
// @Description Email the team's PIN to a list of addresses. The caller must be a member. Addresses that fail to send are listed in the response.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pin path string true "Team PIN"
// @Param body body InviteRequest true "Invitation recipients"
// @Success 200 {object} helpers.APIResponse "data contains sent count and failed addresses"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{pin}/invitations [post]
func (c *TeamController) Invite(w http.ResponseWriter, r *http.Request) {
	pin := r.PathValue("pin")
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sent, failed, err := c.Service.SendInvitations(r.Context(), pin, userID, req.Emails)
	if err != nil {
		c.logUnexpected(r, err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteResponse{Sent: sent, Failed: failed})
}

func (c *TeamController) logUnexpected(r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrAlreadyMember) {
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
}

package security

import (
	"errors"
	"fmt"
	"net/http"
)

// Role ranks, strictly ordered. A caller's clearance is the highest rank
// among the roles they hold, computed once per request by the auth middleware.
const (
	RankPlayer        = 0
	RankGM            = 5
	RankCampaignOwner = 10
	RankAdmin         = 15
)

var ranks = map[string]int{
	"Player":         RankPlayer,
	"GM":             RankGM,
	"Campaign Owner": RankCampaignOwner,
	"Admin":          RankAdmin,
}

// LevelMessage is returned whenever a request carries an unknown security level.
const LevelMessage = "Security must be one of: Player, GM, Campaign Owner or Admin"

// ErrNoRoles is returned by Clearance for a user holding no roles at all.
var ErrNoRoles = errors.New("user holds no roles")

// BadLevelError marks a security level outside the role vocabulary. It is a
// client error, not an authorization failure.
type BadLevelError struct {
	Level string
}

func (e *BadLevelError) Error() string {
	return LevelMessage
}

// ForbiddenError is an authorization failure: the caller's clearance is below
// the level required for the attempted action.
type ForbiddenError struct {
	Level  string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("You must have at least %s level access to %s", e.Level, e.Action)
}

// Rank resolves a role name to its numeric rank.
func Rank(level string) (int, error) {
	rank, ok := ranks[level]
	if !ok {
		return 0, &BadLevelError{Level: level}
	}
	return rank, nil
}

// Clearance returns the maximum rank among the given roles.
func Clearance(roles []string) (int, error) {
	if len(roles) == 0 {
		return 0, ErrNoRoles
	}
	best := -1
	for _, role := range roles {
		rank, ok := ranks[role]
		if !ok {
			return 0, fmt.Errorf("unrecognised role %q", role)
		}
		if rank > best {
			best = rank
		}
	}
	return best, nil
}

// Authorize checks the caller's clearance against a required level. On
// failure the error message names the level and the attempted action, e.g.
// "You must have at least GM level access to edit this NPC".
func Authorize(clearance int, level, action string) error {
	required, err := Rank(level)
	if err != nil {
		return err
	}
	if clearance < required {
		return &ForbiddenError{Level: level, Action: action}
	}
	return nil
}

// HTTPStatus maps an Authorize failure to its response code: 403 for an
// actual permission failure, 400 for an unrecognised level.
func HTTPStatus(err error) int {
	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

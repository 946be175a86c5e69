package security

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearance(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  int
	}{
		{"single player", []string{"Player"}, RankPlayer},
		{"single admin", []string{"Admin"}, RankAdmin},
		{"highest role wins", []string{"Player", "GM"}, RankGM},
		{"order does not matter", []string{"Campaign Owner", "Player"}, RankCampaignOwner},
		{"duplicates are harmless", []string{"GM", "GM"}, RankGM},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Clearance(tc.roles)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClearanceNoRoles(t *testing.T) {
	_, err := Clearance(nil)
	assert.ErrorIs(t, err, ErrNoRoles)

	_, err = Clearance([]string{})
	assert.ErrorIs(t, err, ErrNoRoles)
}

func TestClearanceUnknownRole(t *testing.T) {
	_, err := Clearance([]string{"Player", "Overlord"})
	assert.Error(t, err)
}

func TestRank(t *testing.T) {
	rank, err := Rank("Campaign Owner")
	require.NoError(t, err)
	assert.Equal(t, RankCampaignOwner, rank)

	_, err = Rank("not_a_level")
	var badLevel *BadLevelError
	assert.ErrorAs(t, err, &badLevel)
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(RankGM, "GM", "edit this NPC"))
	assert.NoError(t, Authorize(RankAdmin, "Player", "view this NPC"))

	err := Authorize(RankPlayer, "GM", "edit this NPC")
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "You must have at least GM level access to edit this NPC", err.Error())
}

func TestAuthorizeBadLevel(t *testing.T) {
	err := Authorize(RankAdmin, "not_a_level", "do anything")
	var badLevel *BadLevelError
	require.ErrorAs(t, err, &badLevel)
	assert.Equal(t, LevelMessage, err.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Authorize(RankPlayer, "Admin", "x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Authorize(RankAdmin, "bogus", "x")))
}

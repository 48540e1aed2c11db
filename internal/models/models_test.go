package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georef/geo-reference-api/internal/constants"
)

func TestContinentAddCountry(t *testing.T) {
	continent := &Continent{ID: 1, Name: "Europe"}
	country := &Country{ID: 10, Name: "France"}

	continent.AddCountry(country)

	require.Len(t, continent.Countries, 1)
	require.Equal(t, continent.ID, country.ContinentID)
	require.Equal(t, continent, country.Continent)

	// Adding again is a no-op
	continent.AddCountry(country)
	require.Len(t, continent.Countries, 1)
}

func TestContinentRemoveCountry(t *testing.T) {
	continent := &Continent{ID: 1, Name: "Europe"}
	country := &Country{ID: 10, Name: "France"}
	continent.AddCountry(country)

	continent.RemoveCountry(country)

	require.Empty(t, continent.Countries)
	require.Zero(t, country.ContinentID)
	require.Nil(t, country.Continent)
}

func TestContinentRemoveCountryKeepsReassignedParent(t *testing.T) {
	europe := &Continent{ID: 1, Name: "Europe"}
	asia := &Continent{ID: 2, Name: "Asia"}
	country := &Country{ID: 10, Name: "Russia"}

	europe.AddCountry(country)
	asia.AddCountry(country)

	// The country was already reassigned; removing it from the old parent
	// must not clobber the new back reference.
	europe.RemoveCountry(country)

	require.Equal(t, asia.ID, country.ContinentID)
	require.Equal(t, asia, country.Continent)
}

func TestCityAddRemovePort(t *testing.T) {
	city := &City{ID: 3, Name: "Le Havre"}
	port := &Port{ID: 30, Name: "Port du Havre"}

	city.AddPort(port)
	require.Equal(t, city.ID, port.CityID)
	require.Len(t, city.Ports, 1)

	city.RemovePort(port)
	require.Zero(t, port.CityID)
	require.Nil(t, port.City)
	require.Empty(t, city.Ports)
}

func TestUserAuthoredUsers(t *testing.T) {
	admin := &User{ID: 1, Username: "admin"}
	created := &User{ID: 2, Username: "editor"}

	admin.AddAuthoredUser(created)
	require.NotNil(t, created.AuthorID)
	require.Equal(t, admin.ID, *created.AuthorID)
	require.Len(t, admin.AuthoredUsers, 1)

	admin.RemoveAuthoredUser(created)
	require.Nil(t, created.AuthorID)
	require.Nil(t, created.Author)
}

func TestUserRemoveContinentGuardsStaleReference(t *testing.T) {
	alice := &User{ID: 1, Username: "alice"}
	bob := &User{ID: 2, Username: "bob"}
	continent := &Continent{ID: 5, Name: "Africa"}

	alice.AddContinent(continent)
	bob.AddContinent(continent)

	alice.RemoveContinent(continent)

	require.NotNil(t, continent.AuthorID)
	require.Equal(t, bob.ID, *continent.AuthorID)
}

func TestUserGetRoles(t *testing.T) {
	empty := &User{Roles: Roles{}}
	require.Equal(t, []string{constants.RoleUser}, empty.GetRoles())

	admin := &User{Roles: Roles{constants.RoleAdmin}}
	require.ElementsMatch(t, []string{constants.RoleAdmin, constants.RoleUser}, admin.GetRoles())

	// Stored duplicates and blanks are collapsed
	messy := &User{Roles: Roles{"admin", "", "admin", "user", "user"}}
	require.ElementsMatch(t, []string{"admin", "user"}, messy.GetRoles())
}

func TestUserHasRole(t *testing.T) {
	user := &User{Roles: Roles{}}
	require.True(t, user.HasRole(constants.RoleUser))
	require.False(t, user.HasRole(constants.RoleAdmin))
}

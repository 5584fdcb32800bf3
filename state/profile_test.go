package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devconnector.com/social-network/models"
)

func TestReduceProfile(t *testing.T) {
	ada := Profile{User: models.User{ID: "u1", Name: "Ada"}, Status: "Developer"}

	s := ReduceProfile(InitialProfileState(), GetProfileAction(ada))
	assert.Equal(t, &ada, s.Profile)
	assert.False(t, s.Loading)
	assert.True(t, s.Exist)

	s = ReduceProfile(s, GetReposAction([]Repo{{Name: "engine"}}))
	assert.Len(t, s.Repos, 1)

	s = ReduceProfile(s, ProfileErrorAction(Failure{Msg: "There is no profile for this user", Status: 400}))
	assert.Nil(t, s.Profile)
	assert.False(t, s.Exist)
	assert.Equal(t, "There is no profile for this user", s.Error.Msg)
	assert.Len(t, s.Repos, 1, "profile errors keep repos")

	s = ReduceProfile(s, ClearProfileAction())
	assert.Empty(t, s.Repos)
	assert.True(t, s.Exist)
	assert.NotNil(t, s.Error, "clearing keeps the last error")

	s = ReduceProfile(s, GetProfilesAction([]Profile{ada}))
	assert.Len(t, s.Profiles, 1)
}

func TestReduceProfilePassesThroughUnknownActions(t *testing.T) {
	s := InitialProfileState()

	assert.Equal(t, s, ReduceProfile(s, Action{Type: "SOMETHING_ELSE"}))
	assert.Equal(t, s, ReduceProfile(s, Action{Type: GetProfile, Payload: "not a profile"}))
	assert.Equal(t, s, ReduceProfile(s, AddPostAction(models.Post{ID: "p1"})))
}

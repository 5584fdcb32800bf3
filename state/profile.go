package state

import "devconnector.com/social-network/models"

type Profile struct {
	User     models.User `json:"user"`
	Handle   string      `json:"handle,omitempty"`
	Status   string      `json:"status,omitempty"`
	Company  string      `json:"company,omitempty"`
	Location string      `json:"location,omitempty"`
	Bio      string      `json:"bio,omitempty"`
	Skills   []string    `json:"skills,omitempty"`
}

type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
}

type ProfileState struct {
	Profile  *Profile  `json:"profile"`
	Profiles []Profile `json:"profiles"`
	Repos    []Repo    `json:"repos"`
	Loading  bool      `json:"loading"`
	Exist    bool      `json:"exist"`
	Error    *Failure  `json:"error,omitempty"`
}

func InitialProfileState() ProfileState {
	return ProfileState{
		Profiles: []Profile{},
		Repos:    []Repo{},
		Loading:  true,
		Exist:    true,
	}
}

func ReduceProfile(s ProfileState, a Action) ProfileState {
	switch a.Type {
	case GetProfile, UpdateProfile:
		p, ok := a.Payload.(Profile)
		if !ok {
			return s
		}
		s.Profile = &p
		s.Loading = false
		s.Exist = true
	case ProfileError:
		f, ok := a.Payload.(Failure)
		if !ok {
			return s
		}
		s.Error = &f
		s.Loading = false
		s.Profile = nil
		s.Exist = false
	case ClearProfile:
		s.Profile = nil
		s.Repos = []Repo{}
		s.Loading = false
		s.Exist = true
	case GetProfiles:
		p, ok := a.Payload.([]Profile)
		if !ok {
			return s
		}
		s.Profiles = p
		s.Loading = false
	case GetRepos:
		r, ok := a.Payload.([]Repo)
		if !ok {
			return s
		}
		s.Repos = r
		s.Loading = false
		s.Exist = true
	}
	return s
}

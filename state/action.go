package state

import "devconnector.com/social-network/models"

type ActionType string

const (
	GetProfile    ActionType = "GET_PROFILE"
	UpdateProfile ActionType = "UPDATE_PROFILE"
	ProfileError  ActionType = "PROFILE_ERROR"
	ClearProfile  ActionType = "CLEAR_PROFILE"
	GetProfiles   ActionType = "GET_PROFILES"
	GetRepos      ActionType = "GET_REPOS"

	GetPosts      ActionType = "GET_POSTS"
	GetPost       ActionType = "GET_POST"
	AddPost       ActionType = "ADD_POST"
	DeletePost    ActionType = "DELETE_POST"
	UpdatePost    ActionType = "UPDATE_POST"
	UpdateLikes   ActionType = "UPDATE_LIKES"
	AddComment    ActionType = "ADD_COMMENT"
	RemoveComment ActionType = "REMOVE_COMMENT"
	PostError     ActionType = "POST_ERROR"
	PostEmpty     ActionType = "POST_EMPTY"
)

// Action is a tagged state transition. Reducers ignore actions whose type
// they do not handle or whose payload has an unexpected shape.
type Action struct {
	Type    ActionType
	Payload any
}

// Failure is the error payload carried by PROFILE_ERROR and POST_ERROR.
type Failure struct {
	Msg    string `json:"msg"`
	Status int    `json:"status,omitempty"`
}

type LikesUpdate struct {
	ID    string        `json:"id"`
	Likes []models.Like `json:"likes"`
}

func GetPostsAction(posts []models.Post) Action { return Action{Type: GetPosts, Payload: posts} }
func GetPostAction(post models.Post) Action     { return Action{Type: GetPost, Payload: post} }
func AddPostAction(post models.Post) Action     { return Action{Type: AddPost, Payload: post} }
func DeletePostAction(id string) Action         { return Action{Type: DeletePost, Payload: id} }
func UpdatePostAction(post models.Post) Action  { return Action{Type: UpdatePost, Payload: post} }
func PostErrorAction(f Failure) Action          { return Action{Type: PostError, Payload: f} }
func PostEmptyAction() Action                   { return Action{Type: PostEmpty} }

func UpdateLikesAction(id string, likes []models.Like) Action {
	return Action{Type: UpdateLikes, Payload: LikesUpdate{ID: id, Likes: likes}}
}

func AddCommentAction(comments []models.Comment) Action {
	return Action{Type: AddComment, Payload: comments}
}

func RemoveCommentAction(comments []models.Comment) Action {
	return Action{Type: RemoveComment, Payload: comments}
}

func GetProfileAction(p Profile) Action    { return Action{Type: GetProfile, Payload: p} }
func UpdateProfileAction(p Profile) Action { return Action{Type: UpdateProfile, Payload: p} }
func ProfileErrorAction(f Failure) Action  { return Action{Type: ProfileError, Payload: f} }
func ClearProfileAction() Action           { return Action{Type: ClearProfile} }
func GetProfilesAction(p []Profile) Action { return Action{Type: GetProfiles, Payload: p} }
func GetReposAction(r []Repo) Action       { return Action{Type: GetRepos, Payload: r} }

package graphql

import (
	"context"
	"fmt"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
)

var _ ports.SocialGraph = (*Client)(nil)

// Variable sets. JSON names must match the $variables declared in documents.go.

type CreateUserVariables struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Bio          string `json:"bio"`
	Website      string `json:"website"`
	ProfileImage string `json:"profileImage"`
	PhoneNumber  string `json:"phoneNumber"`
}

type EditUserVariables struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Website     string `json:"website"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type EditUserAvatarVariables struct {
	ID           string `json:"id"`
	ProfileImage string `json:"profileImage"`
}

type CreatePostVariables struct {
	UserID   string `json:"userId"`
	Media    string `json:"media"`
	Location string `json:"location"`
	Caption  string `json:"caption"`
}

// PostUserVariables is shared by like/unlike and save/unsave.
type PostUserVariables struct {
	PostID string `json:"postId"`
	UserID string `json:"userId"`
}

type CreateCommentVariables struct {
	PostID  string `json:"postId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

type UserProfileIDVariables struct {
	UserID string `json:"userId"`
}

type CheckUsernameVariables struct {
	Username string `json:"username"`
}

type mutationResponse struct {
	AffectedRows int `json:"affected_rows"`
}

// mutate runs a mutation whose single root field returns affected_rows.
func (c *Client) mutate(ctx context.Context, operation, document, root string, vars any) (int, error) {
	var out map[string]mutationResponse
	if err := c.Do(ctx, operation, document, vars, &out); err != nil {
		return 0, err
	}
	return out[root].AffectedRows, nil
}

func (c *Client) CreateUser(ctx context.Context, u *domain.User) (int, error) {
	return c.mutate(ctx, "createUser", CreateUserMutation, "insert_users", CreateUserVariables{
		UserID:       u.UserID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Bio:          u.Bio,
		Website:      u.Website,
		ProfileImage: u.ProfileImage,
		PhoneNumber:  u.PhoneNumber,
	})
}

func (c *Client) EditUser(ctx context.Context, p domain.Profile) (int, error) {
	return c.mutate(ctx, "editUser", EditUserMutation, "update_users", EditUserVariables{
		ID:          p.ID,
		Name:        p.Name,
		Username:    p.Username,
		Website:     p.Website,
		Bio:         p.Bio,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
	})
}

func (c *Client) EditUserAvatar(ctx context.Context, id, profileImage string) (int, error) {
	return c.mutate(ctx, "editUserAvatar", EditUserAvatarMutation, "update_users",
		EditUserAvatarVariables{ID: id, ProfileImage: profileImage})
}

func (c *Client) CreatePost(ctx context.Context, p domain.Post) (int, error) {
	return c.mutate(ctx, "createPost", CreatePostMutation, "insert_posts", CreatePostVariables{
		UserID:   p.UserID,
		Media:    p.Media,
		Location: p.Location,
		Caption:  p.Caption,
	})
}

func (c *Client) LikePost(ctx context.Context, postID, userID string) (int, error) {
	return c.mutate(ctx, "likePost", LikePostMutation, "insert_likes",
		PostUserVariables{PostID: postID, UserID: userID})
}

func (c *Client) UnlikePost(ctx context.Context, postID, userID string) (int, error) {
	return c.mutate(ctx, "unlikePost", UnlikePostMutation, "delete_likes",
		PostUserVariables{PostID: postID, UserID: userID})
}

func (c *Client) SavePost(ctx context.Context, postID, userID string) (int, error) {
	return c.mutate(ctx, "savePost", SavePostMutation, "insert_saved_posts",
		PostUserVariables{PostID: postID, UserID: userID})
}

func (c *Client) UnsavePost(ctx context.Context, postID, userID string) (int, error) {
	return c.mutate(ctx, "unsavePost", UnsavePostMutation, "delete_saved_posts",
		PostUserVariables{PostID: postID, UserID: userID})
}

func (c *Client) CreateComment(ctx context.Context, cm domain.Comment) (int, error) {
	return c.mutate(ctx, "createComment", CreateCommentMutation, "insert_comments", CreateCommentVariables{
		PostID:  cm.PostID,
		UserID:  cm.UserID,
		Content: cm.Content,
	})
}

// IsUsernameTaken reports whether any user already has username. An empty
// result list means the name is available.
func (c *Client) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	var out struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
	}
	if err := c.Do(ctx, "checkIfUsernameTaken", CheckIfUsernameTakenQuery,
		CheckUsernameVariables{Username: username}, &out); err != nil {
		return false, err
	}
	return len(out.Users) > 0, nil
}

// ProfileID returns the users.id row key of the profile created for the auth
// uid userID.
func (c *Client) ProfileID(ctx context.Context, userID string) (string, error) {
	var out struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	if err := c.Do(ctx, "userProfileId", UserProfileIDQuery,
		UserProfileIDVariables{UserID: userID}, &out); err != nil {
		return "", err
	}
	if len(out.Users) == 0 || out.Users[0].ID == "" {
		return "", fmt.Errorf("profile for %s: %w", userID, domain.ErrUserNotFound)
	}
	return out.Users[0].ID, nil
}

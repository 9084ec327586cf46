package twitter

import (
	"context"
	"encoding/json"
	"fmt"
)

type userByScreenNameVariables struct {
	ScreenName               string `json:"screen_name"`
	WithSafetyModeUserFields bool   `json:"withSafetyModeUserFields"`
}

type userByScreenNameData struct {
	User struct {
		Result *userResult `json:"result"`
	} `json:"user"`
}

// GetUserByScreenName resolves a handle to its stable user record. The
// returned ID is what the timeline operations key on.
func (c *Client) GetUserByScreenName(ctx context.Context, screenName string) (User, error) {
	data, err := c.runOperation(ctx, opUserByScreenName, userByScreenNameVariables{
		ScreenName:               screenName,
		WithSafetyModeUserFields: true,
	})
	if err != nil {
		return User{}, err
	}

	var parsed userByScreenNameData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return User{}, fmt.Errorf("parse user response: %w", err)
	}

	user := mapUser(parsed.User.Result)
	if user == nil {
		return User{}, fmt.Errorf("user %q not found", screenName)
	}
	return *user, nil
}

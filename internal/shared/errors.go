package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrTokenExpired       = fmt.Errorf("access token expired")
	ErrUsernameTaken      = fmt.Errorf("username already exists")

	// List and catalog errors
	ErrNotFound       = fmt.Errorf("item not found")
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrFilmNotFound   = fmt.Errorf("film not found")
	ErrIncompleteSort = fmt.Errorf("sort order must list every entry exactly once")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

package service

import (
	"context"
	"fmt"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/lumen-social/cli/pkg/formatter"
	"github.com/lumen-social/cli/pkg/prompter"
	"github.com/lumen-social/cli/pkg/session"
)

// AuthService drives login, registration, and logout.
type AuthService struct {
	sessions *session.Store
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{sessions: session.Default()}
}

// ensureAuth rehydrates the persisted session if needed and returns the
// current user, or an error when the client is anonymous.
func ensureAuth(sessions *session.Store) (*api.User, error) {
	if user := sessions.CurrentUser(); user != nil {
		return user, nil
	}
	sessions.Rehydrate()
	if user := sessions.CurrentUser(); user != nil {
		return user, nil
	}
	formatter.PrintError("Not logged in. Please run 'lumen-cli auth login'")
	return nil, session.ErrAnonymous
}

// Login prompts for credentials and authenticates.
func (s *AuthService) Login(ctx context.Context) error {
	s.sessions.Rehydrate()
	if user := s.sessions.CurrentUser(); user != nil {
		formatter.PrintWarning("Already logged in as %s", user.Username)
		confirm, err := prompter.PromptConfirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	username, err := prompter.PromptString("Username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	formatter.PrintInfo("Authenticating...")
	if err := s.sessions.Login(ctx, username, password); err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	user := s.sessions.CurrentUser()
	formatter.PrintSuccess("✓ Login successful!")
	if user.IsAdmin() {
		formatter.PrintInfo("Logged in as %s (ADMIN)", formatter.Bold.Sprint(user.Username))
	} else {
		formatter.PrintInfo("Logged in as %s", formatter.Bold.Sprint(user.Username))
	}
	fmt.Printf("\n")
	formatter.PrintKeyValue(map[string]interface{}{
		"Username":  user.Username,
		"Email":     user.Email,
		"Full Name": user.FullName,
		"Followers": len(user.Followers),
		"Following": len(user.Following),
	})

	return nil
}

// Register prompts for account details and creates an account.
func (s *AuthService) Register(ctx context.Context) error {
	username, err := prompter.PromptString("Username: ")
	if err != nil {
		return err
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	email, err := prompter.PromptString("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	fullName, err := prompter.PromptString("Full name (optional): ")
	if err != nil {
		return err
	}

	password, err := prompter.PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	formatter.PrintInfo("Creating account...")
	err = s.sessions.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: password,
	})
	if err != nil {
		formatter.PrintError("Registration failed: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Welcome to Lumen, %s!", username)
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server cannot be reached.
func (s *AuthService) Logout(ctx context.Context) error {
	s.sessions.Rehydrate()
	if !s.sessions.IsAuthenticated() {
		formatter.PrintWarning("Not logged in")
		return nil
	}

	confirm, err := prompter.PromptConfirm("Logout?")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	s.sessions.Logout(ctx)
	formatter.PrintSuccess("✓ Logged out successfully")
	return nil
}

// Me shows the current user.
func (s *AuthService) Me(ctx context.Context) error {
	if _, err := ensureAuth(s.sessions); err != nil {
		return err
	}

	fresh, err := api.Me(ctx)
	if err != nil {
		formatter.PrintError("Failed to fetch user: %v", err)
		return err
	}

	fmt.Printf("\n")
	kv := map[string]interface{}{
		"Username":  fresh.Username,
		"Email":     fresh.Email,
		"Full Name": fresh.FullName,
		"Bio":       fresh.Bio,
		"Website":   fresh.Website,
		"Followers": len(fresh.Followers),
		"Following": len(fresh.Following),
		"Joined":    fresh.CreatedAt.Format("2006-01-02"),
	}
	if fresh.IsAdmin() {
		kv["Admin"] = "✓ YES"
	}
	formatter.PrintKeyValue(kv)
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
)

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessionStore) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(users, sessions, discardLogger)
	svc.hashCost = bcrypt.MinCost
	return svc, users, sessions
}

func registerInput(name, username, email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     name,
		Username: username,
		Email:    email,
		Password: password,
		Confirm:  password,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), registerInput("Alice Liddell", "alice", "alice@example.com", "alicepw"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "alicepw" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordKey("alicepw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt must be stamped")
	}
}

func TestAuthService_Register_LongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	long := strings.Repeat("p", 80)
	if _, err := svc.Register(context.Background(), registerInput("Erin Long", "erinl", "erin@example.com", long)); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "erinl", long); err != nil {
		t.Fatalf("login with long password failed: %v", err)
	}
	// Passwords sharing the first 72 bytes must not be interchangeable.
	if _, err := svc.Login(context.Background(), "erinl", long[:72]+"q"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for a different long password, got %v", err)
	}
}

func TestAuthService_Register_ConfirmMismatch(t *testing.T) {
	svc, users, _ := newTestAuthService()

	in := registerInput("Alice Liddell", "alice", "alice@example.com", "alicepw")
	in.Confirm = "alicepw2"

	_, err := svc.Register(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["password"]; !ok {
		t.Fatalf("expected password field error, got %v", ve.Fields)
	}
	if users.count() != 0 {
		t.Fatalf("no user must be stored on validation failure")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, users, _ := newTestAuthService()

	cases := []ports.RegisterInput{
		registerInput("Al", "alice", "alice@example.com", "pw"),
		registerInput("Alice Liddell", "al", "alice@example.com", "pw"),
		registerInput("Alice Liddell", "alice", "alice-at-example", "pw"),
		registerInput("Alice Liddell", "alice", "alice@example.com", ""),
	}
	for i, in := range cases {
		_, err := svc.Register(context.Background(), in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}
	if users.count() != 0 {
		t.Fatalf("no user must be stored on validation failure")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, users, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("Bob Builder", "bobby", "bob@example.com", "pw")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), registerInput("Bob Other", "bobby", "other@example.com", "pw2"))
	var ce *domain.ConflictError
	if !errors.As(err, &ce) || ce.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("conflict must match ErrUserExists")
	}
	if users.count() != 1 {
		t.Fatalf("expected 1 stored user, got %d", users.count())
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _ := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("Bob Builder", "bobby", "bob@example.com", "pw"))

	_, err := svc.Register(context.Background(), registerInput("Robert B", "robert", "bob@example.com", "pw"))
	var ce *domain.ConflictError
	if !errors.As(err, &ce) || ce.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}
	if users.count() != 1 {
		t.Fatalf("expected 1 stored user, got %d", users.count())
	}
}

func TestAuthService_Register_RepoError(t *testing.T) {
	svc, users, _ := newTestAuthService()
	users.createErr = domain.NewStoreError("insert user", errors.New("db down"))

	_, err := svc.Register(context.Background(), registerInput("Carol Ann", "carol", "carol@example.com", "pw"))
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("Carol Ann", "carol", "carol@example.com", "s3cret")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	sess, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sess.Username != "carol" || !sess.LoggedIn {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Token == "" {
		t.Fatalf("expected session token")
	}
	if sessions.count() != 1 {
		t.Fatalf("expected 1 stored session, got %d", sessions.count())
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	_, _ = svc.Register(context.Background(), registerInput("Dave Smith", "daves", "dave@example.com", "goodpass"))
	if _, err := svc.Login(context.Background(), "daves", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.count() != 0 {
		t.Fatalf("no session must be created on failed login")
	}
}

func TestAuthService_Login_UnknownUserIsIndistinguishable(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	if _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.count() != 0 {
		t.Fatalf("no session must be created on failed login")
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Login(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "someone", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SessionStoreError(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	_, _ = svc.Register(context.Background(), registerInput("Erin Lee", "erinl", "erin@example.com", "pw"))

	sessions.createErr = errors.New("redis down")
	if _, err := svc.Login(context.Background(), "erinl", "pw"); err == nil {
		t.Fatalf("expected error when session store fails")
	}
}

func TestAuthService_LogoutAndResolve(t *testing.T) {
	svc, _, _ := newTestAuthService()
	_, _ = svc.Register(context.Background(), registerInput("Frank Doe", "frank", "frank@example.com", "pw"))

	sess, err := svc.Login(context.Background(), "frank", "pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), sess.Token)
	if err != nil || resolved.Username != "frank" {
		t.Fatalf("resolve failed: %v %+v", err, resolved)
	}

	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), sess.Token); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after logout, got %v", err)
	}

	// idempotent
	if err := svc.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without session failed: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), ""); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for empty token, got %v", err)
	}
}

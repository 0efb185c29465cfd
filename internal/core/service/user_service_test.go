package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

var (
	managerRole = &domain.Role{ID: "role_manager", Name: "Manager", Rank: 1}
	workerRole  = &domain.Role{ID: "role_worker", Name: "Worker", Rank: 2}
)

func newUserService(repo *stubUserRepo) *UserService {
	repo.roles[managerRole.ID] = managerRole
	repo.roles[workerRole.ID] = workerRole
	roles := newStubRoleRepo(managerRole, workerRole)
	return NewUserService(repo, roles, nopLogger())
}

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pass12345",
		RoleID:   workerRole.ID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("created user must not expose the hash")
	}
	if user.Role == nil || user.Role.Name != "Worker" {
		t.Fatalf("unexpected role: %+v", user.Role)
	}
	if len(user.Tasks) != 0 {
		t.Fatalf("new user must start with an empty task list")
	}

	stored := repo.users[user.ID]
	if stored.PasswordHash == "pass12345" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass12345")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Bob", Email: "bob@example.com", Password: "pass", RoleID: "",
	})
	if err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Create_RoleMissing(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Bob", Email: "bob@example.com", Password: "pass12345", RoleID: "role_ghost",
	})
	if err != domain.ErrRoleNotFound {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)

	first, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Carol", Email: "carol@example.com", Password: "pass12345", RoleID: workerRole.ID,
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err = svc.Create(context.Background(), ports.CreateUserInput{
		Name: "Imposter", Email: "carol@example.com", Password: "other1234", RoleID: workerRole.ID,
	})
	if err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// The original record is untouched.
	stored := repo.users[first.ID]
	if stored == nil || stored.Name != "Carol" {
		t.Fatalf("original user changed after duplicate attempt: %+v", stored)
	}
}

func TestUserService_Delete_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	repo.addUser("boss", "boss@example.com", managerRole, "x")
	repo.addUser("grunt", "grunt@example.com", workerRole, "x")

	if err := svc.Delete(context.Background(), "boss", "grunt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.users["grunt"]; ok {
		t.Fatalf("user still present after delete")
	}
}

func TestUserService_Delete_Forbidden(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	repo.addUser("boss", "boss@example.com", managerRole, "x")
	repo.addUser("grunt", "grunt@example.com", workerRole, "x")

	if err := svc.Delete(context.Background(), "grunt", "boss"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "boss", "boss"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for self-delete, got %v", err)
	}
}

func TestUserService_Delete_TargetMissing(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	repo.addUser("boss", "boss@example.com", managerRole, "x")

	if err := svc.Delete(context.Background(), "boss", "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("store changed on failed delete")
	}
}

func TestUserService_List_StripsHashes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo)
	repo.addUser("boss", "boss@example.com", managerRole, "secret-hash")

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("listing leaked a password hash")
	}
}

func TestUserService_ListRoles_AscendingRank(t *testing.T) {
	svc := newUserService(newStubUserRepo())

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if roles[0].Rank > roles[1].Rank {
		t.Fatalf("roles not sorted ascending by rank: %+v", roles)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/taskhub/task-system/internal/core/domain"
	"github.com/taskhub/task-system/internal/core/ports"
)

func newTaskFixture() (*TaskService, *stubUserRepo) {
	repo := newStubUserRepo()
	repo.addUser("boss", "boss@example.com", &domain.Role{ID: "r1", Name: "Manager", Rank: 1}, "x")
	repo.addUser("grunt", "grunt@example.com", &domain.Role{ID: "r2", Name: "Worker", Rank: 2}, "x")
	return NewTaskService(repo, nopLogger()), repo
}

func TestTaskService_Assign_Success(t *testing.T) {
	svc, repo := newTaskFixture()

	user, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "grunt", Name: "Write report",
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if len(user.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(user.Tasks))
	}
	task := user.Tasks[0]
	if task.Name != "Write report" || task.IsCompleted {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.ID == "" {
		t.Fatalf("assigned task missing stable id")
	}
	if len(repo.users["grunt"].Tasks) != 1 {
		t.Fatalf("task not persisted")
	}
}

func TestTaskService_Assign_Forbidden(t *testing.T) {
	svc, repo := newTaskFixture()

	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "grunt", TargetID: "boss", Name: "Do my work",
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Self-assignment is denied too: the comparison is strict.
	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "boss", Name: "Note to self",
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for self-assign, got %v", err)
	}
	if len(repo.users["boss"].Tasks) != 0 {
		t.Fatalf("store changed on forbidden assign")
	}
}

func TestTaskService_Assign_TargetMissing(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "ghost", Name: "Haunt",
	}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTaskService_Assign_EmptyName(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "grunt", Name: "",
	}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_Toggle_RoundTrip(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "grunt", Name: "Write report",
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	user, err := svc.Toggle(context.Background(), ports.TaskRefInput{
		ActorID: "boss", TargetID: "grunt", Index: 0,
	})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !user.Tasks[0].IsCompleted {
		t.Fatalf("expected completed after toggle")
	}

	user, err = svc.Toggle(context.Background(), ports.TaskRefInput{
		ActorID: "boss", TargetID: "grunt", Index: 0,
	})
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if user.Tasks[0].IsCompleted {
		t.Fatalf("double toggle must return to not completed")
	}
}

func TestTaskService_Toggle_SelfAllowed(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Assign(context.Background(), ports.AssignTaskInput{
		ActorID: "boss", TargetID: "grunt", Name: "Write report",
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// The task owner may mark their own work done.
	user, err := svc.Toggle(context.Background(), ports.TaskRefInput{
		ActorID: "grunt", TargetID: "grunt", Index: 0,
	})
	if err != nil {
		t.Fatalf("self toggle failed: %v", err)
	}
	if !user.Tasks[0].IsCompleted {
		t.Fatalf("expected completed after self toggle")
	}
}

func TestTaskService_Toggle_ForbiddenForLowerRank(t *testing.T) {
	svc, repo := newTaskFixture()
	repo.users["boss"].Tasks = []domain.Task{{ID: "t1", Name: "Plan"}}

	if _, err := svc.Toggle(context.Background(), ports.TaskRefInput{
		ActorID: "grunt", TargetID: "boss", Index: 0,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskService_Toggle_IndexOutOfRange(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Toggle(context.Background(), ports.TaskRefInput{
		ActorID: "grunt", TargetID: "grunt", Index: 0,
	}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Remove_CompactsList(t *testing.T) {
	svc, repo := newTaskFixture()
	repo.users["grunt"].Tasks = []domain.Task{
		{ID: "t0", Name: "first"},
		{ID: "t1", Name: "second"},
		{ID: "t2", Name: "third"},
	}

	user, err := svc.Remove(context.Background(), ports.TaskRefInput{
		ActorID: "boss", TargetID: "grunt", Index: 0,
	})
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(user.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(user.Tasks))
	}
	// Every task after the removed index shifts down by one.
	if user.Tasks[0].Name != "second" || user.Tasks[1].Name != "third" {
		t.Fatalf("unexpected order: %+v", user.Tasks)
	}
}

func TestTaskService_Remove_Forbidden(t *testing.T) {
	svc, repo := newTaskFixture()
	repo.users["grunt"].Tasks = []domain.Task{{ID: "t0", Name: "first"}}

	// Unlike toggle, removing your own task still requires higher rank.
	if _, err := svc.Remove(context.Background(), ports.TaskRefInput{
		ActorID: "grunt", TargetID: "grunt", Index: 0,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.users["grunt"].Tasks) != 1 {
		t.Fatalf("store changed on forbidden remove")
	}
}

func TestTaskService_Remove_IndexOutOfRange(t *testing.T) {
	svc, _ := newTaskFixture()

	if _, err := svc.Remove(context.Background(), ports.TaskRefInput{
		ActorID: "boss", TargetID: "grunt", Index: 3,
	}); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

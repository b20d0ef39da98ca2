package user_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kimlik-dev/kimlik/internal/domain"
	"github.com/kimlik-dev/kimlik/internal/repo/user"
)

func setupTestRepo(t *testing.T) (*user.SQLiteUserRepository, user.SQLiteUserRepositoryConfig) {
	t.Helper()

	cfg := user.SQLiteUserRepositoryConfig{
		DatabasePath: filepath.Join(t.TempDir(), "auth.db"),
	}

	repo, err := user.NewSQLiteUserRepository(cfg)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	t.Cleanup(func() { _ = repo.Close() })

	return repo, cfg
}

func TestSQLiteUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "Ada", "ada@x.com", "hash1")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if created.ID != 1 {
		t.Errorf("CreateUser() id = %d, want 1", created.ID)
	}
	if created.CreatedAt == 0 {
		t.Error("CreateUser() did not assign a creation time")
	}

	found, ok, err := repo.GetUserByEmail(ctx, "ada@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if !ok {
		t.Fatal("GetUserByEmail() did not find the created user")
	}
	if found.ID != created.ID || found.Name != "Ada" || found.Email != "ada@x.com" || found.PasswordHash != "hash1" {
		t.Errorf("GetUserByEmail() = %+v, want %+v", found, created)
	}

	// Unknown email is an absent result, not an error
	_, ok, err = repo.GetUserByEmail(ctx, "nobody@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if ok {
		t.Error("GetUserByEmail() found a user that was never created")
	}
}

func TestSQLiteUserRepository_EmailIsCaseSensitive(t *testing.T) {
	t.Parallel()

	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "Ada", "Ada@x.com", "hash1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, ok, err := repo.GetUserByEmail(ctx, "ada@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if ok {
		t.Error("GetUserByEmail() matched a differently-cased email")
	}
}

func TestSQLiteUserRepository_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "Ada", "ada@x.com", "hash1"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	_, err := repo.CreateUser(ctx, "Grace", "ada@x.com", "hash2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("CreateUser() error = %v, want ErrEmailTaken", err)
	}
}

func TestSQLiteUserRepository_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	repo, cfg := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "Ada", "ada@x.com", "hash1")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := user.NewSQLiteUserRepository(cfg)
	if err != nil {
		t.Fatalf("failed to reopen repository: %v", err)
	}
	defer reopened.Close()

	found, ok, err := reopened.GetUserByEmail(ctx, "ada@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if !ok || found.ID != created.ID || found.PasswordHash != "hash1" {
		t.Errorf("reopened repository lost the user: found=%v user=%+v", ok, found)
	}
}

// The unique constraint must hold under concurrent registration attempts:
// exactly one insert for the same email may succeed.
func TestSQLiteUserRepository_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	const attempts = 8

	var (
		wg        sync.WaitGroup
		m         sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := repo.CreateUser(ctx, "Ada", "ada@x.com", "hash1")

			m.Lock()
			defer m.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrEmailTaken):
				conflicts++
			default:
				t.Errorf("CreateUser() unexpected error = %v", err)
			}
		}()
	}

	wg.Wait()

	if succeeded != 1 {
		t.Errorf("concurrent CreateUser() successes = %d, want 1", succeeded)
	}
	if conflicts != attempts-1 {
		t.Errorf("concurrent CreateUser() conflicts = %d, want %d", conflicts, attempts-1)
	}
}

// Command admin manages administrator accounts from the shell. Admin status
// is the is_admin column; this tool is the only way to grant it besides the
// founding-admin bootstrap.
package main

import (
	"context"
	"fmt"
	"os"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const usage = `usage: admin <command> [args]

commands:
  promote <email>      grant admin to the user with this email
  demote <email>       revoke admin from the user with this email
  list-admins          print all admin accounts
  delete-user <email>  delete the user and all their posts
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("configuration error: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fatal("database connection failed: %v", err)
	}

	// The cache is shared with the running server; mutations made here must
	// invalidate it too.
	cache.InitRedis(cfg.RedisURL)

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "promote":
		setAdmin(ctx, users, arg(2), true)
	case "demote":
		setAdmin(ctx, users, arg(2), false)
	case "list-admins":
		listAdmins(ctx, users)
	case "delete-user":
		deleteUser(ctx, db, users, arg(2))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func arg(i int) string {
	if len(os.Args) <= i {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	return os.Args[i]
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func findByEmail(ctx context.Context, users repository.UserRepository, email string) *models.User {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		fatal("lookup failed: %v", err)
	}
	if user == nil {
		fatal("no user with email %s", email)
	}
	return user
}

func setAdmin(ctx context.Context, users repository.UserRepository, email string, admin bool) {
	user := findByEmail(ctx, users, email)
	user.IsAdmin = admin
	if err := users.Update(ctx, user); err != nil {
		fatal("update failed: %v", err)
	}
	fmt.Printf("%s (id %d) is_admin=%v\n", user.Email, user.ID, admin)
}

func listAdmins(ctx context.Context, users repository.UserRepository) {
	all, err := users.List(ctx)
	if err != nil {
		fatal("query failed: %v", err)
	}
	for _, u := range all {
		if u.IsAdmin {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.Email)
		}
	}
}

func deleteUser(ctx context.Context, db *gorm.DB, users repository.UserRepository, email string) {
	user := findByEmail(ctx, users, email)

	var postCount int64
	db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&postCount)

	if err := users.Delete(ctx, user.ID); err != nil {
		fatal("delete failed: %v", err)
	}
	fmt.Printf("deleted %s (id %d) and %d posts\n", user.Email, user.ID, postCount)
}

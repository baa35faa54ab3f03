// Command seed fills the database with demo content: either generated users
// and posts, or a hand-written YAML preset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 5, "number of generated users")
	posts := flag.Int("posts", 3, "posts per generated user")
	password := flag.String("password", "inkwell-demo", "plaintext password shared by generated users")
	preset := flag.String("preset", "", "path to a YAML preset; overrides generation")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("configuration error: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		fatal("database connection failed: %v", err)
	}

	ctx := context.Background()

	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			fatal("loading preset: %v", err)
		}
		if err := p.Apply(ctx, db); err != nil {
			fatal("applying preset: %v", err)
		}
		fmt.Printf("applied preset %s: %d users, %d posts\n", *preset, len(p.Users), len(p.Posts))
		return
	}

	factory, err := seed.NewFactory(*password)
	if err != nil {
		fatal("factory setup: %v", err)
	}
	if err := factory.Generate(ctx, db, *users, *posts); err != nil {
		fatal("seeding: %v", err)
	}
	fmt.Printf("seeded %d users with %d posts each\n", *users, *posts)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

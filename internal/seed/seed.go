package seed

import (
	"fmt"
	"log"

	"plume/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores plaintext passwords instead of hashing. Dev only;
	// makes seeding thousands of users tolerable.
	SkipBcrypt bool
	// MaxDays spreads post creation timestamps over the past N days.
	MaxDays int
}

// Seed populates the database with demo data: the built-in groups, random
// users, posts (some published into groups), comments, and follow edges.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	if err := Groups(db); err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	var groups []models.Group
	if err := db.Order("id ASC").Find(&groups).Error; err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(factory, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	follows, err := createFollows(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, posts, follows, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few fixed accounts so developers can log in without
	// digging through the generated usernames.
	if count >= 3 {
		for _, name := range []string{"plume", "editor", "test"} {
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the originals."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("no users created")
	}
	return users, nil
}

func createPosts(factory *Factory, users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[factory.rng.Intn(len(users))]

		// Roughly half the posts land in a group.
		var group *models.Group
		if len(groups) > 0 && factory.rng.Float32() < 0.5 {
			group = &groups[factory.rng.Intn(len(groups))]
		}

		post, err := factory.CreatePost(user, group)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

func createComments(factory *Factory, users []*models.User, posts []*models.Post) (int, error) {
	created := 0
	for _, post := range posts {
		n := factory.rng.Intn(4) // 0 to 3 comments per post
		for i := 0; i < n; i++ {
			user := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateComment(user, post); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createFollows(factory *Factory, users []*models.User) (int, error) {
	created := 0
	for _, follower := range users {
		n := factory.rng.Intn(5) // 0 to 4 follows per user
		for i := 0; i < n; i++ {
			following := users[factory.rng.Intn(len(users))]
			edge, err := factory.CreateFollow(follower, following)
			if err != nil {
				return created, err
			}
			if edge != nil {
				created++
			}
		}
	}
	return created, nil
}

// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"listforge/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// listPrompts are the canned prompts seeded lists claim to come from.
var listPrompts = []string{
	"Best programming languages for beginners",
	"Top productivity apps for remote work",
	"Essential books for entrepreneurs",
	"Must-visit destinations in Europe",
	"Healthy breakfast ideas",
	"Best sci-fi movies of all time",
	"Home workout exercises without equipment",
	"Tips for better time management",
	"Classic novels everyone should read",
	"Popular board games for game night",
	"Essential kitchen gadgets",
	"Best practices for web development",
	"Indoor plants for beginners",
	"Meditation techniques for stress relief",
	"Creative writing prompts",
	"Budget-friendly travel tips",
	"Healthy snack ideas",
	"Photography tips for beginners",
	"Must-have camping gear",
	"DIY home organization ideas",
}

// Seed populates the database with test data: users with profiles, lists,
// forks of public lists, and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	lists, err := createLists(f, users)
	if err != nil {
		return fmt.Errorf("failed to create lists: %w", err)
	}
	log.Printf("✓ %d lists created", len(lists))

	forks, err := createForks(f, users, lists)
	if err != nil {
		return fmt.Errorf("failed to create forks: %w", err)
	}
	log.Printf("✓ %d forks created", forks)

	likes, err := createLikes(f, users, lists)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, lists, user_profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

// createLists gives every user 2-5 lists with a 2/3 chance of being public.
func createLists(f *Factory, users []*models.User) ([]*models.List, error) {
	var lists []*models.List
	for _, user := range users {
		numLists := 2 + rand.Intn(4)
		for i := 0; i < numLists; i++ {
			list, err := f.CreateList(user)
			if err != nil {
				return nil, err
			}
			lists = append(lists, list)
		}
	}
	return lists, nil
}

// createForks has roughly two thirds of the users fork 1-3 public lists each.
func createForks(f *Factory, users []*models.User, lists []*models.List) (int, error) {
	var public []*models.List
	for _, l := range lists {
		if l.IsPublic {
			public = append(public, l)
		}
	}
	if len(public) == 0 {
		return 0, nil
	}

	count := 0
	for _, user := range users {
		if rand.Intn(3) == 0 {
			continue
		}
		numForks := 1 + rand.Intn(3)
		for i := 0; i < numForks; i++ {
			source := public[rand.Intn(len(public))]
			if source.OwnerID == user.ID {
				continue
			}
			if _, err := f.CreateFork(user, source); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// createLikes sprinkles likes across public lists. The unique index on
// (user_id, list_id) silently drops duplicate picks.
func createLikes(f *Factory, users []*models.User, lists []*models.List) (int, error) {
	var public []*models.List
	for _, l := range lists {
		if l.IsPublic {
			public = append(public, l)
		}
	}
	if len(public) == 0 {
		return 0, nil
	}

	count := 0
	for _, user := range users {
		numLikes := rand.Intn(6)
		for i := 0; i < numLikes; i++ {
			list := public[rand.Intn(len(public))]
			created, err := f.CreateLike(user, list)
			if err != nil {
				return count, err
			}
			if created {
				count++
			}
		}
	}
	return count, nil
}

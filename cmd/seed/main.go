// Command main populates a development graph with fake users, posts,
// follows, likes and tags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"murmur/internal/config"
	"murmur/internal/graph"
	"murmur/internal/models"
	"murmur/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
		rand.Seed(*seed)
	}

	log.Println("Graph seeder")
	log.Printf("Target: %d users, %d posts\n", *numUsers, *numPosts)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := graph.NewStore(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		log.Fatalf("Failed to create graph store: %v", err)
	}
	ctx := context.Background()
	defer store.Close(ctx)

	if err := store.VerifyConnectivity(ctx); err != nil {
		log.Fatalf("Graph store unreachable: %v", err)
	}

	userRepo := repository.NewUserRepository(store)
	followRepo := repository.NewFollowRepository(store)
	postRepo := repository.NewPostRepository(store)
	tagRepo := repository.NewTagRepository(store)

	users := make([]models.User, 0, *numUsers)
	for i := 0; i < *numUsers; i++ {
		username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", i)
		user := models.User{
			UUID:              uuid.NewString(),
			Username:          username,
			DisplayedUsername: gofakeit.Name(),
			Email:             gofakeit.Email(),
			Description:       gofakeit.Sentence(8),
			AvatarURL:         gofakeit.ImageURL(128, 128),
			CreationDate:      gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now()),
			Roles:             []string{"ROLE_USER"},
		}
		if err := userRepo.Create(ctx, &user); err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Each user follows a handful of others.
	follows := 0
	for _, user := range users {
		for i := 0; i < rand.Intn(8)+2; i++ {
			target := users[rand.Intn(len(users))]
			if target.UUID == user.UUID {
				continue
			}
			if err := followRepo.Upsert(ctx, user.UUID, target.UUID); err != nil {
				log.Fatalf("Follow seeding failed: %v", err)
			}
			follows++
		}
	}
	log.Printf("Created %d follows", follows)

	tagNames := []string{"music", "golang", "news", "art", "food", "travel", "sports", "movies"}
	posts := make([]models.Post, 0, *numPosts)
	for i := 0; i < *numPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			UUID:         uuid.NewString(),
			Content:      gofakeit.Sentence(rand.Intn(15) + 3),
			CreationDate: gofakeit.DateRange(time.Now().AddDate(0, 0, -10), time.Now()),
			AuthorUUID:   author.UUID,
			Kind:         models.PostKindPlain,
		}

		// Make a share of the posts responses or quotes of earlier ones.
		if len(posts) > 0 {
			switch rand.Intn(5) {
			case 0:
				post.Kind = models.PostKindResponse
				post.TargetUUID = posts[rand.Intn(len(posts))].UUID
			case 1:
				post.Kind = models.PostKindQuote
				post.TargetUUID = posts[rand.Intn(len(posts))].UUID
			}
		}

		if err := postRepo.Create(ctx, &post); err != nil {
			log.Fatalf("Post seeding failed: %v", err)
		}
		posts = append(posts, post)

		if rand.Intn(3) == 0 {
			name := tagNames[rand.Intn(len(tagNames))]
			if err := tagRepo.Attach(ctx, name, uuid.NewString(), post.UUID); err != nil {
				log.Fatalf("Tag seeding failed: %v", err)
			}
		}
	}
	log.Printf("Created %d posts", len(posts))

	likes := 0
	for _, user := range users {
		for i := 0; i < rand.Intn(10); i++ {
			post := posts[rand.Intn(len(posts))]
			at := post.CreationDate.Add(time.Duration(rand.Intn(3600)) * time.Second)
			if now := time.Now(); at.After(now) {
				at = now
			}
			if err := postRepo.Like(ctx, user.UUID, post.UUID, at); err != nil {
				log.Fatalf("Like seeding failed: %v", err)
			}
			likes++
		}
	}
	log.Printf("Created %d likes", likes)

	log.Println("All done! The graph is populated with test data.")
}

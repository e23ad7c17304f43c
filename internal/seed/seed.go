// Package seed fills a development database with fake users, ideas, comments, votes and ads.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"ideaforge/internal/models"
	"ideaforge/internal/services"

	"github.com/brianvoe/gofakeit/v6"
)

type Options struct {
	Users           int
	IdeasPerUser    int
	CommentsPerIdea int
	Ads             int
	Seed            int64
}

func DefaultOptions() Options {
	return Options{
		Users:           8,
		IdeasPerUser:    3,
		CommentsPerIdea: 4,
		Ads:             4,
		Seed:            42,
	}
}

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

type Summary struct {
	Users    int
	Ideas    int
	Comments int
	Votes    int
	Ads      int
}

// Run seeds through the regular services so votes move credits exactly as they would in production.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	faker := gofakeit.New(opts.Seed)
	rng := rand.New(rand.NewSource(opts.Seed))
	sum := &Summary{}

	users, err := services.NewUserService(opts.Users+1, time.Minute)
	if err != nil {
		return nil, err
	}
	ideaSvc := services.NewIdeaService()
	commentSvc := services.NewCommentService()
	voteSvc := services.NewVoteService()
	adSvc := services.NewAdService()

	var people []*models.User
	for i := 0; i < opts.Users; i++ {
		name := faker.Name()
		email := fmt.Sprintf("%s.%d@example.com", strings.ToLower(faker.Username()), i)
		user, err := users.Signup(ctx, services.SignupInput{Name: name, Email: email, Password: DefaultPassword})
		if err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		people = append(people, user)
		sum.Users++
	}
	if len(people) == 0 {
		return sum, nil
	}

	var ideas []*models.Idea
	for _, author := range people {
		for j := 0; j < opts.IdeasPerUser; j++ {
			idea, err := ideaSvc.Create(ctx, author.ID, services.IdeaInput{
				Title:       faker.AppName() + ": " + faker.HipsterSentence(4),
				Description: truncate(faker.Paragraph(1, 3, 12, " "), services.MaxDescriptionLength),
				Tags:        []string{faker.BuzzWord(), faker.HackerNoun(), faker.AppName()},
			})
			if err != nil {
				return nil, fmt.Errorf("seed idea: %w", err)
			}
			ideas = append(ideas, idea)
			sum.Ideas++
		}
	}

	for _, idea := range ideas {
		var thread []*models.Comment
		for k := 0; k < opts.CommentsPerIdea; k++ {
			in := services.CommentInput{Body: faker.Sentence(rng.Intn(15) + 3)}
			if len(thread) > 0 && rng.Intn(2) == 0 {
				parent := thread[rng.Intn(len(thread))]
				if parent.Depth < services.MaxCommentDepth {
					in.ParentID = &parent.ID
				}
			}
			comment, err := commentSvc.Create(ctx, idea.ID, people[rng.Intn(len(people))].ID, in)
			if err != nil {
				return nil, fmt.Errorf("seed comment: %w", err)
			}
			thread = append(thread, comment)
			sum.Comments++
		}

		for _, voter := range people {
			if voter.ID == idea.AuthorID || rng.Intn(3) == 0 {
				continue
			}
			voteType := services.VoteUp
			if rng.Intn(4) == 0 {
				voteType = services.VoteDown
			}
			if _, err := voteSvc.CastIdeaVote(ctx, idea.ID, voter.ID, voteType); err != nil {
				return nil, fmt.Errorf("seed vote: %w", err)
			}
			sum.Votes++
		}
	}

	credits := services.NewCreditService()
	for i := 0; i < opts.Ads; i++ {
		owner := people[i%len(people)]
		balance, err := credits.Balance(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if balance < 1 {
			continue
		}
		adType := models.AdTypeSquare
		if i%2 == 0 {
			adType = models.AdTypeBanner
		}
		_, err = adSvc.Create(ctx, owner.ID, services.AdInput{
			ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/600/300", faker.UUID()),
			LinkURL:      faker.URL(),
			Type:         adType,
			CreditsSpent: 1 + rng.Intn(balance),
		})
		if err != nil {
			return nil, fmt.Errorf("seed ad: %w", err)
		}
		sum.Ads++
	}

	slog.InfoContext(ctx, "seed complete", "users", sum.Users, "ideas", sum.Ideas, "comments", sum.Comments, "votes", sum.Votes, "ads", sum.Ads)
	return sum, nil
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

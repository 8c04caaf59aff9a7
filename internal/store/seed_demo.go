package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/fafcommunity/fafwiki/internal/model"
	"github.com/fafcommunity/fafwiki/internal/util"
)

// SeedDemo populates the database with demo editors, teams, rosters, replay
// reviews, and the home page navigation grid. It is idempotent: if any teams
// already exist it does nothing. Gated by FAFWIKI_DO_SEED.
func SeedDemo(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	count, err := queries.CountTeams(ctx)
	if err != nil {
		return fmt.Errorf("counting teams: %w", err)
	}
	if count > 0 {
		slog.Info("demo content already present, skipping demo seed")
		return nil
	}

	if err := seedUser(ctx, queries, "editor_teams", "teams@example.com", "editor123", "teams/*"); err != nil {
		return err
	}
	if err := seedUser(ctx, queries, "editor_rules", "rules@example.com", "editor123", "rules/*"); err != nil {
		return err
	}

	if err := seedTeams(ctx, queries); err != nil {
		return err
	}
	if err := seedReviews(ctx, queries); err != nil {
		return err
	}
	if err := seedHomeNavigation(ctx, queries); err != nil {
		return err
	}

	// Pre-create the well-known rules pages so the rules index has targets
	for _, slug := range []string{"rules/general-rules", "rules/vault-rules", "rules/chat-rules"} {
		title := util.Humanize(slug[len("rules/"):])
		if _, err := ensurePage(ctx, queries, slug, title); err != nil {
			return err
		}
	}

	slog.Info("demo content seeded")
	return nil
}

func seedTeams(ctx context.Context, queries *Queries) error {
	teams := []struct {
		name string
		desc string
	}{
		{"Trainer Team", "Dedicated volunteers who help new players improve through replay analysis and coaching sessions."},
		{"Promotions Team", "Manages social media and promotional content to grow the playerbase."},
		{"FAF Live Team", "Casters who stream and commentate matches, tournaments, and special events."},
		{"Tournament Team", "Organizes competitive tournaments from weekly events to championships."},
		{"Matchmaking Team", "Maintains the matchmaking system, ladder pools, and rating algorithms."},
		{"Balance Team", "Responsible for balance patches and fair gameplay across all factions."},
		{"Games Team", "Core game development: bug fixes, features, and the game patch."},
		{"Creative Team", "Creates artwork, UI designs, map assets, and other visual content."},
		{"Moderation Team", "Maintains a healthy community by enforcing rules and resolving disputes."},
		{"DevOps Team", "Keeps the infrastructure running: servers, databases, deployments."},
		{"Campaign Team", "Develops and maintains the co-op campaign missions."},
	}

	for i, td := range teams {
		team, err := queries.CreateTeam(ctx, CreateTeamParams{
			Name:        td.name,
			Slug:        util.Slugify(td.name[:len(td.name)-len(" Team")]),
			Description: util.NullStringFromValue(td.desc),
			Position:    int64(i),
		})
		if err != nil {
			return fmt.Errorf("creating team %s: %w", td.name, err)
		}

		if team.Slug == "trainer" {
			if err := seedTrainerRoster(ctx, queries, team.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func seedTrainerRoster(ctx context.Context, queries *Queries, teamID int64) error {
	trainers := []struct {
		name string
		role string
		desc string
	}{
		{"Morax", "Head Trainer", "Specializes in economy and macro strategy"},
		{"Tagada", "Senior Trainer", "Expert in aggressive play and timing attacks"},
		{"Blackheart", "Trainer", "Focuses on air gameplay and micro"},
		{"Blodir", "Trainer", "Naval specialist and map awareness"},
		{"Farms", "Trainer", "ACU play and early game optimization"},
	}

	for i, tr := range trainers {
		if _, err := queries.CreateTeamMember(ctx, CreateTeamMemberParams{
			TeamID:      teamID,
			Name:        tr.name,
			Role:        util.NullStringFromValue(tr.role),
			Description: util.NullStringFromValue(tr.desc),
			Position:    int64(i),
		}); err != nil {
			return fmt.Errorf("creating trainer %s: %w", tr.name, err)
		}
	}

	return nil
}

func seedReviews(ctx context.Context, queries *Queries) error {
	reviews := []struct {
		title    string
		gamemode string
		mapName  string
		author   string
		html     string
	}{
		{
			"1v1 Opening Analysis: UEF vs Cybran", "1v1", "Dual Gap", "Morax",
			"<p>This replay showcases excellent early game decision making by the UEF player. " +
				"The critical moment came at 8:30 when UEF correctly identified the Mantis push.</p>",
		},
		{
			"Team Game Coordination Guide", "4v4", "Setons Clutch", "Tagada",
			"<p>This 4v4 demonstrates proper team coordination: a clear naval/air/land split " +
				"from the start and a coordinated experimental timing at 25 minutes.</p>",
		},
		{
			"Seraphim T2 Push Timing", "1v1", "Adaptive Thule", "Blackheart",
			"<p>Perfect example of the devastating Seraphim T2 push: optimal transition at " +
				"6:30 and Ilshavoh positioning for maximum raid potential.</p>",
		},
	}

	now := time.Now()
	for i, rv := range reviews {
		if _, err := queries.CreateReplayReview(ctx, CreateReplayReviewParams{
			Title:       rv.title,
			ContentHtml: rv.html,
			Gamemode:    util.NullStringFromValue(rv.gamemode),
			MapName:     util.NullStringFromValue(rv.mapName),
			Author:      util.NullStringFromValue(rv.author),
			PublishedAt: now.AddDate(0, 0, -(len(reviews) - i)),
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("creating review %q: %w", rv.title, err)
		}
	}

	return nil
}

func seedHomeNavigation(ctx context.Context, queries *Queries) error {
	page, err := ensurePage(ctx, queries, "home", "FAForever Wiki")
	if err != nil {
		return err
	}

	now := time.Now()
	block, err := queries.CreateContentBlock(ctx, CreateContentBlockParams{
		PageID:    page.ID,
		BlockType: model.BlockKindButtonGrid,
		SectionID: util.NullStringFromValue("main-nav"),
		Content:   "{}",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating main-nav block: %w", err)
	}

	navItems := []struct {
		label string
		desc  string
		url   string
		icon  string
	}{
		{"Getting Started", "Start your FAF journey", "/getting-started", "rocket"},
		{"Playing", "Learn to play", "/playing", "gamepad"},
		{"Rules", "Community guidelines", "/rules", "book"},
		{"FAF Teams", "Meet the teams", "/teams", "users"},
	}

	for i, item := range navItems {
		if _, err := queries.CreateButton(ctx, CreateButtonParams{
			ContentBlockID: block.ID,
			Label:          item.label,
			Description:    util.NullStringFromValue(item.desc),
			LinkUrl:        item.url,
			LinkType:       model.LinkTypeInternal,
			IconUrl:        util.NullStringFromValue(fmt.Sprintf("/static/assets/icons/%s.svg", item.icon)),
			Position:       int64(i + 1),
		}); err != nil {
			return fmt.Errorf("creating nav button %q: %w", item.label, err)
		}
	}

	return nil
}

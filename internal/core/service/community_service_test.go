package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
	"github.com/townboard/townboard-api/internal/infrastructure/db/memory"
)

type communityFixture struct {
	svc   *CommunityService
	alice domain.Principal
	bob   domain.Principal
}

func newCommunityFixture(t *testing.T) communityFixture {
	t.Helper()
	users := memory.NewUserRepository()
	ctx := context.Background()

	a, err := users.Create(ctx, &domain.User{Email: "alice@example.com", DisplayName: "Alice", Role: domain.RoleLocal})
	require.NoError(t, err)
	b, err := users.Create(ctx, &domain.User{Email: "bob@example.com", DisplayName: "Bob", Role: domain.RoleBusiness})
	require.NoError(t, err)

	svc := NewCommunityService(memory.NewPostRepository(), users, nil, zerolog.Nop())
	clock := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return communityFixture{
		svc:   svc,
		alice: domain.Principal{UserID: a.ID, Role: a.Role},
		bob:   domain.Principal{UserID: b.ID, Role: b.Role},
	}
}

func rideInput() ports.CreatePostInput {
	return ports.CreatePostInput{
		Type:       string(domain.PostRideShare),
		Town:       "Canmore",
		Title:      "Ride to Calgary",
		Body:       "Leaving at 7, two seats",
		TargetDate: "2025-11-20",
	}
}

func TestCommunityService_Create_RoundTrip(t *testing.T) {
	f := newCommunityFixture(t)
	in := rideInput()

	created, err := f.svc.Create(context.Background(), in, f.alice)
	require.NoError(t, err)
	assert.Equal(t, f.alice.UserID, created.AuthorID)
	assert.Equal(t, "Alice", created.AuthorName)

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostType(in.Type), got.Type)
	assert.Equal(t, in.Town, got.Town)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Body, got.Body)
	assert.Equal(t, in.TargetDate, got.TargetDate)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Replies)
}

func TestCommunityService_TextIsStoredVerbatim(t *testing.T) {
	f := newCommunityFixture(t)
	ctx := context.Background()
	in := rideInput()
	in.Title = " Icy &amp; slick < 1A "
	in.Body = "  &lt;b&gt;chains&lt;/b&gt; advised"

	created, err := f.svc.Create(ctx, in, f.alice)
	require.NoError(t, err)

	replied, err := f.svc.Reply(ctx, created.ID, " see you at 7 & bring snacks <3 ", f.bob)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Body, got.Body)
	require.Len(t, got.Replies, 1)
	assert.Equal(t, replied.Replies[0].Body, got.Replies[0].Body)
	assert.Equal(t, " see you at 7 & bring snacks <3 ", got.Replies[0].Body)
}

func TestCommunityService_RejectsMarkup(t *testing.T) {
	f := newCommunityFixture(t)
	ctx := context.Background()

	in := rideInput()
	in.Body = `Two seats<img src=x onerror="alert(1)">`
	_, err := f.svc.Create(ctx, in, f.alice)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	post, err := f.svc.Create(ctx, rideInput(), f.alice)
	require.NoError(t, err)

	title := "<b>Ride</b>"
	_, err = f.svc.Update(ctx, post.ID, domain.PostPatch{Title: &title}, f.alice)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Reply(ctx, post.ID, "<script>steal()</script>", f.bob)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ride to Calgary", got.Title)
	assert.Empty(t, got.Replies)
}

func TestCommunityService_Create_AnyRole(t *testing.T) {
	f := newCommunityFixture(t)

	_, err := f.svc.Create(context.Background(), rideInput(), f.bob)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), rideInput(), domain.Principal{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.svc.Create(context.Background(), rideInput(), domain.Principal{UserID: "ghost", Role: domain.RoleLocal})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCommunityService_Create_Validation(t *testing.T) {
	f := newCommunityFixture(t)

	for name, mutate := range map[string]func(*ports.CreatePostInput){
		"bad type":   func(in *ports.CreatePostInput) { in.Type = "lostAndFound" },
		"no town":    func(in *ports.CreatePostInput) { in.Town = "" },
		"no title":   func(in *ports.CreatePostInput) { in.Title = "  " },
		"no body":    func(in *ports.CreatePostInput) { in.Body = "" },
		"bad target": func(in *ports.CreatePostInput) { in.TargetDate = "tomorrow" },
		"no target":  func(in *ports.CreatePostInput) { in.TargetDate = "" },
	} {
		t.Run(name, func(t *testing.T) {
			in := rideInput()
			mutate(&in)
			_, err := f.svc.Create(context.Background(), in, f.alice)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCommunityService_List_FilterNewestFirst(t *testing.T) {
	f := newCommunityFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, rideInput(), f.alice)
	require.NoError(t, err)
	road := rideInput()
	road.Type = string(domain.PostRoadConditions)
	road.Town = "Banff"
	_, err = f.svc.Create(ctx, road, f.alice)
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, rideInput(), f.bob)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, ports.PostFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rides, err := f.svc.List(ctx, ports.PostFilter{Type: domain.PostRideShare, Town: "Canmore"})
	require.NoError(t, err)
	require.Len(t, rides, 2)
	assert.Equal(t, second.ID, rides[0].ID)
	assert.Equal(t, first.ID, rides[1].ID)

	_, err = f.svc.List(ctx, ports.PostFilter{Type: "gossip"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommunityService_OwnershipEnforced(t *testing.T) {
	f := newCommunityFixture(t)
	ctx := context.Background()
	post, err := f.svc.Create(ctx, rideInput(), f.alice)
	require.NoError(t, err)

	title := "Changed"
	_, err = f.svc.Update(ctx, post.ID, domain.PostPatch{Title: &title}, f.bob)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, f.svc.Delete(ctx, post.ID, f.bob), domain.ErrForbidden)

	unchanged, err := f.svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ride to Calgary", unchanged.Title)

	updated, err := f.svc.Update(ctx, post.ID, domain.PostPatch{Title: &title}, f.alice)
	require.NoError(t, err)
	assert.Equal(t, "Changed", updated.Title)
	assert.Equal(t, post.Body, updated.Body)

	require.NoError(t, f.svc.Delete(ctx, post.ID, f.alice))
	_, err = f.svc.Get(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommunityService_RepliesAndLikes(t *testing.T) {
	f := newCommunityFixture(t)
	ctx := context.Background()
	post, err := f.svc.Create(ctx, rideInput(), f.alice)
	require.NoError(t, err)

	replied, err := f.svc.Reply(ctx, post.ID, "I'll take a seat", f.bob)
	require.NoError(t, err)
	require.Len(t, replied.Replies, 1)
	assert.Equal(t, f.bob.UserID, replied.Replies[0].AuthorID)
	assert.Equal(t, "Bob", replied.Replies[0].AuthorName)
	assert.NotEmpty(t, replied.Replies[0].ID)

	replied, err = f.svc.Reply(ctx, post.ID, "Great, see you", f.alice)
	require.NoError(t, err)
	require.Len(t, replied.Replies, 2)
	assert.Equal(t, "Great, see you", replied.Replies[1].Body)

	_, err = f.svc.Reply(ctx, post.ID, "   ", f.bob)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	liked, err := f.svc.Like(ctx, post.ID, f.bob)
	require.NoError(t, err)
	liked, err = f.svc.Like(ctx, post.ID, f.bob)
	require.NoError(t, err)
	assert.Equal(t, []string{f.bob.UserID}, liked.Likes)

	unliked, err := f.svc.Unlike(ctx, post.ID, f.bob)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)

	_, err = f.svc.Like(ctx, "missing", f.bob)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

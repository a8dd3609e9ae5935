package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/pkg/datefmt"
)

const (
	testUserID = "8f14e45f-ceea-467f-a0e6-7f6c2d4a1b01"
	testPostID = "c9f0f895-fb98-4b91-9c3d-3b2a1e0d7f02"
)

func newTestPostService(graph *stubGraph, media *stubMediaStore) *PostService {
	svc := NewPostService(graph, media, zerolog.Nop())
	fixed := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.dates = datefmt.New(svc.now)
	return svc
}

func TestPostService_CreatePost(t *testing.T) {
	graph := newStubGraph()
	svc := newTestPostService(graph, newStubMediaStore())

	res, err := svc.CreatePost(context.Background(), ports.CreatePostInput{
		UserID:  testUserID,
		Media:   "https://media.test/photogram/posts/a.jpg",
		Caption: "sunset",
	})
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if res.AffectedRows != 1 {
		t.Fatalf("expected 1 affected row, got %d", res.AffectedRows)
	}
	if res.DateLabel != "MARCH 5" || res.AgeLabel != "0s" {
		t.Fatalf("unexpected labels: %q %q", res.DateLabel, res.AgeLabel)
	}
	if len(graph.posts) != 1 || graph.posts[0].Caption != "sunset" {
		t.Fatalf("unexpected posts: %+v", graph.posts)
	}
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	svc := newTestPostService(newStubGraph(), newStubMediaStore())

	if _, err := svc.CreatePost(context.Background(), ports.CreatePostInput{UserID: "nope", Media: "x"}); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.CreatePost(context.Background(), ports.CreatePostInput{UserID: testUserID}); !errors.Is(err, domain.ErrMissingMedia) {
		t.Fatalf("expected ErrMissingMedia, got %v", err)
	}
}

func TestPostService_CreateComment(t *testing.T) {
	graph := newStubGraph()
	svc := newTestPostService(graph, newStubMediaStore())

	if _, err := svc.CreateComment(context.Background(), ports.CreateCommentInput{PostID: testPostID, UserID: testUserID, Content: "   "}); !errors.Is(err, domain.ErrEmptyComment) {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}

	if _, err := svc.CreateComment(context.Background(), ports.CreateCommentInput{PostID: testPostID, UserID: testUserID, Content: " nice shot "}); err != nil {
		t.Fatalf("CreateComment returned error: %v", err)
	}
	if len(graph.comments) != 1 || graph.comments[0].Content != "nice shot" {
		t.Fatalf("unexpected comments: %+v", graph.comments)
	}
}

func TestPostService_EditProfile(t *testing.T) {
	graph := newStubGraph()
	svc := newTestPostService(graph, newStubMediaStore())

	in := ports.EditProfileInput{ID: testUserID, Name: "Jane Doe", Username: "jane doe", Email: "jane@example.com"}
	if _, err := svc.EditProfile(context.Background(), in); !errors.Is(err, domain.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}

	in.Username = "jane.doe"
	if _, err := svc.EditProfile(context.Background(), in); err != nil {
		t.Fatalf("EditProfile returned error: %v", err)
	}
	if len(graph.profiles) != 1 || graph.profiles[0].Username != "jane.doe" {
		t.Fatalf("unexpected profiles: %+v", graph.profiles)
	}

	graph.err = domain.ErrUsernameTaken
	if _, err := svc.EditProfile(context.Background(), in); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestPostService_EditAvatar(t *testing.T) {
	graph := newStubGraph()
	media := newStubMediaStore()
	svc := newTestPostService(graph, media)

	res, err := svc.EditAvatar(context.Background(), ports.UploadInput{
		UserID:      testUserID,
		Filename:    "Me.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("\x89PNG"),
	})
	if err != nil {
		t.Fatalf("EditAvatar returned error: %v", err)
	}
	if !strings.HasPrefix(res.Key, "avatars/"+testUserID+"/") || !strings.HasSuffix(res.Key, ".png") {
		t.Fatalf("unexpected key: %s", res.Key)
	}
	if graph.avatars[testUserID] != res.URL {
		t.Fatalf("expected avatar %s, got %s", res.URL, graph.avatars[testUserID])
	}
	if string(media.objects[res.Key]) != "\x89PNG" {
		t.Fatalf("unexpected stored body")
	}
}

func TestPostService_UploadMedia_RejectsUnsupportedType(t *testing.T) {
	media := newStubMediaStore()
	svc := newTestPostService(newStubGraph(), media)

	_, err := svc.UploadMedia(context.Background(), ports.UploadInput{
		UserID:      testUserID,
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("hi"),
	})
	if !errors.Is(err, domain.ErrUnsupportedMedia) {
		t.Fatalf("expected ErrUnsupportedMedia, got %v", err)
	}
	if len(media.objects) != 0 {
		t.Fatalf("expected nothing to be stored")
	}
}

func TestPostService_ApplyReaction(t *testing.T) {
	cases := []struct {
		kind, action, want string
	}{
		{"like", "add", "likePost"},
		{"like", "remove", "unlikePost"},
		{"save", "add", "savePost"},
		{"save", "remove", "unsavePost"},
	}
	for _, tc := range cases {
		t.Run(tc.kind+"/"+tc.action, func(t *testing.T) {
			graph := newStubGraph()
			svc := newTestPostService(graph, newStubMediaStore())
			err := svc.ApplyReaction(context.Background(), ports.ReactionInput{Kind: tc.kind, Action: tc.action, PostID: testPostID, UserID: testUserID})
			if err != nil {
				t.Fatalf("ApplyReaction returned error: %v", err)
			}
			if len(graph.calls) != 1 || graph.calls[0] != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, graph.calls)
			}
		})
	}
}

func TestPostService_ApplyReaction_Invalid(t *testing.T) {
	svc := newTestPostService(newStubGraph(), newStubMediaStore())
	err := svc.ApplyReaction(context.Background(), ports.ReactionInput{Kind: "share", Action: "add", PostID: testPostID, UserID: testUserID})
	if !errors.Is(err, domain.ErrInvalidReaction) {
		t.Fatalf("expected ErrInvalidReaction, got %v", err)
	}
}

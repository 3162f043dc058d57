package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/message-board/internal/mocks"
	"github.com/message-board/internal/models"
	"github.com/message-board/internal/repository"
	"github.com/message-board/internal/service"
	"github.com/message-board/internal/validation"
	"github.com/rs/zerolog"
)

func setupBoardService() (service.BoardService, *mocks.MockMessageRepository, *mocks.MockCommentRepository) {
	messageRepo := mocks.NewMockMessageRepository()
	commentRepo := mocks.NewMockCommentRepository()

	repos := &repository.Repositories{
		Message: messageRepo,
		Comment: commentRepo,
	}
	services := service.NewServices(repos, zerolog.Nop())

	return services.Board, messageRepo, commentRepo
}

func strPtr(s string) *string { return &s }

func TestBoardService_ListMessages(t *testing.T) {
	board, messageRepo, _ := setupBoardService()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	messageRepo.Add(strPtr("alice"), "oldest", base)
	messageRepo.Add(nil, "newest", base.Add(2*time.Hour))
	messageRepo.Add(strPtr("bob"), "middle", base.Add(time.Hour))

	messages, err := board.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}

	want := []string{"newest", "middle", "oldest"}
	if len(messages) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(messages))
	}
	for i, body := range want {
		if messages[i].Body != body {
			t.Errorf("Position %d: expected %q, got %q", i, body, messages[i].Body)
		}
	}
}

func TestBoardService_ListMessages_StoreError(t *testing.T) {
	board, messageRepo, _ := setupBoardService()
	cause := errors.New("dial tcp: connection refused")
	messageRepo.ListError = cause

	_, err := board.ListMessages(context.Background())

	var storeErr *service.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Expected *StoreError, got %T (%v)", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("StoreError should unwrap to the driver error")
	}
	if strings.Contains(storeErr.Error(), "connection refused") {
		t.Errorf("Client message leaks driver detail: %q", storeErr.Error())
	}
	if !strings.Contains(storeErr.Detail(), "connection refused") {
		t.Errorf("Detail should carry the cause, got %q", storeErr.Detail())
	}
}

func TestBoardService_ListCommentsFor_EmptySetSkipsStore(t *testing.T) {
	board, _, commentRepo := setupBoardService()

	grouped, err := board.ListCommentsFor(context.Background(), []int64{})
	if err != nil {
		t.Fatalf("ListCommentsFor failed: %v", err)
	}
	if grouped == nil || len(grouped) != 0 {
		t.Errorf("Expected empty mapping, got %v", grouped)
	}
	if commentRepo.ListCalls != 0 {
		t.Errorf("Expected no store call, got %d", commentRepo.ListCalls)
	}
}

func TestBoardService_ListCommentsFor_OnlyRequestedIDs(t *testing.T) {
	board, _, commentRepo := setupBoardService()
	ctx := context.Background()

	for _, c := range []struct {
		messageID int64
		body      string
	}{
		{1, "one-a"}, {2, "two-a"}, {3, "three-a"}, {1, "one-b"}, {2, "two-b"}, {1, "one-c"},
	} {
		if _, err := board.CreateComment(ctx, c.messageID, "", c.body); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}

	grouped, err := board.ListCommentsFor(ctx, []int64{1, 2, 2})
	if err != nil {
		t.Fatalf("ListCommentsFor failed: %v", err)
	}

	if commentRepo.ListCalls != 1 {
		t.Errorf("Expected a single batched lookup, got %d", commentRepo.ListCalls)
	}
	if _, ok := grouped[3]; ok {
		t.Error("Message 3 was not requested and must not appear")
	}

	tests := map[int64][]string{
		1: {"one-a", "one-b", "one-c"},
		2: {"two-a", "two-b"},
	}
	for id, want := range tests {
		got := grouped.For(id)
		if len(got) != len(want) {
			t.Fatalf("Message %d: expected %d comments, got %d", id, len(want), len(got))
		}
		for i := range want {
			if got[i].Body != want[i] {
				t.Errorf("Message %d position %d: expected %q, got %q", id, i, want[i], got[i].Body)
			}
			if i > 0 && got[i].CreatedAt.Before(got[i-1].CreatedAt) {
				t.Errorf("Message %d comments are not ascending by created_at", id)
			}
		}
	}
}

func TestBoardService_CreateComment(t *testing.T) {
	tests := []struct {
		name         string
		nickname     string
		body         string
		wantNickname string
		wantBody     string
	}{
		{name: "empty nickname defaults", nickname: "", body: "hello", wantNickname: "Anonymous", wantBody: "hello"},
		{name: "whitespace trimmed", nickname: "  dana ", body: "  hi there  ", wantNickname: "dana", wantBody: "hi there"},
		{name: "long nickname truncated", nickname: strings.Repeat("k", 120), body: "ok", wantNickname: strings.Repeat("k", 100), wantBody: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, _, commentRepo := setupBoardService()

			comment, err := board.CreateComment(context.Background(), 1, tt.nickname, tt.body)
			if err != nil {
				t.Fatalf("CreateComment failed: %v", err)
			}

			if comment.Nickname != tt.wantNickname {
				t.Errorf("Expected nickname %q, got %q", tt.wantNickname, comment.Nickname)
			}
			if comment.Body != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, comment.Body)
			}

			stored := commentRepo.Comments[0]
			if stored.Nickname != tt.wantNickname || stored.Body != tt.wantBody {
				t.Errorf("Persisted %q/%q, want %q/%q", stored.Nickname, stored.Body, tt.wantNickname, tt.wantBody)
			}
		})
	}
}

func TestBoardService_CreateComment_ValidationNeverReachesStore(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "whitespace only", body: "   ", wantErr: "Comment body is required."},
		{name: "too long", body: strings.Repeat("x", 241), wantErr: "Comment body exceeds 240 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, _, commentRepo := setupBoardService()

			_, err := board.CreateComment(context.Background(), 1, "eve", tt.body)

			var vErr *validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %T (%v)", err, err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
			}
			if commentRepo.CreateCalls != 0 {
				t.Errorf("Store was called %d times", commentRepo.CreateCalls)
			}
		})
	}
}

func TestBoardService_CreateComment_StoreError(t *testing.T) {
	board, _, commentRepo := setupBoardService()
	commentRepo.InsertError = errors.New("insert or update on table \"comments\" violates foreign key constraint")

	_, err := board.CreateComment(context.Background(), 404, "", "orphan")

	var storeErr *service.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Expected *StoreError, got %T (%v)", err, err)
	}
	if storeErr.Error() != "Failed to create comment" {
		t.Errorf("Unexpected client message %q", storeErr.Error())
	}
}

func TestBoardService_CreateComment_RoundTrip(t *testing.T) {
	board, _, _ := setupBoardService()
	ctx := context.Background()

	created, err := board.CreateComment(ctx, 5, "", "round trip")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("Expected store-generated created_at")
	}

	grouped, err := board.ListCommentsFor(ctx, []int64{created.MessageID})
	if err != nil {
		t.Fatalf("ListCommentsFor failed: %v", err)
	}

	fetched := grouped.For(5)
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(fetched))
	}
	if fetched[0].ID != created.ID {
		t.Errorf("Expected id %d, got %d", created.ID, fetched[0].ID)
	}
	if !fetched[0].CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at mismatch: returned %v, stored %v", created.CreatedAt, fetched[0].CreatedAt)
	}
}

func TestBoardService_Counts(t *testing.T) {
	board, messageRepo, _ := setupBoardService()
	ctx := context.Background()

	messageRepo.Add(nil, "m1", time.Now())
	messageRepo.Add(nil, "m2", time.Now())
	board.CreateComment(ctx, 1, "", "c1")

	counts, err := board.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}

	want := models.BoardCounts{Messages: 2, Comments: 1}
	if *counts != want {
		t.Errorf("Expected %+v, got %+v", want, *counts)
	}
}

package benchmark

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/message-board/internal/mocks"
	"github.com/message-board/internal/models"
	"github.com/message-board/internal/repository"
	"github.com/message-board/internal/service"
	"github.com/message-board/internal/validation"
	"github.com/message-board/internal/web"
	"github.com/rs/zerolog"
)

// BenchmarkNormalizeComment benchmarks body and nickname normalization
func BenchmarkNormalizeComment(b *testing.B) {
	body := "  " + strings.Repeat("語", 200) + "  "
	nickname := strings.Repeat("ñ", 150)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := validation.NormalizeComment(1, nickname, body); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkListCommentsFor benchmarks grouping 5000 comments across 100 messages
func BenchmarkListCommentsFor(b *testing.B) {
	commentRepo := mocks.NewMockCommentRepository()
	repos := &repository.Repositories{
		Message: mocks.NewMockMessageRepository(),
		Comment: commentRepo,
	}
	board := service.NewServices(repos, zerolog.Nop()).Board

	ctx := context.Background()
	ids := make([]int64, 100)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	for i := 0; i < 5000; i++ {
		if _, err := board.CreateComment(ctx, ids[i%len(ids)], "", fmt.Sprintf("comment %d", i)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		grouped, err := board.ListCommentsFor(ctx, ids)
		if err != nil {
			b.Fatal(err)
		}
		if len(grouped) != len(ids) {
			b.Fatalf("Expected %d groups, got %d", len(ids), len(grouped))
		}
	}
}

// BenchmarkRenderPage benchmarks rendering 50 messages with 10 comments each
func BenchmarkRenderPage(b *testing.B) {
	renderer, err := web.NewRenderer()
	if err != nil {
		b.Fatal(err)
	}

	now := time.Now()
	page := &models.Page{Comments: make(models.CommentsByMessage), CSRFToken: "token"}
	for m := int64(1); m <= 50; m++ {
		page.Messages = append(page.Messages, &models.Message{ID: m, Body: fmt.Sprintf("message %d", m), CreatedAt: now})
		for c := int64(0); c < 10; c++ {
			page.Comments[m] = append(page.Comments[m], &models.Comment{
				ID: m*100 + c, MessageID: m, Nickname: "Anonymous", Body: "reply", CreatedAt: now,
			})
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := renderer.Render(io.Discard, page); err != nil {
			b.Fatal(err)
		}
	}
}

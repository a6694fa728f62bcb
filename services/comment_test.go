package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rooluDev/goboard/apperr"
	"github.com/rooluDev/goboard/services"
)

func TestCommentLifecycle(t *testing.T) {
	env := newBoardEnv(t)
	ctx := context.Background()
	comments := services.NewCommentService(env.gw)

	post, err := env.svc.CreatePost(ctx, env.createInput())
	require.NoError(t, err)

	first, err := comments.CreateComment(ctx, post.ID, "first!")
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	_, err = comments.CreateComment(ctx, post.ID, "second")
	require.NoError(t, err)

	list, err := comments.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "first!", list[0].Text)

	require.NoError(t, comments.UpdateComment(ctx, first.ID, "first, edited"))
	got, err := comments.GetComment(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, "first, edited", got.Text)

	n, err := comments.CountComments(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	require.NoError(t, comments.DeleteComment(ctx, first.ID))
	_, err = comments.GetComment(ctx, first.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	list, err = comments.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	env := newBoardEnv(t)
	comments := services.NewCommentService(env.gw)

	_, err := comments.CreateComment(context.Background(), 12345, "hello?")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCommentTextValidation(t *testing.T) {
	env := newBoardEnv(t)
	ctx := context.Background()
	comments := services.NewCommentService(env.gw)

	post, err := env.svc.CreatePost(ctx, env.createInput())
	require.NoError(t, err)

	_, err = comments.CreateComment(ctx, post.ID, "   ")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = comments.CreateComment(ctx, post.ID, strings.Repeat("x", 301))
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = comments.UpdateComment(ctx, post.ID, "")
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateMissingComment(t *testing.T) {
	env := newBoardEnv(t)
	comments := services.NewCommentService(env.gw)

	err := comments.UpdateComment(context.Background(), 999, "nobody home")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = comments.DeleteComment(context.Background(), 999)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

package grpcserver

import (
	"context"
	"testing"

	"google.golang.org/grpc/metadata"
)

func TestWithUserID_And_UserIDFromCtx(t *testing.T) {
	t.Parallel()

	if id, ok := UserIDFromCtx(context.Background()); ok || id != "" {
		t.Fatalf("expected no user id in empty ctx")
	}

	ctx := WithUserID(context.Background(), "user-1")
	got, ok := UserIDFromCtx(ctx)
	if !ok || got != "user-1" {
		t.Fatalf("got %q ok=%v", got, ok)
	}

	if _, ok := UserIDFromCtx(WithUserID(context.Background(), "")); ok {
		t.Fatalf("expected miss on empty id")
	}

	type otherKey string
	bad := context.WithValue(context.Background(), otherKey("kv.userID"), "user-1")
	if _, ok := UserIDFromCtx(bad); ok {
		t.Fatalf("expected miss on foreign key type")
	}
}

func Test_bearerTokenFromMD_OkAndErrors(t *testing.T) {
	t.Parallel()

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer abc.def.ghi"))
	got, err := bearerTokenFromMD(ctx)
	if err != nil || got != "abc.def.ghi" {
		t.Fatalf("ok: got=%q err=%v", got, err)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic foo"))
	if _, err := bearerTokenFromMD(ctx); err == nil {
		t.Fatalf("want error on non-bearer")
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer   "))
	if _, err := bearerTokenFromMD(ctx); err == nil {
		t.Fatalf("want error on empty token")
	}

	if _, err := bearerTokenFromMD(context.Background()); err == nil {
		t.Fatalf("want error on no metadata")
	}
}

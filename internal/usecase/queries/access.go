package queries

import (
	"context"
	"encoding/hex"
	"log/slog"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/shared"
)

var (
	ErrCredentialInvalid = errs.ErrCredentialInvalid
	ErrCredentialExpired = errs.ErrCredentialExpired
	ErrWrongKind         = errs.ErrWrongKind
	ErrProductNotFound   = errs.ErrProductNotFound
)

const credentialTokenLength = 64

type AccessReadStore interface {
	FindByToken(ctx context.Context, token string) (*AccessView, error)
}

type AccessQueries interface {
	// Verify reports whether token is a live credential. It never writes.
	Verify(ctx context.Context, token string) (*AccessView, error)
	// VerifyKind is Verify plus a check that the credential unlocks kind.
	VerifyKind(ctx context.Context, token string, kind redemption.Kind) (*AccessView, error)
	DownloadURL(ctx context.Context, token string) (*DownloadView, error)
}

type accessQueriesImpl struct {
	readStore  AccessReadStore
	storage    shared.ObjectStorage
	presignTTL time.Duration
	clock      clock.Clock
}

func NewAccessQueries(readStore AccessReadStore, storage shared.ObjectStorage, presignTTL time.Duration, clk clock.Clock) AccessQueries {
	return &accessQueriesImpl{
		readStore:  readStore,
		storage:    storage,
		presignTTL: presignTTL,
		clock:      clk,
	}
}

func (q *accessQueriesImpl) Verify(ctx context.Context, token string) (*AccessView, error) {
	if !wellFormedCredential(token) {
		return nil, ErrCredentialInvalid
	}

	view, err := q.readStore.FindByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCredentialInvalid
		}
		return nil, err
	}

	if view.RedeemedAt == nil {
		return nil, ErrCredentialInvalid
	}
	if !q.clock.Now().Before(view.ExpiresAt) {
		return nil, ErrCredentialExpired
	}
	return view, nil
}

func (q *accessQueriesImpl) VerifyKind(ctx context.Context, token string, kind redemption.Kind) (*AccessView, error) {
	view, err := q.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if view.Kind != kind.String() {
		return nil, ErrWrongKind
	}
	return view, nil
}

func (q *accessQueriesImpl) DownloadURL(ctx context.Context, token string) (*DownloadView, error) {
	view, err := q.VerifyKind(ctx, token, redemption.KindDownload)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	ttl := q.presignTTL
	// The link must not outlive the credential.
	if remaining := view.ExpiresAt.Sub(now); remaining < ttl {
		ttl = remaining
	}
	if ttl < time.Second {
		return nil, ErrCredentialExpired
	}

	url, err := q.storage.PresignedGetURL(ctx, view.Resource, ttl)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		slog.Error("failed to presign download", "resource", view.Resource, "error", err.Error())
		return nil, errs.Mark(err, errs.ErrUpstream)
	}

	return &DownloadView{
		URL:       url,
		Resource:  view.Resource,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func wellFormedCredential(token string) bool {
	if len(token) != credentialTokenLength {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

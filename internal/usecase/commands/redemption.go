package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxCodeAttempts = 3

var (
	ErrTokenNotFound = errs.ErrTokenNotFound
	ErrTokenExpired  = errs.ErrTokenExpired

	ErrInvalidCode     = errs.Mark(errs.New("invalid redemption code"), errs.ErrValidation)
	ErrProductNotFound = errs.ErrProductNotFound
	ErrCodeExhausted   = errs.New("could not allocate a unique redemption code")
)

type IssueParams struct {
	Email    string
	Kind     string
	Resource string
	// Notify mails the code to Email. Admin gift codes skip it and hand the code back instead.
	Notify bool
}

type IssueResult struct {
	TokenID   uuid.UUID
	Code      string
	Email     string
	Kind      string
	Resource  string
	ExpiresAt time.Time
	Notified  bool
}

type RedeemResult struct {
	CredentialToken string
	Email           string
	Kind            string
	Resource        string
	ExpiresAt       time.Time
	// Replayed is true when an earlier redemption's credential was returned.
	Replayed bool
}

type RedemptionCommands interface {
	Issue(ctx context.Context, params IssueParams) (*IssueResult, error)
	Redeem(ctx context.Context, code string) (*RedeemResult, error)
}

type redemptionCommandsImpl struct {
	uow     shared.UnitOfWork
	storage shared.ObjectStorage
	mailer  shared.Mailer
	policy  redemption.Policy
	clock   clock.Clock
}

func NewRedemptionCommands(uow shared.UnitOfWork, storage shared.ObjectStorage, mailer shared.Mailer, policy redemption.Policy, clk clock.Clock) RedemptionCommands {
	return &redemptionCommandsImpl{
		uow:     uow,
		storage: storage,
		mailer:  mailer,
		policy:  policy,
		clock:   clk,
	}
}

func (c *redemptionCommandsImpl) Issue(ctx context.Context, params IssueParams) (*IssueResult, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	kind, err := redemption.NewKind(params.Kind)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	rawResource := params.Resource
	if kind == redemption.KindCall && strings.TrimSpace(rawResource) == "" {
		rawResource = redemption.DefaultCallResource
	}
	resource, err := redemption.NewResource(rawResource)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if kind == redemption.KindDownload {
		exists, err := c.storage.Exists(ctx, resource.String())
		if err != nil {
			return nil, errs.Mark(err, errs.ErrUpstream)
		}
		if !exists {
			return nil, ErrProductNotFound
		}
	}

	tok, err := c.insertWithFreshCode(ctx, email, kind, resource)
	if err != nil {
		return nil, err
	}

	slog.Info("redemption token issued",
		"token_id", tok.ID(),
		"code", tok.Code().Redacted(),
		"kind", tok.Kind().String(),
		"resource", tok.Resource().String())

	result := &IssueResult{
		TokenID:   tok.ID(),
		Code:      tok.Code().Display(),
		Email:     tok.Email().Value(),
		Kind:      tok.Kind().String(),
		Resource:  tok.Resource().String(),
		ExpiresAt: tok.ExpiresAt(),
	}

	if params.Notify {
		mail := shared.RedemptionMail{
			To:        result.Email,
			Code:      result.Code,
			Kind:      result.Kind,
			Resource:  result.Resource,
			ExpiresAt: result.ExpiresAt,
		}
		// The token stays valid; the user can request another mail.
		if err := c.mailer.SendRedemptionCode(ctx, mail); err != nil {
			slog.Error("failed to send redemption code", "token_id", tok.ID(), "error", err.Error())
			return nil, errs.Mark(err, errs.ErrUpstream)
		}
		result.Notified = true
	}

	return result, nil
}

func (c *redemptionCommandsImpl) insertWithFreshCode(ctx context.Context, email user.Email, kind redemption.Kind, resource redemption.Resource) (*redemption.Token, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := redemption.GenerateCode()
		if err != nil {
			return nil, err
		}
		tok, err := redemption.Issue(code, email, kind, resource, c.policy.TokenTTL(kind), c.clock.Now())
		if err != nil {
			return nil, err
		}

		err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Redemptions().Create(ctx, tok)
		})
		if err == nil {
			return tok, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		slog.Warn("redemption code collision, retrying", "attempt", attempt+1)
	}
	return nil, ErrCodeExhausted
}

// Redeem exchanges a code for an access credential.
//
// The first caller flips the token to used and mints a credential in the same
// transaction. Any later or concurrent caller gets that same credential back
// while it is still valid. Once the token or its credential has expired the
// result is ErrTokenExpired; a new credential is never minted.
func (c *redemptionCommandsImpl) Redeem(ctx context.Context, rawCode string) (*RedeemResult, error) {
	code, err := redemption.ParseCode(rawCode)
	if err != nil {
		return nil, ErrInvalidCode
	}
	now := c.clock.Now()

	var result *RedeemResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		tok, err := tx.Redemptions().ClaimUnused(ctx, code, now)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}

		cred, err := redemption.Mint(tok, c.policy.CredentialTTL(tok.Kind()), now)
		if err != nil {
			return err
		}
		if err := tx.Redemptions().CreateCredential(ctx, cred); err != nil {
			return err
		}

		result = toRedeemResult(tok, cred, false)
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if result != nil {
		slog.Info("redemption token redeemed", "code", code.Redacted(), "kind", result.Kind)
		return result, nil
	}

	return c.replay(ctx, code, now)
}

func (c *redemptionCommandsImpl) replay(ctx context.Context, code redemption.Code, now time.Time) (*RedeemResult, error) {
	reads := c.uow.CommandReads()

	tok, err := reads.TokenByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if tok.IsExpiredAt(now) {
		return nil, ErrTokenExpired
	}
	if !tok.IsUsed() {
		// Unused and live should have been claimed above.
		return nil, errs.Mark(errs.New("redemption token in unexpected state"), errs.ErrDatabaseOperationFailed)
	}

	cred, err := reads.CredentialByRedemptionID(ctx, tok.ID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTokenExpired
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !cred.IsValidAt(now) {
		slog.Info("redemption replay after credential expiry", "code", code.Redacted())
		return nil, ErrTokenExpired
	}

	return toRedeemResult(tok, cred, true), nil
}

func toRedeemResult(tok *redemption.Token, cred *redemption.Credential, replayed bool) *RedeemResult {
	return &RedeemResult{
		CredentialToken: cred.Token(),
		Email:           cred.Email().Value(),
		Kind:            tok.Kind().String(),
		Resource:        tok.Resource().String(),
		ExpiresAt:       cred.ExpiresAt(),
		Replayed:        replayed,
	}
}

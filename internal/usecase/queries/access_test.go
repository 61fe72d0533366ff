//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/infra"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/errs"
	"coachdesk/internal/usecase/queries"
	"coachdesk/tests/common/builder"
	queriesmock "coachdesk/tests/mock/queries"
	sharedmock "coachdesk/tests/mock/shared"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AccessQueriesTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	readStore *queriesmock.MockAccessReadStore
	storage   *sharedmock.MockObjectStorage
	clock     *clock.MockClock
	q         queries.AccessQueries
	token     string
}

func (s *AccessQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockAccessReadStore(s.ctrl)
	s.storage = sharedmock.NewMockObjectStorage(s.ctrl)
	s.clock = clock.NewMockClock(builder.BaseTime)
	s.q = queries.NewAccessQueries(s.readStore, s.storage, 15*time.Minute, s.clock)
	s.token = builder.NewAccessBuilder().Token
}

func TestAccessQueriesSuite(t *testing.T) {
	suite.Run(t, new(AccessQueriesTestSuite))
}

func (s *AccessQueriesTestSuite) TestVerify() {
	s.Run("success: live credential", func() {
		view := builder.NewAccessBuilder().BuildView()
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(view, nil)

		got, err := s.q.Verify(context.Background(), s.token)
		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("error: malformed tokens are rejected without a lookup", func() {
		for _, tok := range []string{"", "short", builder.NewAccessBuilder().Token[:63] + "z"} {
			_, err := s.q.Verify(context.Background(), tok)
			s.ErrorIs(err, queries.ErrCredentialInvalid, tok)
		}
	})

	s.Run("error: unknown token", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).
			Return(nil, infra.WrapRepoErr("credential", nil, infra.KindNotFound))

		_, err := s.q.Verify(context.Background(), s.token)
		s.ErrorIs(err, queries.ErrCredentialInvalid)
	})

	s.Run("error: expiry is exclusive", func() {
		view := builder.NewAccessBuilder().ExpiringAt(builder.BaseTime).BuildView()
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(view, nil)

		_, err := s.q.Verify(context.Background(), s.token)
		s.ErrorIs(err, queries.ErrCredentialExpired)
	})

	s.Run("error: credential without redemption time", func() {
		view := builder.NewAccessBuilder().BuildView()
		view.RedeemedAt = nil
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(view, nil)

		_, err := s.q.Verify(context.Background(), s.token)
		s.ErrorIs(err, queries.ErrCredentialInvalid)
	})
}

func (s *AccessQueriesTestSuite) TestVerifyKind() {
	s.Run("error: download credential cannot book calls", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(builder.NewAccessBuilder().BuildView(), nil)

		_, err := s.q.VerifyKind(context.Background(), s.token, redemption.KindCall)
		s.ErrorIs(err, queries.ErrWrongKind)
	})

	s.Run("success: matching kind", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(builder.NewAccessBuilder().AsCall().BuildView(), nil)

		view, err := s.q.VerifyKind(context.Background(), s.token, redemption.KindCall)
		s.Require().NoError(err)
		s.Equal("call", view.Kind)
	})
}

func (s *AccessQueriesTestSuite) TestDownloadURL() {
	s.Run("success: link lives for the presign ttl", func() {
		view := builder.NewAccessBuilder().BuildView()
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(view, nil)
		s.storage.EXPECT().PresignedGetURL(gomock.Any(), view.Resource, 15*time.Minute).
			Return("https://minio.local/products/guides/starter.pdf?X-Amz-Signature=abc", nil)

		got, err := s.q.DownloadURL(context.Background(), s.token)
		s.Require().NoError(err)
		s.Contains(got.URL, "X-Amz-Signature")
		s.Equal(view.Resource, got.Resource)
		s.Equal(builder.BaseTime.Add(15*time.Minute), got.ExpiresAt)
	})

	s.Run("success: link never outlives the credential", func() {
		view := builder.NewAccessBuilder().ExpiringAt(builder.BaseTime.Add(5 * time.Minute)).BuildView()
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(view, nil)
		s.storage.EXPECT().PresignedGetURL(gomock.Any(), view.Resource, 5*time.Minute).Return("https://example/x", nil)

		got, err := s.q.DownloadURL(context.Background(), s.token)
		s.Require().NoError(err)
		s.Equal(view.ExpiresAt, got.ExpiresAt)
	})

	s.Run("error: call credential", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(builder.NewAccessBuilder().AsCall().BuildView(), nil)

		_, err := s.q.DownloadURL(context.Background(), s.token)
		s.ErrorIs(err, queries.ErrWrongKind)
	})

	s.Run("error: product removed from storage", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(builder.NewAccessBuilder().BuildView(), nil)
		s.storage.EXPECT().PresignedGetURL(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", infra.WrapRepoErr("presign", nil, infra.KindNotFound))

		_, err := s.q.DownloadURL(context.Background(), s.token)
		s.True(errs.Is(err, errs.ErrTokenNotFound))
	})

	s.Run("error: storage outage", func() {
		s.readStore.EXPECT().FindByToken(gomock.Any(), s.token).Return(builder.NewAccessBuilder().BuildView(), nil)
		s.storage.EXPECT().PresignedGetURL(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("dial tcp"))

		_, err := s.q.DownloadURL(context.Background(), s.token)
		s.True(errs.Is(err, errs.ErrUpstream))
	})
}

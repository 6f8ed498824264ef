//go:build integration

package ocrcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"idcheck/internal/verification/adapters/ocrcache"
	"idcheck/internal/verification/ports/mocks"
	"idcheck/pkg/testutil/containers"
)

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *CacheSuite) TestSecondExtractionIsServedFromRedis() {
	ctx := context.Background()
	ctrl := gomock.NewController(s.T())
	inner := mocks.NewMockOCR(ctrl)
	inner.EXPECT().ExtractText(gomock.Any(), []byte("img")).Return("MARIA DA SILVA", nil).Times(1)

	cache := ocrcache.New(inner, s.redis.Client, ocrcache.WithTTL(time.Minute))

	for range 2 {
		text, err := cache.ExtractText(ctx, []byte("img"))
		s.Require().NoError(err)
		s.Equal("MARIA DA SILVA", text)
	}

	ttl, err := s.redis.Client.TTL(ctx, ocrcache.Key([]byte("img"))).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *CacheSuite) TestEmptyTextIsCached() {
	ctx := context.Background()
	ctrl := gomock.NewController(s.T())
	inner := mocks.NewMockOCR(ctrl)
	inner.EXPECT().ExtractText(gomock.Any(), gomock.Any()).Return("", nil).Times(1)

	cache := ocrcache.New(inner, s.redis.Client)

	for range 2 {
		text, err := cache.ExtractText(ctx, []byte("blank"))
		s.Require().NoError(err)
		s.Empty(text)
	}
}

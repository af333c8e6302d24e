package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lavka/internal/app/shop/entity"
)

// RedisClientTestSuite тестовый suite для кеша категорий
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	cache     *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.cache, err = NewRedisClient(s.miniRedis.Addr(), "", 0)
	require.NoError(s.T(), err)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.cache.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) TestGetCategories_MissReturnsNil() {
	ctx := context.Background()

	categories, err := s.cache.GetCategories(ctx)

	s.NoError(err)
	s.Nil(categories)
}

func (s *RedisClientTestSuite) TestSetAndGetCategories() {
	ctx := context.Background()
	stored := []entity.Category{
		{ID: primitive.NewObjectID(), Name: "Electronics", Slug: "electronics"},
		{ID: primitive.NewObjectID(), Name: "Books", Slug: "books"},
	}

	err := s.cache.SetCategories(ctx, stored, 5*time.Minute)
	s.NoError(err)

	categories, err := s.cache.GetCategories(ctx)

	s.NoError(err)
	s.Len(categories, 2)
	s.Equal("Electronics", categories[0].Name)
	s.Equal(stored[0].ID, categories[0].ID)
}

func (s *RedisClientTestSuite) TestDeleteCategories() {
	ctx := context.Background()
	err := s.cache.SetCategories(ctx, []entity.Category{{Name: "Electronics"}}, 5*time.Minute)
	s.NoError(err)

	err = s.cache.DeleteCategories(ctx)
	s.NoError(err)

	categories, err := s.cache.GetCategories(ctx)
	s.NoError(err)
	s.Nil(categories)
}

func (s *RedisClientTestSuite) TestSetCategories_TTLExpires() {
	ctx := context.Background()
	err := s.cache.SetCategories(ctx, []entity.Category{{Name: "Electronics"}}, time.Minute)
	s.NoError(err)

	s.miniRedis.FastForward(2 * time.Minute)

	categories, err := s.cache.GetCategories(ctx)
	s.NoError(err)
	s.Nil(categories)
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nikolayk812/cart-manager/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type redisCartRepositorySuite struct {
	cartRepositorySuite

	mr     *miniredis.Miniredis
	client *redis.Client
}

func TestRedisCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(redisCartRepositorySuite))
}

func (suite *redisCartRepositorySuite) SetupSuite() {
	suite.mr = miniredis.RunT(suite.T())
	suite.client = redis.NewClient(&redis.Options{
		Addr: suite.mr.Addr(),
	})

	suite.repo = repository.NewRedisCart(suite.client, time.Hour)
	suite.deleteAll = func(ctx context.Context) error {
		suite.mr.FlushAll()
		return nil
	}
}

func (suite *redisCartRepositorySuite) TearDownSuite() {
	if suite.client != nil {
		suite.NoError(suite.client.Close())
	}
}

func (suite *redisCartRepositorySuite) TestSaveSetsTTL() {
	t := suite.T()

	cart := randomCart(randomCurrency(), 1)
	_, err := suite.repo.Save(t.Context(), cart)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, suite.mr.TTL("cart:"+cart.ID.String()))

	suite.mr.FastForward(2 * time.Hour)

	exists, err := suite.repo.Exists(t.Context(), cart.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func (suite *redisCartRepositorySuite) TestFindCorruptedDocument() {
	t := suite.T()

	cart := randomCart(randomCurrency(), 1)
	require.NoError(t, suite.mr.Set("cart:"+cart.ID.String(), "{not json"))

	_, err := suite.repo.Find(t.Context(), cart.ID)
	require.ErrorContains(t, err, "json.Unmarshal")
}

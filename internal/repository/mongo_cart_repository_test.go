package repository_test

import (
	"context"
	"testing"

	"github.com/nikolayk812/cart-manager/internal/repository"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCartRepositorySuite struct {
	cartRepositorySuite

	container testcontainers.Container
	db        *mongo.Database
}

func TestMongoCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(mongoCartRepositorySuite))
}

func (suite *mongoCartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	container, uri, err := startMongo(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.db, err = repository.ConnectMongo(ctx, uri, "cart_manager_test")
	suite.Require().NoError(err)

	suite.repo = repository.NewMongoCart(suite.db)
	suite.deleteAll = func(ctx context.Context) error {
		_, err := suite.db.Collection("carts").DeleteMany(ctx, bson.M{})
		return err
	}
}

func (suite *mongoCartRepositorySuite) TearDownSuite() {
	if suite.db != nil {
		suite.NoError(suite.db.Client().Disconnect(context.Background()))
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

package keyed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/mock"
)

type SingletonTestSuite struct {
	suite.Suite
	c *keyed.Container
}

func (s *SingletonTestSuite) SetupTest() {
	s.c = keyed.New()
}

func (s *SingletonTestSuite) TestSharedAcrossScopes() {
	runs := &mock.Counter{}
	keyed.MustRegister(s.c, "primary", func(sc *keyed.Scope) (*mock.Resource, error) {
		runs.Inc()
		return &mock.Resource{Name: "primary"}, nil
	}, keyed.LifetimeSingleton)

	s1 := s.c.BeginScope(context.Background())
	defer s1.Close(context.Background())
	s2 := s.c.BeginScope(context.Background())
	defer s2.Close(context.Background())

	first, err := keyed.Resolve[*mock.Resource](s1, "primary")
	s.NoError(err)
	second, err := keyed.Resolve[*mock.Resource](s2, "primary")
	s.NoError(err)

	s.Same(first, second)
	s.EqualValues(1, runs.Count())
}

func (s *SingletonTestSuite) TestLazyCreation() {
	runs := &mock.Counter{}
	keyed.MustRegister(s.c, "primary", func(sc *keyed.Scope) (*mock.Resource, error) {
		runs.Inc()
		return &mock.Resource{Name: "primary"}, nil
	}, keyed.LifetimeSingleton)

	scope := s.c.BeginScope(context.Background())
	defer scope.Close(context.Background())

	s.EqualValues(0, runs.Count(), "factory must not run before first resolution")
	_, err := keyed.Resolve[*mock.Resource](scope, "primary")
	s.NoError(err)
	s.EqualValues(1, runs.Count())
}

func (s *SingletonTestSuite) TestScopeCloseKeepsSingletons() {
	keyed.MustRegister(s.c, "primary", func(sc *keyed.Scope) (*mock.Resource, error) {
		return &mock.Resource{Name: "primary"}, nil
	}, keyed.LifetimeSingleton)

	s1 := s.c.BeginScope(context.Background())
	instance, err := keyed.Resolve[*mock.Resource](s1, "primary")
	s.NoError(err)
	s.NoError(s1.Close(context.Background()))

	s.False(instance.IsReleased(), "scoped close must not touch singletons")

	s2 := s.c.BeginScope(context.Background())
	defer s2.Close(context.Background())
	again, err := keyed.Resolve[*mock.Resource](s2, "primary")
	s.NoError(err)
	s.Same(instance, again)
}

func (s *SingletonTestSuite) TestContainerCloseReleasesInReverseOrder() {
	log := &mock.ReleaseLog{}
	keyed.MustRegister(s.c, "db", func(sc *keyed.Scope) (*mock.Resource, error) {
		return &mock.Resource{Name: "db", Log: log}, nil
	}, keyed.LifetimeSingleton)
	keyed.MustRegister(s.c, "cache", func(sc *keyed.Scope) (*mock.Resource, error) {
		return &mock.Resource{Name: "cache", Log: log}, nil
	}, keyed.LifetimeSingleton)

	scope := s.c.BeginScope(context.Background())
	_, err := keyed.Resolve[*mock.Resource](scope, "db")
	s.NoError(err)
	_, err = keyed.Resolve[*mock.Resource](scope, "cache")
	s.NoError(err)
	s.NoError(scope.Close(context.Background()))

	s.NoError(s.c.Close(context.Background()))
	s.Equal([]string{"cache", "db"}, log.Order())
}

func (s *SingletonTestSuite) TestFailedCreationIsNotCached() {
	flaky := &mock.FlakyFactory{}
	keyed.MustRegister(s.c, "flaky", func(sc *keyed.Scope) (*mock.Resource, error) {
		return flaky.Make()
	}, keyed.LifetimeSingleton)

	scope := s.c.BeginScope(context.Background())
	defer scope.Close(context.Background())

	_, err := keyed.Resolve[*mock.Resource](scope, "flaky")
	s.Error(err)

	flaky.Healthy = true
	instance, err := keyed.Resolve[*mock.Resource](scope, "flaky")
	s.NoError(err)
	s.NotNil(instance)
	s.EqualValues(2, flaky.Runs.Count())
}

func TestSingletonTestSuite(t *testing.T) {
	suite.Run(t, new(SingletonTestSuite))
}

// Package graph wraps the Neo4j driver behind a single-statement query
// executor. Every core operation is one parameterized Cypher statement
// executed with the store's own transactional guarantees; there are no
// cross-statement transactions anywhere above this package.
package graph

import (
	"context"
	"fmt"

	"murmur/internal/observability"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner executes a single parameterized Cypher statement and returns a
// fully buffered result. Repositories depend on this interface so tests
// can substitute canned results.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error)
}

// Store is the concrete Runner backed by the Neo4j driver.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	log      *observability.QueryLogger
}

// NewStore connects a Store to the given Neo4j instance.
func NewStore(uri, username, password, database string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Store{
		driver:   driver,
		database: database,
		log:      observability.NewQueryLogger("graph"),
	}, nil
}

// VerifyConnectivity checks that the store is reachable.
func (s *Store) VerifyConnectivity(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Run executes one Cypher statement via neo4j.ExecuteQuery, which manages
// session and transaction scope per statement.
func (s *Store) Run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		s.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(s.database),
	)
	if err != nil {
		observability.StoreQueries.WithLabelValues("error").Inc()
		s.log.LogError(ctx, err, "query")
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	observability.StoreQueries.WithLabelValues("ok").Inc()
	s.log.LogQuery(ctx, "query", map[string]interface{}{"records": len(result.Records)})
	return result, nil
}

package repository

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// fakeRunner returns canned results and records the last statement for
// assertions on query shape and parameters.
type fakeRunner struct {
	result *neo4j.EagerResult
	err    error

	lastQuery  string
	lastParams map[string]any
}

func (f *fakeRunner) Run(_ context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	f.lastQuery = query
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &neo4j.EagerResult{}, nil
}

func resultOf(records ...*neo4j.Record) *neo4j.EagerResult {
	return &neo4j.EagerResult{Records: records}
}

func record(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

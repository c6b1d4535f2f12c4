package gql

import (
	_ "embed"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema binds the SDL to the resolver. Payload types resolve through
// their exported fields, entities through methods.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, r, graphql.UseFieldResolvers())
}

func Handler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}
